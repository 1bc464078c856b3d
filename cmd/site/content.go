package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"balkan-spine-wellness/config"
	"balkan-spine-wellness/internal/domain"
	"balkan-spine-wellness/internal/repository/content"
	"balkan-spine-wellness/pkg/validation"
	"balkan-spine-wellness/web"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Validate the site content table",
	Long: `Loads the site content (CONTENT_PATH or the embedded default), validates
it and prints how many entries each section has.`,
	RunE: runContent,
}

func init() {
	rootCmd.AddCommand(contentCmd)
}

func runContent(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	validate := validator.New()
	validation.RegisterValidators(validate)

	site, err := loadContent(cfg, validate)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "brand:    %s\n", site.Brand.Name)
	fmt.Fprintf(out, "nav:      %d links\n", len(site.Nav))
	fmt.Fprintf(out, "benefits: %d\n", len(site.Benefits.Items))
	fmt.Fprintf(out, "services: %d\n", len(site.Services.Items))
	fmt.Fprintf(out, "process:  %d steps\n", len(site.Process.Items))
	fmt.Fprintf(out, "schedule: %d rows\n", len(site.Footer.Schedule))
	return nil
}

// loadContent reads CONTENT_PATH from disk when set, otherwise the table
// embedded in the binary.
func loadContent(cfg *config.Config, validate *validator.Validate) (*domain.SiteContent, error) {
	var (
		fsys fs.FS = web.Files()
		path       = web.ContentFile
	)
	if cfg.ContentPath != "" {
		fsys = os.DirFS(filepath.Dir(cfg.ContentPath))
		path = filepath.Base(cfg.ContentPath)
	}
	return content.NewYAMLRepository(fsys, path, validate).Load()
}
