package main

import (
	"errors"
	"fmt"

	"balkan-spine-wellness/config"
	"balkan-spine-wellness/internal/domain"
	"balkan-spine-wellness/pkg/email"
	"balkan-spine-wellness/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
)

var mailtoCmd = &cobra.Command{
	Use:     "mailto",
	Short:   "Print the mailto link the contact form would open",
	Example: `  site mailto --name "Ana Popescu" --email ana@example.com --message "Aș dori o programare"`,
	RunE:    runMailto,
}

var mailtoDraft domain.ContactDraft

func init() {
	rootCmd.AddCommand(mailtoCmd)

	mailtoCmd.Flags().StringVar(&mailtoDraft.Name, "name", "", "Sender name")
	mailtoCmd.Flags().StringVar(&mailtoDraft.Email, "email", "", "Sender email")
	mailtoCmd.Flags().StringVar(&mailtoDraft.Message, "message", "", "Message body")
}

func runMailto(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	validate := validator.New()
	validate.SetTagName("binding")
	validation.RegisterValidators(validate)
	if err := validate.Struct(mailtoDraft); err != nil {
		for _, msg := range validation.FormatValidationErrors(err) {
			fmt.Fprintln(cmd.ErrOrStderr(), msg)
		}
		return errors.New("invalid contact draft")
	}

	composer, err := email.NewComposer(cfg.ContactEmailTo, cfg.BrandName)
	if err != nil {
		return err
	}
	msg, err := composer.Compose(email.ContactEmailData{
		SenderName:  mailtoDraft.Name,
		SenderEmail: mailtoDraft.Email,
		Message:     mailtoDraft.Message,
	})
	if err != nil {
		return err
	}

	link := msg.Link()
	if err := email.NewLinkHandoff(cfg.MailtoMaxLength).Open(cmd.Context(), link); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), link)
	return nil
}
