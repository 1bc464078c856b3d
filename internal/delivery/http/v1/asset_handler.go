package v1

import (
	"io/fs"
	"net/http"
	"sync"

	"balkan-spine-wellness/internal/domain"
	"balkan-spine-wellness/pkg/apperror"
	"balkan-spine-wellness/pkg/ogimage"

	"github.com/gin-gonic/gin"
)

// AssetHandler serves embedded static files and the generated preview image
type AssetHandler struct {
	content *domain.SiteContent

	once  sync.Once
	image []byte
	err   error
}

func NewAssetHandler(r *gin.Engine, static fs.FS, content *domain.SiteContent) {
	handler := &AssetHandler{content: content}

	r.StaticFS("/static", http.FS(static))
	r.GET("/og-image.png", handler.PreviewImage)
}

// PreviewImage renders the og:image card once and serves it from memory.
func (h *AssetHandler) PreviewImage(c *gin.Context) {
	h.once.Do(func() {
		h.image, h.err = ogimage.Render(ogimage.Card{
			Title:    h.content.Brand.Wordmark + " " + h.content.Brand.Suffix,
			Subtitle: h.content.Brand.Name,
			Tagline:  h.content.Brand.Tagline,
		})
	})
	if h.err != nil {
		c.Error(apperror.Internal(h.err))
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", h.image)
}
