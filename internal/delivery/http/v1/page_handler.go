package v1

import (
	"errors"
	"net/http"

	"balkan-spine-wellness/internal/delivery/http/middleware"
	"balkan-spine-wellness/internal/domain"
	"balkan-spine-wellness/internal/usecase"
	"balkan-spine-wellness/pkg/security"
	"balkan-spine-wellness/pkg/validation"

	"github.com/gin-gonic/gin"
)

const PageTemplate = "page.html"

// PageHandler serves the single page and the plain form fallback used when
// scripts are disabled.
type PageHandler struct {
	pageUC   domain.PageUsecase
	sessions domain.ContactSessions
}

func NewPageHandler(r gin.IRoutes, pageUC domain.PageUsecase, sessions domain.ContactSessions, submitLimit gin.HandlerFunc) {
	handler := &PageHandler{
		pageUC:   pageUC,
		sessions: sessions,
	}

	r.GET("/", handler.ShowPage)
	r.POST("/contact", submitLimit, handler.SubmitForm)
}

// ShowPage mounts the visitor's contact session and renders every section.
func (h *PageHandler) ShowPage(c *gin.Context) {
	ctrl := h.sessions.Mount(middleware.SessionID(c))
	h.render(c, http.StatusOK, ctrl.State(), "", nil)
}

// SubmitForm runs the same submission flow as the JSON API and re-renders the
// page with the resulting status.
func (h *PageHandler) SubmitForm(c *gin.Context) {
	ctrl := h.sessions.Mount(middleware.SessionID(c))

	var draft domain.ContactDraft
	if err := c.ShouldBind(&draft); err != nil {
		security.DefaultLogger().LogValidationFailed(c.Request.Context(), c.ClientIP(), c.GetString("RequestID"), validation.FailedFields(err))
		// keep whatever was typed so nothing is lost
		_ = ctrl.SetField(domain.FieldName, c.PostForm("name"))
		_ = ctrl.SetField(domain.FieldEmail, c.PostForm("email"))
		_ = ctrl.SetField(domain.FieldMessage, c.PostForm("message"))
		h.render(c, http.StatusUnprocessableEntity, ctrl.State(), "", validation.FormatValidationErrors(err))
		return
	}

	receipt, err := ctrl.Submit(c.Request.Context(), draft)
	logHandoff(c, draft, err)
	switch {
	case err == nil:
		h.render(c, http.StatusOK, ctrl.State(), receipt.MailtoLink, nil)
	case errors.Is(err, usecase.ErrHandoffFailed):
		h.render(c, http.StatusOK, ctrl.State(), "", nil)
	default:
		c.Error(submissionError(err))
	}
}

func (h *PageHandler) render(c *gin.Context, code int, state domain.ContactState, handoffURL string, formErrors []string) {
	view := h.pageUC.Render(c.Request.Context(), state)
	view.CSRFToken = middleware.CSRFToken(c)
	view.HandoffURL = handoffURL
	view.FormErrors = formErrors

	c.Header("Cache-Control", "no-store")
	c.HTML(code, PageTemplate, view)
}
