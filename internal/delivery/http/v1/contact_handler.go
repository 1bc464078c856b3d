package v1

import (
	"errors"
	"net/http"
	"time"

	"balkan-spine-wellness/internal/delivery/http/middleware"
	"balkan-spine-wellness/internal/delivery/http/response"
	"balkan-spine-wellness/internal/domain"
	"balkan-spine-wellness/internal/usecase"
	"balkan-spine-wellness/pkg/apperror"
	"balkan-spine-wellness/pkg/security"
	"balkan-spine-wellness/pkg/validation"

	"github.com/gin-gonic/gin"
)

var errBrowserHandoff = errors.New("browser could not open the mailto link")

// streamKeepAlive also refreshes the session so an open page is never swept
const streamKeepAlive = 25 * time.Second

type ContactHandler struct {
	sessions domain.ContactSessions
}

// contactPayload is the data block of contact API responses
type contactPayload struct {
	Status     domain.SubmissionStatus `json:"status"`
	MailtoLink string                  `json:"mailto_link,omitempty"`
}

// NewContactHandler registers the contact API routes (public, no auth required)
func NewContactHandler(api *gin.RouterGroup, sessions domain.ContactSessions, submitLimit gin.HandlerFunc) {
	handler := &ContactHandler{
		sessions: sessions,
	}

	contact := api.Group("/contact")
	contact.POST("", submitLimit, handler.SubmitContact)
	contact.POST("/handoff-failed", handler.ReportHandoffFailure)
	contact.PATCH("/draft", handler.UpdateDraft)
	contact.GET("/status", handler.GetStatus)
	contact.GET("/events", handler.StreamStatus)
	contact.DELETE("/session", handler.CloseSession)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Composes a mailto draft for the visitor. The page opens the returned link in a new window.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        X-CSRF-Token  header    string               true  "CSRF token from the csrf_token cookie"
// @Param        contact       body      domain.ContactDraft  true  "Contact Form Data"
// @Success      200           {object}  response.Response
// @Failure      400           {object}  response.Response
// @Failure      409           {object}  response.Response
// @Failure      422           {object}  response.Response
// @Failure      429           {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var draft domain.ContactDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		security.DefaultLogger().LogValidationFailed(c.Request.Context(), c.ClientIP(), c.GetString("RequestID"), validation.FailedFields(err))
		c.Error(apperror.BadRequest("Te rugăm să completezi toate câmpurile.").
			WithDetails(validation.FormatValidationErrors(err)))
		return
	}

	ctrl := h.sessions.Mount(middleware.SessionID(c))
	receipt, err := ctrl.Submit(c.Request.Context(), draft)
	logHandoff(c, draft, err)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, receipt.Status.Message, contactPayload{
			Status:     receipt.Status,
			MailtoLink: receipt.MailtoLink,
		})
	case errors.Is(err, usecase.ErrHandoffFailed):
		// the status message already carries the fallback address
		response.Error(c, http.StatusUnprocessableEntity, receipt.Status.Message, contactPayload{Status: receipt.Status})
	default:
		c.Error(submissionError(err))
	}
}

// ReportHandoffFailure godoc
// @Summary      Report a link the page could not open
// @Description  Restores the handed off draft and switches the status to the fallback error.
// @Tags         contact
// @Produce      json
// @Param        X-CSRF-Token  header    string  true  "CSRF token from the csrf_token cookie"
// @Success      200           {object}  response.Response
// @Failure      409           {object}  response.Response
// @Router       /contact/handoff-failed [post]
func (h *ContactHandler) ReportHandoffFailure(c *gin.Context) {
	ctrl := h.sessions.Mount(middleware.SessionID(c))
	receipt, err := ctrl.ReportHandoffFailure()
	if err != nil {
		c.Error(submissionError(err))
		return
	}
	security.DefaultLogger().LogContactHandoff(c.Request.Context(), ctrl.State().Draft.Email, c.ClientIP(), c.GetString("RequestID"), errBrowserHandoff)
	response.Success(c, http.StatusOK, receipt.Status.Message, ctrl.State())
}

// UpdateDraft godoc
// @Summary      Update one draft field
// @Description  Keeps the typed value so a reload shows it again.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        update  body      domain.ContactFieldUpdate  true  "Field update"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Router       /contact/draft [patch]
func (h *ContactHandler) UpdateDraft(c *gin.Context) {
	var update domain.ContactFieldUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.Error(apperror.BadRequest("Câmp invalid.").WithDetails(validation.FormatValidationErrors(err)))
		return
	}

	ctrl := h.sessions.Mount(middleware.SessionID(c))
	if err := ctrl.SetField(update.Field, update.Value); err != nil {
		c.Error(submissionError(err))
		return
	}
	response.Success(c, http.StatusOK, "Salvat", ctrl.State())
}

// GetStatus godoc
// @Summary      Current form state
// @Tags         contact
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /contact/status [get]
func (h *ContactHandler) GetStatus(c *gin.Context) {
	ctrl := h.sessions.Mount(middleware.SessionID(c))
	response.Success(c, http.StatusOK, "OK", ctrl.State())
}

// StreamStatus godoc
// @Summary      Status event stream
// @Description  Server-sent "status" events, including the automatic revert to idle.
// @Tags         contact
// @Produce      text/event-stream
// @Success      200
// @Router       /contact/events [get]
func (h *ContactHandler) StreamStatus(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	ctrl := h.sessions.Mount(sessionID)

	updates := make(chan domain.SubmissionStatus, 8)
	unsubscribe := ctrl.Subscribe(func(s domain.SubmissionStatus) {
		select {
		case updates <- s:
		default:
			// slow reader; it will catch up on the next event
		}
	})
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("status", ctrl.State().Status)
	c.Writer.Flush()

	ticker := time.NewTicker(streamKeepAlive)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case status := <-updates:
			c.SSEvent("status", status)
			c.Writer.Flush()
		case <-ticker.C:
			if _, err := h.sessions.Get(sessionID); err != nil {
				return
			}
			c.SSEvent("ping", "")
			c.Writer.Flush()
		}
	}
}

// CloseSession godoc
// @Summary      Tear down the visitor session
// @Description  Called when the page is hidden; cancels the pending status revert.
// @Tags         contact
// @Param        X-CSRF-Token  header  string  true  "CSRF token from the csrf_token cookie"
// @Success      204
// @Router       /contact/session [delete]
func (h *ContactHandler) CloseSession(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	if h.sessions.Unmount(sessionID) {
		security.DefaultLogger().LogSessionClosed(c.Request.Context(), sessionID, c.GetString("RequestID"))
	}
	c.Status(http.StatusNoContent)
}

func submissionError(err error) *apperror.AppError {
	switch {
	case errors.Is(err, domain.ErrSubmissionInProgress):
		return apperror.Conflict("Mesajul tău este deja în curs de procesare.", err)
	case errors.Is(err, domain.ErrNoPendingHandoff):
		return apperror.Conflict("Nu există niciun mesaj în curs de trimitere.", err)
	case errors.Is(err, domain.ErrSessionClosed):
		return apperror.New(http.StatusGone, "Sesiunea a expirat. Te rugăm să reîncarci pagina.", err)
	case errors.Is(err, domain.ErrUnknownField):
		return apperror.BadRequest("Câmp invalid.")
	default:
		return apperror.Internal(err)
	}
}

// logHandoff records submissions that reached the mail handoff; rejected
// double submits never got that far.
func logHandoff(c *gin.Context, draft domain.ContactDraft, err error) {
	if err != nil && !errors.Is(err, usecase.ErrHandoffFailed) {
		return
	}
	security.DefaultLogger().LogContactHandoff(c.Request.Context(), draft.Email, c.ClientIP(), c.GetString("RequestID"), err)
}
