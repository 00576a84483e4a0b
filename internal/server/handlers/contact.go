package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/unobits/website/internal/apperrors"
	"github.com/unobits/website/internal/contact"
	"github.com/unobits/website/internal/logger"
	"github.com/unobits/website/internal/responses"
	"github.com/unobits/website/internal/site"
)

var contactFormFields = []string{"name", "email", "company", "topic", "message"}

type contactResponse struct {
	ID string `json:"id"`
}

// HandleContactPost validates and stores a contact form submission.
//
// JSON requests get a JSON response. Form posts from the contact page are redirected back to the page on success
// and the page is rendered again with the validation message on failure.
func (h *HandlerService) HandleContactPost(w http.ResponseWriter, r *http.Request) {
	asJSON := isJSON(r)

	raw, err := readContactSubmission(r, asJSON)
	if err != nil {
		h.contactError(w, r, asJSON, http.StatusBadRequest, apperrors.ErrCodeMalformedBody, "Invalid request. Please check your input and try again.")
		return
	}

	submission, err := h.Validator.Validate(raw)
	if err != nil {
		var ve *contact.ValidationError
		switch {
		case errors.As(err, &ve):
			h.contactError(w, r, asJSON, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest, ve.UserMessage())
		case errors.Is(err, contact.ErrMalformedSubmission):
			h.contactError(w, r, asJSON, http.StatusBadRequest, apperrors.ErrCodeMalformedBody, "Invalid request. Please check your input and try again.")
		default:
			logger.RequestLogger(r.Context()).Error("contact validation failed", slog.String("error", err.Error()))
			h.contactError(w, r, asJSON, http.StatusInternalServerError, apperrors.ErrCodeInternalError, "An error occurred. Please try again later.")
		}
		return
	}

	if err := h.Store.Save(r.Context(), submission); err != nil {
		logger.RequestLogger(r.Context()).Error("failed to save contact submission", slog.String("error", err.Error()))
		h.contactError(w, r, asJSON, http.StatusInternalServerError, apperrors.ErrCodeInternalError, "An error occurred. Please try again later.")
		return
	}

	logger.AddLogAttrs(r.Context(),
		slog.String("submission_id", submission.ID.String()),
	)

	if !asJSON {
		http.Redirect(w, r, "/contact?sent=1", http.StatusSeeOther)
		return
	}
	responses.RespondWithJSON(w, http.StatusCreated, contactResponse{ID: submission.ID.String()})
}

// readContactSubmission returns the submission as JSON - form posts are converted so that both are validated against the same schema
func readContactSubmission(r *http.Request, asJSON bool) ([]byte, error) {
	if asJSON {
		return io.ReadAll(r.Body)
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	fields := make(map[string]string)
	for _, name := range contactFormFields {
		if v := r.PostFormValue(name); v != "" {
			fields[name] = v
		}
	}
	return json.Marshal(fields)
}

func (h *HandlerService) contactError(w http.ResponseWriter, r *http.Request, asJSON bool, status int, code apperrors.ErrorCode, message string) {
	if asJSON {
		responses.RespondWithError(w, r, status, code, message)
		return
	}

	logger.AddLogAttrs(r.Context(), slog.String("error_code", string(code)))
	h.renderPage(w, r, status, site.PageContact, site.PageData{
		Title:  "Contact",
		Path:   "/contact",
		Notice: message,
	})
}
