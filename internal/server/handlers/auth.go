package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"net/url"

	"github.com/unobits/website/internal/apperrors"
	"github.com/unobits/website/internal/client"
	"github.com/unobits/website/internal/logger"
	"github.com/unobits/website/internal/responses"
	"github.com/unobits/website/internal/utils"
)

// authForm is the sign in / sign up form, sent either as JSON or as a url encoded form
type authForm struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Organization    string `json:"organization"`
}

var errMalformedForm = errors.New("malformed form")

func decodeAuthForm(r *http.Request) (authForm, error) {
	var form authForm

	if isJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			return form, errMalformedForm
		}
		return form, nil
	}

	if err := r.ParseForm(); err != nil {
		return form, errMalformedForm
	}
	form.Name = r.PostFormValue("name")
	form.Email = r.PostFormValue("email")
	form.Password = r.PostFormValue("password")
	form.ConfirmPassword = r.PostFormValue("confirm_password")
	form.Organization = r.PostFormValue("organization")
	return form, nil
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// orgFromReferer returns the organization of the page the visitor came from, e.g a sign in link on /o/acme/...
func orgFromReferer(r *http.Request) string {
	referer := r.Referer()
	if referer == "" {
		return ""
	}
	u, err := url.Parse(referer)
	if err != nil {
		return ""
	}
	return utils.OrgFromPath(u.Path)
}

// HandleLoginPost authenticates the visitor with the unobits API and relays the session cookies to the browser
func (h *HandlerService) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	form, err := decodeAuthForm(r)
	if err != nil {
		responses.RespondWithError(w, r, http.StatusBadRequest, apperrors.ErrCodeMalformedBody, "Invalid request. Please check your input and try again.")
		return
	}

	if form.Organization == "" {
		form.Organization = orgFromReferer(r)
	}

	ctx := client.ContextWithCredentials(r.Context(), r.Cookies())

	res, err := h.ApiClient.Login(ctx, client.LoginRequest{
		Email:        form.Email,
		Password:     form.Password,
		Organization: form.Organization,
	})
	if err != nil {
		h.respondWithClientError(w, r, err)
		return
	}

	logger.AddLogAttrs(r.Context(),
		slog.String("organization", utils.Slugify(form.Organization)),
	)

	relayCookies(w, res.Cookies)
	responses.RespondWithJSON(w, res.StatusCode, res.Body)
}

// HandleSignupPost creates an account with the unobits API
func (h *HandlerService) HandleSignupPost(w http.ResponseWriter, r *http.Request) {
	form, err := decodeAuthForm(r)
	if err != nil {
		responses.RespondWithError(w, r, http.StatusBadRequest, apperrors.ErrCodeMalformedBody, "Invalid request. Please check your input and try again.")
		return
	}

	if form.Email == "" || form.Password == "" {
		responses.RespondWithError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest, "Please fill in all fields.")
		return
	}

	if form.ConfirmPassword != "" && form.ConfirmPassword != form.Password {
		responses.RespondWithError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest, "Passwords do not match.")
		return
	}

	ctx := client.ContextWithCredentials(r.Context(), r.Cookies())

	res, err := h.ApiClient.Signup(ctx, client.SignupRequest{
		Name:         form.Name,
		Email:        form.Email,
		Password:     form.Password,
		Organization: form.Organization,
	})
	if err != nil {
		h.respondWithClientError(w, r, err)
		return
	}

	relayCookies(w, res.Cookies)
	responses.RespondWithJSON(w, res.StatusCode, res.Body)
}

// HandleLogoutPost ends the visitor's session
func (h *HandlerService) HandleLogoutPost(w http.ResponseWriter, r *http.Request) {
	ctx := client.ContextWithCredentials(r.Context(), r.Cookies())

	res, err := h.ApiClient.Logout(ctx)
	if err != nil {
		h.respondWithClientError(w, r, err)
		return
	}

	relayCookies(w, res.Cookies)
	responses.RespondWithJSON(w, res.StatusCode, res.Body)
}

// HandleSession returns the details of the visitor's session, if any
func (h *HandlerService) HandleSession(w http.ResponseWriter, r *http.Request) {
	ctx := client.ContextWithCredentials(r.Context(), r.Cookies())

	session, err := h.ApiClient.Session(ctx)
	if err != nil {
		h.respondWithClientError(w, r, err)
		return
	}

	responses.RespondWithJSON(w, http.StatusOK, session)
}

// respondWithClientError sends the user message of an API error to the browser.
// Errors reported with a 2xx status are sent as 400. Errors without a usable response from the API
// (no response, or a response too large to read) are sent as 502.
func (h *HandlerService) respondWithClientError(w http.ResponseWriter, r *http.Request, err error) {
	ce, ok := client.AsClientError(err)
	if !ok {
		responses.RespondWithError(w, r, http.StatusInternalServerError, apperrors.ErrCodeInternalError, "An error occurred. Please try again later.")
		return
	}

	logger.AddLogAttrs(r.Context(),
		slog.String("api_error_code", ce.Code),
		slog.Int("api_status", ce.StatusCode),
	)

	status := ce.StatusCode
	switch {
	case status == 0 || ce.Code == string(apperrors.ErrCodeResponseTooLarge):
		logger.RequestLogger(r.Context()).Error("unobits api request failed", slog.String("error", ce.Error()))
		status = http.StatusBadGateway
	case status < http.StatusBadRequest:
		status = http.StatusBadRequest
	}

	responses.RespondWithError(w, r, status, apperrors.ErrorCode(ce.Code), ce.Message)
}

// relayCookies passes the cookies set by the API to the browser.
// The domain is removed so the cookies are scoped to the website, which forwards them on later API calls.
func relayCookies(w http.ResponseWriter, cookies []*http.Cookie) {
	for _, c := range cookies {
		relayed := *c
		relayed.Domain = ""
		http.SetCookie(w, &relayed)
	}
}
