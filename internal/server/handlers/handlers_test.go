package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/unobits/website/internal/client"
)

func TestRespondWithClientError(t *testing.T) {
	h := &HandlerService{}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "api error keeps the api status",
			err:        client.NewClientApiError(http.StatusUnauthorized, client.Payload{"error": "invalid_credentials"}),
			wantStatus: http.StatusUnauthorized,
			wantCode:   "invalid_credentials",
		},
		{
			name:       "error reported with a success status",
			err:        client.NewClientApiError(http.StatusOK, client.Payload{"error": "organization_required"}),
			wantStatus: http.StatusBadRequest,
			wantCode:   "organization_required",
		},
		{
			name:       "no response from the api",
			err:        client.NewClientConnectionError(errors.New("connection refused")),
			wantStatus: http.StatusBadGateway,
			wantCode:   "network_error",
		},
		{
			name:       "api response too large",
			err:        client.NewClientResponseTooLargeError(http.StatusOK),
			wantStatus: http.StatusBadGateway,
			wantCode:   "response_too_large",
		},
		{
			name:       "not a client error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.respondWithClientError(rr, httptest.NewRequest(http.MethodPost, "/auth/login", nil), tt.err)

			if rr.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d", rr.Code, tt.wantStatus)
			}

			var body map[string]string
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("response is not JSON: %v", err)
			}
			if body["error"] != tt.wantCode {
				t.Errorf("error code = %q, want %q", body["error"], tt.wantCode)
			}
			if body["message"] == "" {
				t.Error("expected a message")
			}
		})
	}
}

func TestRelayCookies(t *testing.T) {
	rr := httptest.NewRecorder()
	relayCookies(rr, []*http.Cookie{
		{Name: "session", Value: "abc", Domain: "unobits.app", Path: "/", HttpOnly: true, Secure: true},
	})

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Domain != "" {
		t.Errorf("domain = %q, want it removed", c.Domain)
	}
	if c.Value != "abc" || !c.HttpOnly || !c.Secure || c.Path != "/" {
		t.Errorf("cookie attributes were not kept: %+v", c)
	}
}

func TestOrgFromReferer(t *testing.T) {
	tests := []struct {
		referer string
		want    string
	}{
		{"", ""},
		{"https://unobits.com/", ""},
		{"https://unobits.com/o/acme", "acme"},
		{"https://unobits.com/o/Acme-Co/projects/1?tab=files", "acme-co"},
		{"://not a url", ""},
	}

	for _, tt := range tests {
		t.Run(tt.referer, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}
			if got := orgFromReferer(req); got != tt.want {
				t.Errorf("orgFromReferer() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeAuthForm(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(`{"email":"ada@example.com","password":"pw","confirm_password":"pw","organization":"Acme"}`))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")

		form, err := decodeAuthForm(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if form.Email != "ada@example.com" || form.ConfirmPassword != "pw" || form.Organization != "Acme" {
			t.Errorf("unexpected form %+v", form)
		}
	})

	t.Run("url encoded", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("email=ada%40example.com&password=pw"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		form, err := decodeAuthForm(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if form.Email != "ada@example.com" || form.Password != "pw" {
			t.Errorf("unexpected form %+v", form)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`[`))
		req.Header.Set("Content-Type", "application/json")

		if _, err := decodeAuthForm(req); !errors.Is(err, errMalformedForm) {
			t.Errorf("got error %v, want errMalformedForm", err)
		}
	})
}
