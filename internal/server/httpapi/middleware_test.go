package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/opennote-dev/opennote/internal/common"
	"github.com/opennote-dev/opennote/internal/server/auth"
	"github.com/opennote-dev/opennote/internal/server/services"
)

func newFilterHandler(codec *auth.Codec, cfg FilterConfig) (http.Handler, *bool, *string) {
	reached := false
	userID := ""
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		if token, ok := TokenFromContext(r.Context()); ok {
			userID = token.UserID
		}
		w.WriteHeader(http.StatusOK)
	})
	return authFilter(codec, cfg)(inner), &reached, &userID
}

func bearerCookie(value string) *http.Cookie {
	return &http.Cookie{Name: common.AuthCookieName, Value: value}
}

func TestAuthFilter_Forbidden(t *testing.T) {
	codec := auth.NewCodec([]byte("mw-secret"), time.Minute)
	otherCodec := auth.NewCodec([]byte("other-secret"), time.Minute)

	valid := codec.Serialize(codec.Create(time.Now(), "u-1", "rt-1"))
	expired := codec.Serialize(codec.Create(time.Now().Add(-2*time.Minute), "u-1", "rt-1"))
	foreign := otherCodec.Serialize(otherCodec.Create(time.Now(), "u-1", "rt-1"))

	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{"no cookie", nil},
		{"empty value", bearerCookie("")},
		{"no scheme", bearerCookie(valid)},
		{"wrong scheme", bearerCookie("Token " + valid)},
		{"extra segment", bearerCookie("Bearer " + valid + " extra")},
		{"lowercase scheme", bearerCookie("bearer " + valid)},
		{"not a token", bearerCookie("Bearer junk")},
		{"bad signature", bearerCookie("Bearer " + foreign)},
		{"expired token", bearerCookie("Bearer " + expired)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler, reached, _ := newFilterHandler(codec, FilterConfig{})

			req := httptest.NewRequest(http.MethodGet, "/notes/", nil)
			if tc.cookie != nil {
				req.AddCookie(tc.cookie)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusForbidden {
				t.Fatalf("status = %d, want 403", rec.Code)
			}
			if rec.Body.Len() != 0 {
				t.Fatalf("expected empty body, got %q", rec.Body.String())
			}
			if *reached {
				t.Fatal("inner handler must not run")
			}
		})
	}
}

func TestAuthFilter_ValidToken(t *testing.T) {
	codec := auth.NewCodec([]byte("mw-secret"), time.Minute)
	handler, reached, userID := newFilterHandler(codec, FilterConfig{})

	value := codec.Serialize(codec.Create(time.Now(), "u-1", "rt-1"))
	req := httptest.NewRequest(http.MethodGet, "/notes/", nil)
	req.AddCookie(bearerCookie("Bearer " + value))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !*reached {
		t.Fatal("inner handler did not run")
	}
	if *userID != "u-1" {
		t.Fatalf("context user id = %q, want u-1", *userID)
	}
}

func TestAuthFilter_Skips(t *testing.T) {
	codec := auth.NewCodec([]byte("mw-secret"), time.Minute)
	cfg := FilterConfig{
		BypassPrefixes: []string{"/health"},
		PublicPaths:    []string{"/users/", "/access-token/login"},
	}

	tests := []struct {
		name    string
		method  string
		path    string
		headers map[string]string
		want    int
	}{
		{"bypass prefix", http.MethodGet, "/health", nil, http.StatusOK},
		{"bypass prefix subpath", http.MethodGet, "/health/live", nil, http.StatusOK},
		{"public path exact", http.MethodPost, "/users/", nil, http.StatusOK},
		{"public path login", http.MethodPost, "/access-token/login", nil, http.StatusOK},
		{"public path is exact not prefix", http.MethodGet, "/users/whoami", nil, http.StatusForbidden},
		{"preflight", http.MethodOptions, "/notes/",
			map[string]string{"Access-Control-Request-Method": "POST"}, http.StatusOK},
		{"plain options is not preflight", http.MethodOptions, "/notes/", nil, http.StatusForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler, _, _ := newFilterHandler(codec, cfg)

			req := httptest.NewRequest(tc.method, tc.path, nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

// The cookie value contains a space, which net/http quotes on write and
// unquotes on read. Make sure a cookie set by setAuthCookie survives the
// round trip back through the filter.
func TestAuthCookieRoundTripsThroughQuoting(t *testing.T) {
	codec := auth.NewCodec([]byte("mw-secret"), time.Minute)

	token := codec.Create(time.Now(), "u-1", "rt-1")
	issued := &services.IssuedToken{Value: codec.Serialize(token), ExpireAt: token.ExpireAt}

	rec := httptest.NewRecorder()
	setAuthCookie(rec, issued)
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if cookies[0].Name != common.AuthCookieName || !cookies[0].HttpOnly || !cookies[0].Secure {
		t.Fatalf("unexpected cookie attributes: %+v", cookies[0])
	}

	handler, reached, userID := newFilterHandler(codec, FilterConfig{})
	req := httptest.NewRequest(http.MethodGet, "/notes/", nil)
	req.AddCookie(cookies[0])
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK || !*reached {
		t.Fatalf("round-tripped cookie rejected: status %d", res.Code)
	}
	if *userID != "u-1" {
		t.Fatalf("context user id = %q, want u-1", *userID)
	}
}
