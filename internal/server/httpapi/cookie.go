package httpapi

import (
	"net/http"
	"time"

	"github.com/opennote-dev/opennote/internal/common"
	"github.com/opennote-dev/opennote/internal/server/services"
)

// setAuthCookie stores the minted token as an HttpOnly cookie. The value
// contains a space, so net/http quotes it on write and unquotes on read.
func setAuthCookie(w http.ResponseWriter, issued *services.IssuedToken) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.AuthCookieName,
		Value:    common.BearerScheme + " " + issued.Value,
		Path:     "/",
		Expires:  time.Unix(issued.ExpireAt, 0),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.AuthCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}
