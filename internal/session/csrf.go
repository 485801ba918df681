package session

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

const (
	// TokenHeader carries the CSRF token on HTMX requests.
	TokenHeader = "X-CSRF-Token"

	// FieldName is the hidden form field carrying the token on plain posts.
	FieldName = "gorilla.csrf.Token"

	tokenContextKey = "csrf_token"
)

// CSRFMiddleware protects unsafe methods with gorilla/csrf. When secure is
// false requests are treated as plain HTTP, which skips the Referer check.
func CSRFMiddleware(secret []byte, secure bool) gin.HandlerFunc {
	protect := csrf.Protect(
		secret,
		csrf.Secure(secure),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.Path("/"),
		csrf.RequestHeader(TokenHeader),
		csrf.FieldName(FieldName),
		csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)),
	)

	return func(c *gin.Context) {
		if !secure {
			c.Request = csrf.PlaintextHTTPRequest(c.Request)
		}

		handler := protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Set(tokenContextKey, csrf.Token(r))
			c.Request = r
			c.Next()
		}))
		handler.ServeHTTP(c.Writer, c.Request)

		// The wrapped handler never ran: the error handler already answered.
		if _, ok := c.Get(tokenContextKey); !ok {
			c.Abort()
		}
	}
}

func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Trigger", `{"showToast":"Session expired. Please reload the page."}`)
		w.WriteHeader(http.StatusForbidden)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"CSRF token invalid or missing"}`))
		return
	}

	if referer := r.Referer(); referer != "" {
		http.Redirect(w, r, referer, http.StatusSeeOther)
		return
	}
	http.Error(w, "Session expired. Please reload the page.", http.StatusForbidden)
}

// Token returns the request's CSRF token, or "" when protection is off.
func Token(c *gin.Context) string {
	if token, exists := c.Get(tokenContextKey); exists {
		if t, ok := token.(string); ok {
			return t
		}
	}
	return ""
}
