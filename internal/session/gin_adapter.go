package session

import (
	"bufio"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"
)

// cookieWriter delays the first header write until the session cookie has
// been attached. Handlers that redirect or render fragments never see it.
type cookieWriter struct {
	gin.ResponseWriter
	sessions *Manager
	req      *http.Request
	flushed  bool
}

func (w *cookieWriter) WriteHeader(code int) {
	w.flush()
	w.ResponseWriter.WriteHeader(code)
}

func (w *cookieWriter) WriteHeaderNow() {
	w.flush()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *cookieWriter) Write(b []byte) (int, error) {
	w.flush()
	return w.ResponseWriter.Write(b)
}

func (w *cookieWriter) WriteString(s string) (int, error) {
	w.flush()
	return w.ResponseWriter.WriteString(s)
}

func (w *cookieWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return w.ResponseWriter.Hijack()
}

// flush runs once per request. A workspace key assigned during the request
// is committed here, so the browser gets its cookie on the same response.
func (w *cookieWriter) flush() {
	if w.flushed {
		return
	}
	w.flushed = true

	ctx := w.req.Context()
	switch w.sessions.Status(ctx) {
	case scs.Modified:
		token, expiry, err := w.sessions.Commit(ctx)
		if err != nil {
			log.Printf("[SESSION] commit failed: %v", err)
			return
		}
		w.sessions.WriteSessionCookie(ctx, w.ResponseWriter, token, expiry)
	case scs.Destroyed:
		w.sessions.WriteSessionCookie(ctx, w.ResponseWriter, "", time.Time{})
	}
}

// LoadSave loads the browser's session into the request context and saves it
// on the way out. Register it ahead of WorkspaceMiddleware.
func (m *Manager) LoadSave() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if cookie, err := c.Request.Cookie(m.Cookie.Name); err == nil {
			token = cookie.Value
		}

		ctx, err := m.Load(c.Request.Context(), token)
		if err != nil {
			log.Printf("[SESSION] load failed: %v", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Request = c.Request.WithContext(ctx)

		w := &cookieWriter{ResponseWriter: c.Writer, sessions: m, req: c.Request}
		c.Writer = w

		c.Next()

		w.flush()
	}
}
