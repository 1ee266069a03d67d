package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/AdamBeresnev/fantapes-tv/internal/httputil"
)

// Form field carrying the shared secret on every admin request.
const PasswordField = "password"

var ErrAdminDenied = errors.New("wrong admin password")

// AdminGate guards the admin tools with a single shared secret. There is no
// admin session: the password travels with every request and is checked each time.
type AdminGate struct {
	password string
}

func NewAdminGate(password string) *AdminGate {
	return &AdminGate{password: password}
}

func (g *AdminGate) Check(candidate string) error {
	if g.password == "" || subtle.ConstantTimeCompare([]byte(candidate), []byte(g.password)) != 1 {
		return ErrAdminDenied
	}
	return nil
}

func (g *AdminGate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			httputil.BadRequest(w, "Invalid form data", err)
			return
		}
		if err := g.Check(r.PostForm.Get(PasswordField)); err != nil {
			httputil.Forbidden(w, "Password errata", err)
			return
		}
		next.ServeHTTP(w, r)
	})
}
