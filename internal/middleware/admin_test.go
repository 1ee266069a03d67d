package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminGateCheck(t *testing.T) {
	gate := NewAdminGate("segreto")

	assert.NoError(t, gate.Check("segreto"))
	assert.ErrorIs(t, gate.Check("sbagliato"), ErrAdminDenied)
	assert.ErrorIs(t, gate.Check(""), ErrAdminDenied)

	// An unset password never unlocks
	assert.ErrorIs(t, NewAdminGate("").Check(""), ErrAdminDenied)
}

func TestRequireAdmin(t *testing.T) {
	gate := NewAdminGate("segreto")
	handler := gate.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The form is already parsed for the wrapped handler
		assert.Equal(t, "segreto", r.PostForm.Get(PasswordField))
		w.WriteHeader(http.StatusNoContent)
	}))

	testCases := []struct {
		name     string
		password string
		expected int
	}{
		{name: "Correct password", password: "segreto", expected: http.StatusNoContent},
		{name: "Wrong password", password: "nope", expected: http.StatusForbidden},
		{name: "Missing password", password: "", expected: http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			form := url.Values{}
			if tc.password != "" {
				form.Set(PasswordField, tc.password)
			}
			req := httptest.NewRequest(http.MethodPost, "/admin/prune", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)
			assert.Equal(t, tc.expected, rec.Code)
		})
	}
}
