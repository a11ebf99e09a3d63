package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/billgate/internal/common"
	"github.com/dmitrijs2005/billgate/internal/server/auth"
)

// requireAdmin guards admin endpoints with a bearer JWT issued by
// POST /admin/login.
func (s *HTTPServer) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthHeaderName)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, common.ErrorUnauthorized)
			return
		}

		if _, err := auth.GetUsernameFromToken(token, s.jwtSecret); err != nil {
			writeError(w, common.ErrorUnauthorized)
			return
		}

		next(w, r)
	}
}
