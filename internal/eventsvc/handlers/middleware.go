package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth"

	"github.com/avvvet/sportshub-services/internal/eventsvc/auth"
	"github.com/avvvet/sportshub-services/internal/eventsvc/models"
)

type ctxKey struct{}

// authenticate loads the caller named by the token jwtauth.Verifier has
// already checked. The user is read on every request so a role change takes
// effect at once.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			unauthorized(w)
			return
		}
		sub, err := auth.SubjectFromClaims(claims)
		if err != nil {
			unauthorized(w)
			return
		}

		user, err := h.svc.Auth.UserByID(r.Context(), sub)
		if err != nil {
			writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, user)))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeDetail(w, http.StatusUnauthorized, "Invalid authentication credentials")
}

// caller returns the user set by authenticate.
func caller(r *http.Request) *models.User {
	u, _ := r.Context().Value(ctxKey{}).(*models.User)
	return u
}
