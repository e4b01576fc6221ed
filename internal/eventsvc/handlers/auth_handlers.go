package handlers

import (
	"net/http"

	"github.com/avvvet/sportshub-services/internal/eventsvc/models"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in models.UserCreate
	if !h.decode(w, r, &in) {
		return
	}
	tok, err := h.svc.Auth.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tok)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in models.UserLogin
	if !h.decode(w, r, &in) {
		return
	}
	tok, err := h.svc.Auth.Login(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tok)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, caller(r))
}
