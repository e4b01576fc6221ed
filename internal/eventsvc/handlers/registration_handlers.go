package handlers

import (
	"net/http"

	"github.com/go-chi/chi"

	"github.com/avvvet/sportshub-services/internal/eventsvc/models"
)

func (h *Handler) RegisterForEvent(w http.ResponseWriter, r *http.Request) {
	var in models.RegistrationCreate
	if !h.decode(w, r, &in) {
		return
	}
	reg, err := h.svc.Registrations.RegisterForEvent(r.Context(), in.EventID, caller(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

func (h *Handler) ListUserRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.svc.Registrations.ListUserRegistrations(r.Context(), caller(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, regs)
}

func (h *Handler) ListEventRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.svc.Registrations.ListEventRegistrations(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, regs)
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit", 0)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	entries, err := h.svc.Leaderboard.GetLeaderboard(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
