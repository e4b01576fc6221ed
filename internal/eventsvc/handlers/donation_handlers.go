package handlers

import (
	"net/http"

	"github.com/go-chi/chi"

	"github.com/avvvet/sportshub-services/internal/eventsvc/models"
)

func (h *Handler) CreateDonation(w http.ResponseWriter, r *http.Request) {
	var in models.DonationCreate
	if !h.decode(w, r, &in) {
		return
	}
	d, err := h.svc.Donations.CreateDonation(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) ListEventDonations(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Donations.ListEventDonations(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats.GetStats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
