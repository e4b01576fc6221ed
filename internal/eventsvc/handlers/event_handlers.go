package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/avvvet/sportshub-services/internal/eventsvc/models"
)

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var in models.EventCreate
	if !h.decode(w, r, &in) {
		return
	}
	event, err := h.svc.Events.CreateEvent(r.Context(), in, caller(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.Events.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var patch models.EventUpdate
	if !h.decode(w, r, &patch) {
		return
	}
	event, err := h.svc.Events.UpdateEvent(r.Context(), chi.URLParam(r, "id"), patch, caller(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	f, err := eventFilterFromQuery(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	events, err := h.svc.Events.ListEvents(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *Handler) ListPendingEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.Events.ListPendingEvents(r.Context(), caller(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *Handler) ApproveEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Events.ApproveEvent(r.Context(), chi.URLParam(r, "id"), caller(r)); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Event approved successfully"})
}

func eventFilterFromQuery(r *http.Request) (models.EventFilter, error) {
	q := r.URL.Query()
	f := models.EventFilter{Location: q.Get("location")}

	if v := q.Get("sport_type"); v != "" {
		var st models.SportType
		if err := st.UnmarshalText([]byte(v)); err != nil {
			return f, err
		}
		f.SportType = &st
	}
	if v := q.Get("status"); v != "" {
		var s models.EventStatus
		if err := s.UnmarshalText([]byte(v)); err != nil {
			return f, err
		}
		f.Status = &s
	}

	var err error
	if f.Skip, err = intQuery(r, "skip", 0); err != nil {
		return f, err
	}
	if f.Limit, err = intQuery(r, "limit", 0); err != nil {
		return f, err
	}
	return f, nil
}

// intQuery parses a non-negative integer query parameter.
func intQuery(r *http.Request, name string, fallback int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}
	return n, nil
}
