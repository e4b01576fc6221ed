package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"github.com/avvvet/sportshub-services/internal/eventsvc/auth"
	"github.com/avvvet/sportshub-services/internal/eventsvc/service"
	"github.com/avvvet/sportshub-services/internal/eventsvc/ws"
)

const maxBodyBytes = 1 << 20

// Pinger reports whether the record store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services are the operations the HTTP surface exposes.
type Services struct {
	Auth          *service.AuthService
	Events        *service.EventService
	Registrations *service.RegistrationService
	Leaderboard   *service.LeaderboardService
	Donations     *service.DonationService
	Stats         *service.StatsService
}

type Handler struct {
	svc       Services
	tokens    *auth.Tokens
	ws        *ws.Ws
	db        Pinger
	validator *validator.Validate
}

func NewHandler(svc Services, tokens *auth.Tokens, hub *ws.Ws, db Pinger) *Handler {
	v := validator.New()
	// report json names, not Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handler{
		svc:       svc,
		tokens:    tokens,
		ws:        hub,
		db:        db,
		validator: v,
	}
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, errorResponse{Detail: detail})
}

// writeError maps service failures to status codes. Anything unclassified
// is logged and hidden behind a 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var code int
	switch {
	case errors.Is(err, service.ErrValidation):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		code = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		code = http.StatusConflict
	default:
		log.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if code == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	writeDetail(w, code, err.Error())
}

// decode reads a JSON body into v and validates it.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := h.validator.Struct(v); err != nil {
		writeDetail(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	if fe.Param() != "" {
		return fmt.Sprintf("%s failed on %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
}

type healthResponse struct {
	Status      string `json:"status"`
	Database    string `json:"database"`
	Connections int    `json:"connections"`
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := healthResponse{Status: "ok", Database: "ok"}
	if h.ws != nil {
		rsp.Connections = h.ws.Count()
	}
	code := http.StatusOK
	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			log.Warnf("health: database ping failed: %v", err)
			rsp.Status, rsp.Database = "degraded", "unreachable"
			code = http.StatusServiceUnavailable
		}
	}
	writeJSON(w, code, rsp)
}
