package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avvvet/sportshub-services/internal/eventsvc/auth"
	"github.com/avvvet/sportshub-services/internal/eventsvc/models"
	"github.com/avvvet/sportshub-services/internal/eventsvc/service"
	"github.com/avvvet/sportshub-services/internal/eventsvc/storetest"
	"github.com/avvvet/sportshub-services/internal/eventsvc/ws"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type testAPI struct {
	t      *testing.T
	srv    *httptest.Server
	tokens *auth.Tokens
}

func newTestAPI(t *testing.T, db Pinger) *testAPI {
	t.Helper()
	st := storetest.New()
	hub := ws.NewWs()
	tokens := auth.NewTokens("handler-secret", auth.TokenTTL)
	svc := Services{
		Auth:          service.NewAuthService(st.Users, tokens, true),
		Events:        service.NewEventService(st.Events, hub),
		Registrations: service.NewRegistrationService(st.Events, st.Registrations, st.Users, hub),
		Leaderboard:   service.NewLeaderboardService(st.Users),
		Donations:     service.NewDonationService(st.Donations, st.Events, hub),
		Stats:         service.NewStatsService(st.Users, st.Events, st.Registrations, st.Donations),
	}

	r := chi.NewRouter()
	NewHandler(svc, tokens, hub, db).SetRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &testAPI{t: t, srv: srv, tokens: tokens}
}

// do sends a request and decodes a JSON response into out when non-nil.
func (a *testAPI) do(method, path, token string, body interface{}, out interface{}) int {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req, err := http.NewRequest(method, a.srv.URL+path, &buf)
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(a.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (a *testAPI) signup(email string, role models.Role) models.Token {
	a.t.Helper()
	var tok models.Token
	code := a.do(http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email": email, "password": "hunter22", "full_name": "Test " + string(role), "role": role,
	}, &tok)
	require.Equal(a.t, http.StatusOK, code)
	return tok
}

func (a *testAPI) createEvent(token string, title string, max *int, fee string) (int, map[string]interface{}) {
	a.t.Helper()
	body := map[string]interface{}{
		"title":                 title,
		"description":           "Open tournament",
		"sport_type":            "Football",
		"location":              "Pokhara Stadium",
		"event_date":            time.Now().Add(96 * time.Hour).UTC().Format(time.RFC3339),
		"registration_deadline": time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"entry_fee":             fee,
	}
	if max != nil {
		body["max_participants"] = *max
	}
	var out map[string]interface{}
	code := a.do(http.MethodPost, "/api/events", token, body, &out)
	return code, out
}

type detail struct {
	Detail string `json:"detail"`
}

func TestAuthFlow(t *testing.T) {
	api := newTestAPI(t, nil)
	tok := api.signup("rita@example.com", models.RolePlayer)
	assert.Equal(t, "bearer", tok.TokenType)

	var d detail
	code := api.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "RITA@example.com", "password": "hunter22", "full_name": "Rita",
	}, &d)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Email already registered", d.Detail)

	code = api.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "rita@example.com", "password": "nope"}, &d)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password", d.Detail)

	var login models.Token
	code = api.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "rita@example.com", "password": "hunter22"}, &login)
	require.Equal(t, http.StatusOK, code)

	var me map[string]interface{}
	code = api.do(http.MethodGet, "/api/auth/me", login.AccessToken, nil, &me)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "rita@example.com", me["email"])
	assert.NotContains(t, me, "hashed_password")
}

func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	api := newTestAPI(t, nil)

	var d detail
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/api/auth/me", "", nil, &d))
	assert.Equal(t, "Invalid authentication credentials", d.Detail)

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/api/auth/me", "not.a.jwt", nil, &d))

	foreign := auth.NewTokens("other-secret", auth.TokenTTL)
	bad, err := foreign.Issue("whoever")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/api/registrations/user", bad, nil, &d))

	ghost, err := api.tokens.Issue("no-such-user")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/api/auth/me", ghost, nil, &d))
	assert.Equal(t, "User not found", d.Detail)
}

func TestValidationErrors(t *testing.T) {
	api := newTestAPI(t, nil)
	var d detail

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/api/auth/register", "", `{"email":`, &d))
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "not-an-email", "password": "hunter22", "full_name": "X",
	}, &d))
	assert.Contains(t, d.Detail, "email")

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/events?limit=abc", "", nil, &d))
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/events?sport_type=chess", "", nil, &d))
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/leaderboard?limit=-4", "", nil, &d))
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/leaderboard?limit=101", "", nil, &d))
	assert.Equal(t, "limit must be at most 100", d.Detail)
}

func TestEventLifecycle(t *testing.T) {
	api := newTestAPI(t, nil)
	player := api.signup("p@example.com", models.RolePlayer)
	org := api.signup("o@example.com", models.RoleOrganizer)
	admin := api.signup("a@example.com", models.RoleAdmin)

	code, _ := api.createEvent(player.AccessToken, "Player Cup", nil, "0")
	assert.Equal(t, http.StatusForbidden, code)

	code, ev := api.createEvent(org.AccessToken, "Lakeside Futsal", nil, "0")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pending", ev["status"])
	assert.Equal(t, "lakeside-futsal", ev["slug"])
	id := ev["id"].(string)

	var list []map[string]interface{}
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/events", "", nil, &list))
	assert.Empty(t, list)

	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/events?status=pending", "", nil, &list))
	assert.Len(t, list, 1)

	var d detail
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPut, "/api/admin/events/"+id+"/approve", org.AccessToken, nil, &d))
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/api/admin/events/pending", org.AccessToken, nil, &d))
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodPut, "/api/admin/events/missing/approve", admin.AccessToken, nil, &d))

	var pending []map[string]interface{}
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/admin/events/pending", admin.AccessToken, nil, &pending))
	assert.Len(t, pending, 1)

	var msg map[string]string
	require.Equal(t, http.StatusOK, api.do(http.MethodPut, "/api/admin/events/"+id+"/approve", admin.AccessToken, nil, &msg))
	assert.Equal(t, "Event approved successfully", msg["message"])

	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/events?location=LAKE", "", nil, &list))
	assert.Len(t, list, 0, "location filter matches the location, not the title")
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/events?location=pokhara", "", nil, &list))
	assert.Len(t, list, 1)

	other := api.signup("o2@example.com", models.RoleOrganizer)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPut, "/api/events/"+id, other.AccessToken, map[string]string{"title": "Hijacked"}, &d))
	assert.Equal(t, "Not authorized to update this event", d.Detail)

	var updated map[string]interface{}
	require.Equal(t, http.StatusOK, api.do(http.MethodPut, "/api/events/"+id, org.AccessToken, map[string]string{"title": "Lakeside Futsal II"}, &updated))
	assert.Equal(t, "Lakeside Futsal II", updated["title"])
	assert.Equal(t, "Pokhara Stadium", updated["location"])

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/api/events/missing", "", nil, &d))
	assert.Equal(t, "Event not found", d.Detail)
}

func TestRegistrationAndLeaderboard(t *testing.T) {
	api := newTestAPI(t, nil)
	admin := api.signup("a@example.com", models.RoleAdmin)
	one := 1
	code, ev := api.createEvent(admin.AccessToken, "Solo Sprint", &one, "250")
	require.Equal(t, http.StatusOK, code)
	id := ev["id"].(string)

	first := api.signup("first@example.com", models.RolePlayer)
	second := api.signup("second@example.com", models.RolePlayer)

	var reg models.Registration
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/registrations", first.AccessToken, map[string]string{"event_id": id}, &reg))
	assert.Equal(t, models.PaymentPending, reg.PaymentStatus)

	var d detail
	assert.Equal(t, http.StatusConflict, api.do(http.MethodPost, "/api/registrations", first.AccessToken, map[string]string{"event_id": id}, &d))
	assert.Equal(t, "Already registered for this event", d.Detail)
	assert.Equal(t, http.StatusConflict, api.do(http.MethodPost, "/api/registrations", second.AccessToken, map[string]string{"event_id": id}, &d))
	assert.Equal(t, "Event is full", d.Detail)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodPost, "/api/registrations", second.AccessToken, map[string]string{"event_id": "nope"}, &d))

	var me models.User
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/auth/me", first.AccessToken, nil, &me))
	assert.Equal(t, 10, me.Points)
	assert.Equal(t, 1, me.ParticipationCount)

	var mine, byEvent []models.Registration
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/registrations/user", first.AccessToken, nil, &mine))
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/registrations/event/"+id, "", nil, &byEvent))
	assert.Len(t, mine, 1)
	assert.Len(t, byEvent, 1)

	var board []models.LeaderboardEntry
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/leaderboard?limit=2", "", nil, &board))
	require.Len(t, board, 2)
	assert.Equal(t, me.ID, board[0].UserID)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, 2, board[1].Rank)

	var ev2 models.Event
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/events/"+id, "", nil, &ev2))
	assert.Equal(t, 1, ev2.CurrentParticipants)
}

func TestDonationsAndStats(t *testing.T) {
	api := newTestAPI(t, nil)
	var d detail
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/api/donations", "", map[string]interface{}{
		"donor_name": "Sita", "amount": 0, "payment_method": "esewa",
	}, &d))
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/api/donations", "", map[string]interface{}{
		"donor_name": "Sita", "amount": 5, "payment_method": "paypal",
	}, &d))

	var don models.Donation
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/donations", "", map[string]interface{}{
		"donor_name": "Sita", "amount": "1500.75", "payment_method": "khalti",
	}, &don))
	assert.Equal(t, models.PaymentCompleted, don.PaymentStatus)
	assert.Equal(t, "1500.75", don.Amount.String())

	var list []models.Donation
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/donations/event/none", "", nil, &list))
	assert.Empty(t, list)

	var st models.Stats
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/stats", "", nil, &st))
	assert.Equal(t, models.Stats{TotalDonations: 1}, st)
}

func TestHealth(t *testing.T) {
	var rsp healthResponse
	ok := newTestAPI(t, fakePinger{})
	assert.Equal(t, http.StatusOK, ok.do(http.MethodGet, "/api/health", "", nil, &rsp))
	assert.Equal(t, "ok", rsp.Status)

	down := newTestAPI(t, fakePinger{err: errors.New("no reachable servers")})
	assert.Equal(t, http.StatusServiceUnavailable, down.do(http.MethodGet, "/api/health", "", nil, &rsp))
	assert.Equal(t, "unreachable", rsp.Database)
}

func TestWriteError_Unclassified(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	writeError(rec, req, fmt.Errorf("mongo: %w", context.DeadlineExceeded))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"Internal server error"}`, rec.Body.String())
}
