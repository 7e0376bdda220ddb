package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minerush/game-services/internal/comm"
	"github.com/minerush/game-services/internal/gamesvc/engine"
	"github.com/minerush/game-services/internal/gamesvc/models"
	"github.com/minerush/game-services/internal/gamesvc/service"
)

// fakeStore backs the services with fixture data for handler tests.
type fakeStore struct {
	mu       sync.Mutex
	config   *models.GameConfig
	sessions map[int64]*models.GameSession
	actions  map[string]*models.GameAction
	nextID   int64
}

func (f *fakeStore) GetConfigByID(ctx context.Context, configID int64) (*models.GameConfig, error) {
	if f.config == nil || f.config.ID != configID {
		return nil, nil
	}
	cp := *f.config
	return &cp, nil
}

func (f *fakeStore) GetSessionByID(ctx context.Context, sessionID int64) (*models.GameSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStore) CreateSession(ctx context.Context, playerIdentifier string, gameConfigID int64) (*models.GameSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	s := &models.GameSession{ID: f.nextID, PlayerIdentifier: playerIdentifier, GameConfigID: gameConfigID}
	f.sessions[s.ID] = s
	cp := *s
	return &cp, nil
}

func (f *fakeStore) CASAdvanceSession(ctx context.Context, sessionID int64, expected, next int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[sessionID]
	if !ok || s.MoveCount != expected {
		return false, nil
	}
	s.MoveCount = next
	return true, nil
}

func (f *fakeStore) AppendAction(ctx context.Context, action *models.GameAction) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.actions[action.ID]; ok {
		return false, nil
	}
	cp := *action
	f.actions[action.ID] = &cp
	return true, nil
}

func (f *fakeStore) GetActionByID(ctx context.Context, actionID string) (*models.GameAction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.actions[actionID]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeStore) AppendEvent(ctx context.Context, event *models.AnalyticsEvent) (bool, error) {
	return true, nil
}

func (f *fakeStore) GetTokenByValue(ctx context.Context, token string) (*models.EmbedToken, error) {
	if token != "embed-secret" {
		return nil, nil
	}
	return &models.EmbedToken{
		ID:          1,
		Token:       token,
		PartnerID:   1,
		Permissions: []byte(`{"capabilities":["session:create","session:play"]}`),
	}, nil
}

func (f *fakeStore) GetPartnerByID(ctx context.Context, partnerID int64) (*models.Partner, error) {
	if partnerID != 1 {
		return nil, nil
	}
	return &models.Partner{ID: 1, Name: "acme-arcade"}, nil
}

type noopPublisher struct{}

func (noopPublisher) PublishMove(comm.MoveRecord) error   { return nil }
func (noopPublisher) PublishEvent(comm.EventRecord) error { return nil }

func newTestRouter(t *testing.T) (*chi.Mux, *fakeStore) {
	t.Helper()

	st := &fakeStore{
		sessions: map[int64]*models.GameSession{},
		actions:  map[string]*models.GameAction{},
		config: &models.GameConfig{
			ID:            1,
			Name:          "gold-rush",
			Owner:         models.GlobalOwner(),
			MovesPerRound: 1,
			ProbDiamond:   1,
			MultDiamond:   decimal.NewFromFloat(5.0),
			BidAmounts:    []decimal.Decimal{decimal.NewFromInt(10)},
			UpdatedAt:     time.Now(),
		},
	}

	sessionService := service.NewSessionService(service.Config{}, st, st, st, st,
		noopPublisher{}, engine.NewSeededSource(1))

	h := NewHandler(
		service.NewAuthService(st, st),
		service.NewConfigService(st),
		sessionService,
	)

	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		r.With(h.RequireCapability(models.CapSessionCreate)).
			Post("/sessions", h.CreateSessionHandler)
		r.With(h.RequireCapability(models.CapSessionPlay)).
			Post("/sessions/{id}/moves", h.SubmitMoveHandler)
		r.With(h.RequireCapability(models.CapConfigRead)).
			Get("/configs/{id}", h.GetConfigHandler)
	})

	return r, st
}

func TestSubmitMoveEndpoint(t *testing.T) {
	r, st := newTestRouter(t)

	st.sessions[7] = &models.GameSession{ID: 7, PlayerIdentifier: "p1", GameConfigID: 1}

	body := bytes.NewBufferString(`{"bid":10}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/7/moves", body)
	req.Header.Set("X-Embed-Token", "embed-secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rsp struct {
		Data struct {
			Outcome   string `json:"outcome"`
			Payout    string `json:"payout"`
			MoveIndex int    `json:"move_index"`
			State     string `json:"state"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rsp))

	assert.Equal(t, "diamond", rsp.Data.Outcome)
	assert.Equal(t, "50", rsp.Data.Payout)
	assert.Equal(t, 1, rsp.Data.MoveIndex)
	assert.Equal(t, "round_complete", rsp.Data.State)
}

func TestSubmitMoveRequiresToken(t *testing.T) {
	r, st := newTestRouter(t)
	st.sessions[7] = &models.GameSession{ID: 7, PlayerIdentifier: "p1", GameConfigID: 1}

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/7/moves", bytes.NewBufferString(`{"bid":10}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/v1/sessions/7/moves", bytes.NewBufferString(`{"bid":10}`))
	req.Header.Set("X-Embed-Token", "wrong-secret")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestConfigReadNeedsCapability(t *testing.T) {
	r, _ := newTestRouter(t)

	// the fixture token only holds session:create and session:play
	req := httptest.NewRequest(http.MethodGet, "/v1/configs/1", nil)
	req.Header.Set("X-Embed-Token", "embed-secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateSessionEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	body := bytes.NewBufferString(`{"game_config_id":1,"player_identifier":"p9"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/sessions", body)
	req.Header.Set("Authorization", "Bearer embed-secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var rsp struct {
		Data struct {
			State   string             `json:"state"`
			Session models.GameSession `json:"session"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rsp))
	assert.Equal(t, "active", rsp.Data.State)
	assert.Equal(t, "p9", rsp.Data.Session.PlayerIdentifier)

	// a move after round complete is refused with a conflict
	sessionID := strconv.FormatInt(rsp.Data.Session.ID, 10)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/sessions/"+sessionID+"/moves",
			bytes.NewBufferString(`{"bid":10}`))
		req.Header.Set("X-Embed-Token", "embed-secret")
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if i == 0 {
			assert.Equal(t, http.StatusOK, w.Code)
		} else {
			assert.Equal(t, http.StatusConflict, w.Code)
		}
	}
}
