package service

import (
	"context"
	"sync"
	"time"

	"github.com/minerush/game-services/internal/comm"
	"github.com/minerush/game-services/internal/gamesvc/models"
)

// memStore is an in-memory stand-in for the pgx stores. The CAS is
// atomic under the mutex, which is what the concurrency tests lean on.
type memStore struct {
	mu       sync.Mutex
	configs  map[int64]*models.GameConfig
	sessions map[int64]*models.GameSession
	actions  map[string]*models.GameAction
	events   map[string]*models.AnalyticsEvent
	tokens   map[string]*models.EmbedToken
	partners map[int64]*models.Partner
	nextID   int64

	// fault injection
	storeErr    error // returned by every call when set
	appendErr   error // returned by AppendAction only
	casFailures int   // next N CAS calls report a lost race
}

func newMemStore() *memStore {
	return &memStore{
		configs:  map[int64]*models.GameConfig{},
		sessions: map[int64]*models.GameSession{},
		actions:  map[string]*models.GameAction{},
		events:   map[string]*models.AnalyticsEvent{},
		tokens:   map[string]*models.EmbedToken{},
		partners: map[int64]*models.Partner{},
	}
}

func (m *memStore) GetConfigByID(ctx context.Context, configID int64) (*models.GameConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storeErr != nil {
		return nil, m.storeErr
	}
	cfg, ok := m.configs[configID]
	if !ok {
		return nil, nil
	}
	cp := *cfg
	return &cp, nil
}

func (m *memStore) GetSessionByID(ctx context.Context, sessionID int64) (*models.GameSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storeErr != nil {
		return nil, m.storeErr
	}
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memStore) CreateSession(ctx context.Context, playerIdentifier string, gameConfigID int64) (*models.GameSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storeErr != nil {
		return nil, m.storeErr
	}
	m.nextID++
	s := &models.GameSession{
		ID:               m.nextID,
		PlayerIdentifier: playerIdentifier,
		GameConfigID:     gameConfigID,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	m.sessions[s.ID] = s
	cp := *s
	return &cp, nil
}

func (m *memStore) CASAdvanceSession(ctx context.Context, sessionID int64, expectedMoveCount, newMoveCount int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storeErr != nil {
		return false, m.storeErr
	}
	if m.casFailures > 0 {
		m.casFailures--
		return false, nil
	}
	s, ok := m.sessions[sessionID]
	if !ok || s.MoveCount != expectedMoveCount {
		return false, nil
	}
	s.MoveCount = newMoveCount
	s.UpdatedAt = time.Now()
	return true, nil
}

func (m *memStore) AppendAction(ctx context.Context, action *models.GameAction) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storeErr != nil {
		return false, m.storeErr
	}
	if m.appendErr != nil {
		return false, m.appendErr
	}
	if _, exists := m.actions[action.ID]; exists {
		return false, nil
	}
	cp := *action
	cp.CreatedAt = time.Now()
	m.actions[action.ID] = &cp
	return true, nil
}

func (m *memStore) GetActionByID(ctx context.Context, actionID string) (*models.GameAction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storeErr != nil {
		return nil, m.storeErr
	}
	a, ok := m.actions[actionID]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *memStore) AppendEvent(ctx context.Context, event *models.AnalyticsEvent) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storeErr != nil {
		return false, m.storeErr
	}
	if _, exists := m.events[event.ID]; exists {
		return false, nil
	}
	cp := *event
	cp.CreatedAt = time.Now()
	m.events[event.ID] = &cp
	return true, nil
}

func (m *memStore) GetTokenByValue(ctx context.Context, token string) (*models.EmbedToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storeErr != nil {
		return nil, m.storeErr
	}
	t, ok := m.tokens[token]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *memStore) GetPartnerByID(ctx context.Context, partnerID int64) (*models.Partner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storeErr != nil {
		return nil, m.storeErr
	}
	p, ok := m.partners[partnerID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) actionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.actions)
}

func (m *memStore) sessionMoveCount(sessionID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[sessionID].MoveCount
}

// memPublisher records what would have gone out on the ledger stream.
type memPublisher struct {
	mu     sync.Mutex
	moves  []comm.MoveRecord
	events []comm.EventRecord
}

func (p *memPublisher) PublishMove(record comm.MoveRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.moves = append(p.moves, record)
	return nil
}

func (p *memPublisher) PublishEvent(record comm.EventRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, record)
	return nil
}

func (p *memPublisher) moveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.moves)
}
