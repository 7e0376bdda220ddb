package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/minerush/game-services/internal/comm"
	"github.com/minerush/game-services/internal/gamesvc/engine"
	"github.com/minerush/game-services/internal/gamesvc/models"
)

// Config carries the engine tunables. Plain struct, no env coupling, so
// tests can set what they need.
type Config struct {
	// CASRetries bounds how often a lost move-counter race is retried
	// before surfacing ErrStorageConflict.
	CASRetries int
}

const defaultCASRetries = 3

// MoveResult is what one resolved move reports back to the caller.
type MoveResult struct {
	ActionID  string
	Outcome   engine.Outcome
	Payout    decimal.Decimal
	MoveIndex int
	State     models.SessionState
}

type SessionService struct {
	sessionStore   SessionStore
	configStore    ConfigStore
	actionStore    ActionStore
	analyticsStore AnalyticsStore
	publisher      Publisher
	source         engine.Source
	cache          *engine.DistributionCache
	casRetries     int
}

func NewSessionService(cfg Config, sessionStore SessionStore, configStore ConfigStore,
	actionStore ActionStore, analyticsStore AnalyticsStore,
	publisher Publisher, source engine.Source) *SessionService {

	retries := cfg.CASRetries
	if retries <= 0 {
		retries = defaultCASRetries
	}

	return &SessionService{
		sessionStore:   sessionStore,
		configStore:    configStore,
		actionStore:    actionStore,
		analyticsStore: analyticsStore,
		publisher:      publisher,
		source:         source,
		cache:          engine.NewDistributionCache(),
		casRetries:     retries,
	}
}

// CreateSession starts a new round for a player under one game config.
// A new round is always a new session; move counts never reset.
func (s *SessionService) CreateSession(ctx context.Context, playerIdentifier string, gameConfigID, partnerID int64) (*models.GameSession, error) {
	cfg, err := s.loadConfig(ctx, gameConfigID, partnerID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessionStore.CreateSession(ctx, playerIdentifier, cfg.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return session, nil
}

// SubmitMove resolves one move: state check, bid check, outcome draw,
// payout, durable append. The session's move counter advances with a
// compare-and-swap so two concurrent moves can never share one slot.
// actionID may be empty; the caller supplies it to replay a failed
// submission idempotently.
func (s *SessionService) SubmitMove(ctx context.Context, sessionID, partnerID int64, bid decimal.Decimal, actionID string) (*MoveResult, error) {
	if actionID == "" {
		actionID = uuid.NewString()
	}

	for attempt := 0; attempt < s.casRetries; attempt++ {
		result, retry, err := s.tryMove(ctx, sessionID, partnerID, bid, actionID)
		if err != nil {
			return nil, err
		}
		if retry {
			continue
		}
		return result, nil
	}

	return nil, fmt.Errorf("%w: session %d", ErrStorageConflict, sessionID)
}

func (s *SessionService) tryMove(ctx context.Context, sessionID, partnerID int64, bid decimal.Decimal, actionID string) (*MoveResult, bool, error) {
	session, err := s.sessionStore.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if session == nil {
		return nil, false, ErrSessionNotFound
	}

	// the config may have been deleted out from under a live session
	cfg, err := s.loadConfig(ctx, session.GameConfigID, partnerID)
	if err != nil {
		return nil, false, err
	}

	// a replayed action id returns the recorded move instead of
	// consuming another slot; the first durable record is the truth
	existing, err := s.actionStore.GetActionByID(ctx, actionID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if existing != nil {
		return recordedResult(existing, cfg.MovesPerRound), false, nil
	}

	if session.State(cfg.MovesPerRound) != models.SessionActive {
		return nil, false, fmt.Errorf("%w: session %d", ErrSessionNotActive, sessionID)
	}

	if !cfg.AllowedBid(bid) {
		return nil, false, fmt.Errorf("%w: %s", ErrInvalidBid, bid)
	}

	dist, err := s.distribution(cfg)
	if err != nil {
		return nil, false, err
	}

	outcome, err := engine.Draw(dist, s.source)
	if err != nil {
		return nil, false, err
	}

	payout, err := engine.PayoutFor(outcome, bid, cfg.Multipliers())
	if err != nil {
		return nil, false, err
	}

	// reserve the move slot first; a lost race means another move for
	// this session landed in between, so re-read and retry
	newCount := session.MoveCount + 1
	advanced, err := s.sessionStore.CASAdvanceSession(ctx, sessionID, session.MoveCount, newCount)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if !advanced {
		return nil, true, nil
	}

	action := &models.GameAction{
		ID:            actionID,
		GameSessionID: sessionID,
		ActionType:    "move",
		Payload: models.MovePayload{
			Bid:       bid,
			Outcome:   outcome,
			Payout:    payout,
			MoveIndex: newCount,
		},
	}

	inserted, err := s.actionStore.AppendAction(ctx, action)
	if err != nil {
		// the record did not land, so the reserved slot is handed back
		// and the move reported failed, never half-resolved
		s.releaseSlot(ctx, sessionID, newCount, session.MoveCount)
		return nil, false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if !inserted {
		// a concurrent submission with this action id recorded the move
		// first; hand the slot back and serve the durable record
		s.releaseSlot(ctx, sessionID, newCount, session.MoveCount)
		existing, err := s.actionStore.GetActionByID(ctx, actionID)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		if existing == nil {
			return nil, false, fmt.Errorf("%w: action %s vanished after append conflict", ErrStorageUnavailable, actionID)
		}
		return recordedResult(existing, cfg.MovesPerRound), false, nil
	}

	state := models.SessionRoundComplete
	if newCount < cfg.MovesPerRound {
		state = models.SessionActive
	}

	record := comm.MoveRecord{
		ActionID:   actionID,
		SessionID:  sessionID,
		ConfigID:   cfg.ID,
		Bid:        bid.String(),
		Outcome:    string(outcome),
		Payout:     payout.String(),
		MoveIndex:  newCount,
		State:      string(state),
		ResolvedAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishMove(record); err != nil {
		log.Errorf("Error publishing move record %s: %s", actionID, err)
	}

	return &MoveResult{
		ActionID:  actionID,
		Outcome:   outcome,
		Payout:    payout,
		MoveIndex: newCount,
		State:     state,
	}, false, nil
}

// releaseSlot swaps the move counter back after an append that did not
// produce a new record. Best effort: if the counter moved on in the
// meantime the mismatch is logged for reconciliation.
func (s *SessionService) releaseSlot(ctx context.Context, sessionID int64, fromCount, toCount int) {
	released, err := s.sessionStore.CASAdvanceSession(ctx, sessionID, fromCount, toCount)
	if err != nil {
		log.Errorf("Error releasing move slot for session %d: %s", sessionID, err)
		return
	}
	if !released {
		log.Errorf("Error releasing move slot for session %d: counter moved past %d", sessionID, fromCount)
	}
}

// recordedResult rebuilds a move result from its durable record.
func recordedResult(action *models.GameAction, movesPerRound int) *MoveResult {
	state := models.SessionActive
	if action.Payload.MoveIndex >= movesPerRound {
		state = models.SessionRoundComplete
	}
	return &MoveResult{
		ActionID:  action.ID,
		Outcome:   action.Payload.Outcome,
		Payout:    action.Payload.Payout,
		MoveIndex: action.Payload.MoveIndex,
		State:     state,
	}
}

// RecordEvent appends one telemetry event for a session and mirrors it
// onto the ledger stream.
func (s *SessionService) RecordEvent(ctx context.Context, event *models.AnalyticsEvent, partnerID int64) error {
	session, err := s.sessionStore.GetSessionByID(ctx, event.GameSessionID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if session == nil {
		return ErrSessionNotFound
	}
	if _, err := s.loadConfig(ctx, session.GameConfigID, partnerID); err != nil {
		return err
	}

	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	inserted, err := s.analyticsStore.AppendEvent(ctx, event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if !inserted {
		// a replayed event id is already on record and already published
		log.Infof("duplicate analytics event %s ignored", event.ID)
		return nil
	}

	record := comm.EventRecord{
		EventID:    event.ID,
		SessionID:  event.GameSessionID,
		EventType:  event.EventType,
		Payload:    event.Payload,
		ReceivedAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishEvent(record); err != nil {
		log.Errorf("Error publishing analytics event %s: %s", event.ID, err)
	}

	return nil
}

// loadConfig fetches a config scoped to the calling partner: global
// configs are visible to everyone, partner-owned configs only to their
// owner. A config owned by someone else reads as not found.
func (s *SessionService) loadConfig(ctx context.Context, configID, partnerID int64) (*models.GameConfig, error) {
	cfg, err := s.configStore.GetConfigByID(ctx, configID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: config %d", ErrConfigNotFound, configID)
	}
	if !cfg.Owner.Global && cfg.Owner.PartnerID != partnerID {
		return nil, fmt.Errorf("%w: config %d", ErrConfigNotFound, configID)
	}
	return cfg, nil
}

// distribution serves the config's sampling table from the per-revision
// cache, normalizing on miss.
func (s *SessionService) distribution(cfg *models.GameConfig) (engine.Distribution, error) {
	if dist, ok := s.cache.Get(cfg.ID, cfg.UpdatedAt); ok {
		return dist, nil
	}

	dist, err := engine.Normalize(cfg.Weights())
	if err != nil {
		return engine.Distribution{}, err
	}

	s.cache.Put(cfg.ID, cfg.UpdatedAt, dist)
	return dist, nil
}
