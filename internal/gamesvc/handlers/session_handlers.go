package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"

	"github.com/minerush/game-services/internal/gamesvc/models"
)

func (h *Handler) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	var request struct {
		GameConfigID     int64  `json:"game_config_id"`
		PlayerIdentifier string `json:"player_identifier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	partner := partnerFrom(r.Context())

	session, err := h.sessionService.CreateSession(r.Context(), request.PlayerIdentifier, request.GameConfigID, partner.ID)
	if err != nil {
		h.CreateErrorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "session created",
		Code:    http.StatusCreated,
		Data: map[string]interface{}{
			"session": session,
			"state":   models.SessionActive,
		},
	})
}

func (h *Handler) SubmitMoveHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid session id"})
		return
	}

	var request struct {
		Bid      decimal.Decimal `json:"bid"`
		ActionID string          `json:"action_id"` // optional, for idempotent replay
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	partner := partnerFrom(r.Context())

	result, err := h.sessionService.SubmitMove(r.Context(), sessionID, partner.ID, request.Bid, request.ActionID)
	if err != nil {
		h.CreateErrorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "move resolved",
		Code:    http.StatusOK,
		Data: map[string]interface{}{
			"action_id":  result.ActionID,
			"outcome":    result.Outcome,
			"payout":     result.Payout,
			"move_index": result.MoveIndex,
			"state":      result.State,
		},
	})
}

func (h *Handler) RecordEventHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid session id"})
		return
	}

	var request struct {
		EventID   string          `json:"event_id"` // optional
		EventType string          `json:"event_type"`
		Payload   json.RawMessage `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}
	if request.EventType == "" {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "event_type is required"})
		return
	}

	partner := partnerFrom(r.Context())

	event := &models.AnalyticsEvent{
		ID:            request.EventID,
		GameSessionID: sessionID,
		EventType:     request.EventType,
		Payload:       request.Payload,
	}

	if err := h.sessionService.RecordEvent(r.Context(), event, partner.ID); err != nil {
		h.CreateErrorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "event recorded",
		Code:    http.StatusAccepted,
		Data:    map[string]interface{}{"event_id": event.ID},
	})
}

func (h *Handler) GetConfigHandler(w http.ResponseWriter, r *http.Request) {
	configID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid config id"})
		return
	}

	partner := partnerFrom(r.Context())

	cfg, err := h.configService.GetConfigForPartner(r.Context(), configID, partner.ID)
	if err != nil {
		h.CreateErrorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Code: http.StatusOK,
		Data: cfg,
	})
}
