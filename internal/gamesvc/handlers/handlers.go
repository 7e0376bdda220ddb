package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/go-chi/jwtauth"

	"github.com/minerush/game-services/internal/gamesvc/engine"
	"github.com/minerush/game-services/internal/gamesvc/service"
)

type Handler struct {
	tokenAuth      *jwtauth.JWTAuth
	authService    *service.AuthService
	configService  *service.ConfigService
	sessionService *service.SessionService
}

func NewHandler(authService *service.AuthService, configService *service.ConfigService,
	sessionService *service.SessionService) *Handler {
	return &Handler{
		authService:    authService,
		configService:  configService,
		sessionService: sessionService,
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func (rs *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	json.NewEncoder(w).Encode(rsp)
}

// CreateErrorResponse maps engine/service failures onto the wire.
func (rs *Handler) CreateErrorResponse(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, service.ErrInvalidBid):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrSessionNotActive), errors.Is(err, service.ErrStorageConflict):
		code = http.StatusConflict
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrConfigNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrTokenNotFound):
		code = http.StatusUnauthorized
	case errors.Is(err, service.ErrInsufficientPermission):
		code = http.StatusForbidden
	case errors.Is(err, service.ErrStorageUnavailable):
		code = http.StatusServiceUnavailable
	case errors.Is(err, engine.ErrInvalidConfig):
		// the referenced config is broken, not the request
		code = http.StatusUnprocessableEntity
	}

	rs.CreateResponse(w, Response{
		Code:  code,
		Error: err.Error(),
	})
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "game service is running at port " + os.Getenv("GAME_SERVICE_PORT"),
		Code:    200,
		Data:    nil,
	}
	json.NewEncoder(w).Encode(rsp)
}
