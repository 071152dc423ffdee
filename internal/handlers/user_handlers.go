package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/swiftload/loadboard-service/internal/models"
	"github.com/swiftload/loadboard-service/internal/services"
	"github.com/swiftload/loadboard-service/internal/utils"

	"github.com/rs/zerolog"
)

// UserHandler - структура для обработки HTTP-запросов по пользователям.
type UserHandler struct {
	Service *services.UserService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewUserHandler создает новый экземпляр UserHandler.
func NewUserHandler(service *services.UserService, logger zerolog.Logger, timeout time.Duration) *UserHandler {
	return &UserHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// Register обрабатывает запросы на регистрацию пользователя.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var userReq models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&userReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := utils.ValidateRequest(userReq); err != nil {
		utils.SendError(w, err)
		return
	}

	newUser, err := h.Service.Register(ctx, userReq)
	if err != nil {
		h.Logger.Error().Err(err).Str("email", userReq.Email).Msg("failed to register user")
		utils.SendError(w, err)
		return
	}

	if err = utils.WriteJSON(w, http.StatusCreated, newUser); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

// GetUser обрабатывает запросы на профиль пользователя.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	userId := r.PathValue("userId")

	user, err := h.Service.GetUser(ctx, userId)
	if err != nil {
		h.Logger.Error().Err(err).Str("userId", userId).Msg("failed to get user")
		utils.SendError(w, err)
		return
	}

	if err = utils.WriteJSON(w, http.StatusOK, user); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

// DeleteUser обрабатывает запросы на удаление пользователя.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only DELETE is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	userId := r.PathValue("userId")
	actingUserId := r.URL.Query().Get("userId")
	if actingUserId == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "missing required query parameter: userId")
		return
	}

	if err := h.Service.DeleteUser(ctx, userId, actingUserId); err != nil {
		h.Logger.Error().Err(err).Str("userId", userId).Msg("failed to delete user")
		utils.SendError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
