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

// MessageHandler - структура для обработки HTTP-запросов по сообщениям.
type MessageHandler struct {
	Service *services.MessageService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewMessageHandler создает новый экземпляр MessageHandler.
func NewMessageHandler(service *services.MessageService, logger zerolog.Logger, timeout time.Duration) *MessageHandler {
	return &MessageHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// SendMessage обрабатывает запросы на отправку сообщения.
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var msgReq models.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&msgReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := utils.ValidateRequest(msgReq); err != nil {
		utils.SendError(w, err)
		return
	}

	newMessage, err := h.Service.SendMessage(ctx, msgReq)
	if err != nil {
		h.Logger.Error().Err(err).Str("receiverId", msgReq.ReceiverID).Msg("failed to send message")
		utils.SendError(w, err)
		return
	}

	if err = utils.WriteJSON(w, http.StatusCreated, newMessage); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

// GetInbox обрабатывает запросы на входящие сообщения.
func (h *MessageHandler) GetInbox(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	userId := r.URL.Query().Get("userId")
	if userId == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "missing required query parameter: userId")
		return
	}
	limit, offset, err := utils.ParseLimitOffset(r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	messages, err := h.Service.GetInbox(ctx, userId, limit, offset)
	if err != nil {
		h.Logger.Error().Err(err).Str("userId", userId).Msg("failed to get inbox")
		utils.SendError(w, err)
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}

	if err = utils.WriteJSON(w, http.StatusOK, messages); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}
