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

// LoadHandler - структура для обработки HTTP-запросов по грузам.
type LoadHandler struct {
	Service *services.LoadService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewLoadHandler создает новый экземпляр LoadHandler.
func NewLoadHandler(service *services.LoadService, logger zerolog.Logger, timeout time.Duration) *LoadHandler {
	return &LoadHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// CreateLoad обрабатывает запросы на размещение груза.
func (h *LoadHandler) CreateLoad(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var loadReq models.LoadRequest
	if err := json.NewDecoder(r.Body).Decode(&loadReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := utils.ValidateRequest(loadReq); err != nil {
		utils.SendError(w, err)
		return
	}

	newLoad, err := h.Service.CreateLoad(ctx, loadReq)
	if err != nil {
		h.Logger.Error().Err(err).Str("posterId", loadReq.PosterID).Msg("failed to create load")
		utils.SendError(w, err)
		return
	}

	if err = utils.WriteJSON(w, http.StatusCreated, newLoad); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

// GetLoads обрабатывает запросы на поиск по доске грузов.
func (h *LoadHandler) GetLoads(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	query := r.URL.Query()
	limit, offset, err := utils.ParseLimitOffset(query.Get("limit"), query.Get("offset"))
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	minRate, err := utils.ParseFloatQuery(query.Get("minRate"))
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	maxWeight, err := utils.ParseFloatQuery(query.Get("maxWeight"))
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := models.LoadFilter{
		PickupCity:   query.Get("pickupCity"),
		DeliveryCity: query.Get("deliveryCity"),
		Equipment:    query.Get("equipment"),
		MinRate:      minRate,
		MaxWeight:    maxWeight,
		Status:       models.LoadStatus(query.Get("status")),
		Limit:        limit,
		Offset:       offset,
	}

	loads, err := h.Service.GetLoads(ctx, filter)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to list loads")
		utils.SendError(w, err)
		return
	}
	if loads == nil {
		loads = []models.Load{}
	}

	if err = utils.WriteJSON(w, http.StatusOK, loads); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

// GetLoad обрабатывает запросы на получение одного груза.
func (h *LoadHandler) GetLoad(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	loadId := r.PathValue("loadId")

	load, err := h.Service.GetLoad(ctx, loadId)
	if err != nil {
		h.Logger.Error().Err(err).Str("loadId", loadId).Msg("failed to get load")
		utils.SendError(w, err)
		return
	}

	if err = utils.WriteJSON(w, http.StatusOK, load); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

// UpdateLoadStatus обрабатывает запросы на прямой переход статуса груза.
func (h *LoadHandler) UpdateLoadStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PUT is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	loadId := r.PathValue("loadId")
	actingUserId := r.URL.Query().Get("userId")
	status := r.URL.Query().Get("status")
	if actingUserId == "" || status == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "missing required query parameters: userId or status")
		return
	}

	load, err := h.Service.TransitionLoad(ctx, loadId, actingUserId, models.LoadStatus(status))
	if err != nil {
		h.Logger.Error().Err(err).Str("loadId", loadId).Str("status", status).Msg("failed to update load status")
		utils.SendError(w, err)
		return
	}

	if err = utils.WriteJSON(w, http.StatusOK, load); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

// GetBoardStats обрабатывает запросы на сводные показатели доски.
func (h *LoadHandler) GetBoardStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	stats, err := h.Service.GetBoardStats(ctx)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to get board stats")
		utils.SendError(w, err)
		return
	}

	if err = utils.WriteJSON(w, http.StatusOK, stats); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

// SaveLoad обрабатывает запросы на добавление груза в закладки.
func (h *LoadHandler) SaveLoad(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	loadId := r.PathValue("loadId")
	userId := r.URL.Query().Get("userId")
	if userId == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "missing required query parameter: userId")
		return
	}

	if err := h.Service.SaveLoad(ctx, userId, loadId); err != nil {
		h.Logger.Error().Err(err).Str("loadId", loadId).Msg("failed to save load")
		utils.SendError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetSavedLoads обрабатывает запросы на список закладок пользователя.
func (h *LoadHandler) GetSavedLoads(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	userId := r.PathValue("userId")

	loads, err := h.Service.GetSavedLoads(ctx, userId)
	if err != nil {
		h.Logger.Error().Err(err).Str("userId", userId).Msg("failed to list saved loads")
		utils.SendError(w, err)
		return
	}
	if loads == nil {
		loads = []models.Load{}
	}

	if err = utils.WriteJSON(w, http.StatusOK, loads); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}
