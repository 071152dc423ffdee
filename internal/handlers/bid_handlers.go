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

// BidHandler - структура для обработки HTTP-запросов по ставкам.
type BidHandler struct {
	Service *services.BidService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewBidHandler создает новый экземпляр BidHandler.
func NewBidHandler(service *services.BidService, logger zerolog.Logger, timeout time.Duration) *BidHandler {
	return &BidHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// SubmitBid обрабатывает запросы на подачу ставки.
func (h *BidHandler) SubmitBid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var bidReq models.BidRequest
	if err := json.NewDecoder(r.Body).Decode(&bidReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := utils.ValidateRequest(bidReq); err != nil {
		utils.SendError(w, err)
		return
	}

	newBid, err := h.Service.SubmitBid(ctx, bidReq)
	if err != nil {
		h.Logger.Error().Err(err).Str("loadId", bidReq.LoadID).Msg("failed to submit bid")
		utils.SendError(w, err)
		return
	}

	if err = utils.WriteJSON(w, http.StatusCreated, newBid); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

// AcceptBid обрабатывает запросы на принятие ставки.
func (h *BidHandler) AcceptBid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PUT is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	bidId := r.PathValue("bidId")
	actingUserId := r.URL.Query().Get("userId")
	if actingUserId == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "missing required query parameter: userId")
		return
	}

	load, err := h.Service.AcceptBid(ctx, bidId, actingUserId)
	if err != nil {
		h.Logger.Error().Err(err).Str("bidId", bidId).Msg("failed to accept bid")
		utils.SendError(w, err)
		return
	}

	if err = utils.WriteJSON(w, http.StatusOK, load); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

// RejectBid обрабатывает запросы на отклонение одной ставки.
func (h *BidHandler) RejectBid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PUT is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	bidId := r.PathValue("bidId")
	actingUserId := r.URL.Query().Get("userId")
	if actingUserId == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "missing required query parameter: userId")
		return
	}

	bid, err := h.Service.RejectBid(ctx, bidId, actingUserId)
	if err != nil {
		h.Logger.Error().Err(err).Str("bidId", bidId).Msg("failed to reject bid")
		utils.SendError(w, err)
		return
	}

	if err = utils.WriteJSON(w, http.StatusOK, bid); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

// GetLoadBids обрабатывает запросы на список ставок по грузу.
func (h *BidHandler) GetLoadBids(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	loadId := r.PathValue("loadId")

	bids, err := h.Service.GetLoadBids(ctx, loadId)
	if err != nil {
		h.Logger.Error().Err(err).Str("loadId", loadId).Msg("failed to list bids")
		utils.SendError(w, err)
		return
	}
	if bids == nil {
		bids = []models.Bid{}
	}

	if err = utils.WriteJSON(w, http.StatusOK, bids); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

// GetUserBids обрабатывает запросы на список ставок перевозчика.
func (h *BidHandler) GetUserBids(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	bidderId := r.URL.Query().Get("userId")
	if bidderId == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "missing required query parameter: userId")
		return
	}
	limit, offset, err := utils.ParseLimitOffset(r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	bids, err := h.Service.GetUserBids(ctx, bidderId, limit, offset)
	if err != nil {
		h.Logger.Error().Err(err).Str("bidderId", bidderId).Msg("failed to list user bids")
		utils.SendError(w, err)
		return
	}
	if bids == nil {
		bids = []models.Bid{}
	}

	if err = utils.WriteJSON(w, http.StatusOK, bids); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}
