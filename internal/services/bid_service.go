package services

import (
	"context"

	"github.com/swiftload/loadboard-service/internal/metrics"
	"github.com/swiftload/loadboard-service/internal/models"
	"github.com/swiftload/loadboard-service/internal/repository"
)

// BidService реализует операции реестра ставок и их разрешения.
type BidService struct {
	Bids  repository.BidRepository
	Loads repository.LoadRepository
	Users repository.UserRepository
}

// NewBidService создает новый экземпляр BidService.
func NewBidService(bids repository.BidRepository, loads repository.LoadRepository, users repository.UserRepository) *BidService {
	return &BidService{Bids: bids, Loads: loads, Users: users}
}

// SubmitBid подает новую ставку на открытый груз.
func (s *BidService) SubmitBid(ctx context.Context, bidReq models.BidRequest) (*models.Bid, error) {
	if bidReq.Amount <= 0 {
		return nil, models.ErrInvalidAmount
	}

	bidder, err := s.Users.GetUser(ctx, bidReq.BidderID)
	if err != nil {
		return nil, err
	}
	if bidder.Role != models.BidderRole && !bidder.IsAdmin() {
		return nil, models.ErrForbidden
	}

	bid, err := s.Bids.CreateBid(ctx, bidReq)
	if err != nil {
		return nil, err
	}
	metrics.BidsSubmittedTotal.Inc()
	return bid, nil
}

// AcceptBid принимает ставку от имени действующего пользователя: груз
// назначается перевозчику, остальные ставки отклоняются.
func (s *BidService) AcceptBid(ctx context.Context, bidId, actingUserId string) (*models.Load, error) {
	actor, err := resolveActor(ctx, s.Users, actingUserId)
	if err != nil {
		return nil, err
	}

	load, err := s.Bids.AcceptBid(ctx, bidId, actor)
	if err != nil {
		return nil, err
	}
	metrics.BidsResolvedTotal.WithLabelValues(string(models.AcceptedBid)).Inc()
	metrics.LoadTransitionsTotal.WithLabelValues(string(models.OpenLoad), string(models.AssignedLoad)).Inc()
	return load, nil
}

// RejectBid отклоняет одну ставку от имени действующего пользователя.
func (s *BidService) RejectBid(ctx context.Context, bidId, actingUserId string) (*models.Bid, error) {
	actor, err := resolveActor(ctx, s.Users, actingUserId)
	if err != nil {
		return nil, err
	}

	bid, err := s.Bids.RejectBid(ctx, bidId, actor)
	if err != nil {
		return nil, err
	}
	metrics.BidsResolvedTotal.WithLabelValues(string(models.RejectedBid)).Inc()
	return bid, nil
}

// GetLoadBids возвращает ставки по грузу, новые первыми.
func (s *BidService) GetLoadBids(ctx context.Context, loadId string) ([]models.Bid, error) {
	if _, err := s.Loads.GetLoad(ctx, loadId); err != nil {
		return nil, err
	}
	return s.Bids.GetLoadBids(ctx, loadId)
}

// GetUserBids возвращает ставки перевозчика, новые первыми.
func (s *BidService) GetUserBids(ctx context.Context, bidderId string, limit, offset int) ([]models.Bid, error) {
	if _, err := s.Users.GetUser(ctx, bidderId); err != nil {
		return nil, err
	}
	return s.Bids.GetUserBids(ctx, bidderId, limit, offset)
}

