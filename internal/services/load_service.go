package services

import (
	"context"
	"net/http"

	"github.com/swiftload/loadboard-service/internal/metrics"
	"github.com/swiftload/loadboard-service/internal/models"
	"github.com/swiftload/loadboard-service/internal/repository"
)

// LoadService реализует операции над грузами и их жизненным циклом.
type LoadService struct {
	Loads repository.LoadRepository
	Users repository.UserRepository
}

// NewLoadService создает новый экземпляр LoadService.
func NewLoadService(loads repository.LoadRepository, users repository.UserRepository) *LoadService {
	return &LoadService{Loads: loads, Users: users}
}

// CreateLoad размещает новый груз.
func (s *LoadService) CreateLoad(ctx context.Context, loadReq models.LoadRequest) (*models.Load, error) {
	poster, err := s.Users.GetUser(ctx, loadReq.PosterID)
	if err != nil {
		return nil, err
	}
	if poster.Role != models.PosterRole && !poster.IsAdmin() {
		return nil, models.ErrForbidden
	}
	return s.Loads.CreateLoad(ctx, loadReq)
}

// GetLoad возвращает груз по идентификатору.
func (s *LoadService) GetLoad(ctx context.Context, loadId string) (*models.Load, error) {
	return s.Loads.GetLoad(ctx, loadId)
}

// GetLoads возвращает список грузов по фильтру.
func (s *LoadService) GetLoads(ctx context.Context, filter models.LoadFilter) ([]models.Load, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "invalid status filter")
	}
	return s.Loads.GetLoads(ctx, filter)
}

// TransitionLoad выполняет прямой переход статуса груза от имени
// действующего пользователя. Метка исходного статуса берётся из чтения
// под блокировкой строки внутри транзакции перехода.
func (s *LoadService) TransitionLoad(ctx context.Context, loadId, actingUserId string, target models.LoadStatus) (*models.Load, error) {
	if !target.IsValid() {
		return nil, models.ErrIllegalTransition
	}

	actor, err := resolveActor(ctx, s.Users, actingUserId)
	if err != nil {
		return nil, err
	}

	load, prior, err := s.Loads.TransitionLoad(ctx, loadId, actor, target)
	if err != nil {
		return nil, err
	}
	metrics.LoadTransitionsTotal.WithLabelValues(string(prior), string(target)).Inc()
	return load, nil
}

// GetBoardStats возвращает сводные показатели доски.
func (s *LoadService) GetBoardStats(ctx context.Context) (*models.BoardStats, error) {
	return s.Loads.GetBoardStats(ctx)
}

// SaveLoad добавляет груз в закладки перевозчика.
func (s *LoadService) SaveLoad(ctx context.Context, userId, loadId string) error {
	user, err := s.Users.GetUser(ctx, userId)
	if err != nil {
		return err
	}
	if user.Role != models.BidderRole && !user.IsAdmin() {
		return models.ErrForbidden
	}
	if _, err = s.Loads.GetLoad(ctx, loadId); err != nil {
		return err
	}
	return s.Loads.SaveLoad(ctx, userId, loadId)
}

// GetSavedLoads возвращает закладки пользователя.
func (s *LoadService) GetSavedLoads(ctx context.Context, userId string) ([]models.Load, error) {
	if _, err := s.Users.GetUser(ctx, userId); err != nil {
		return nil, err
	}
	return s.Loads.GetSavedLoads(ctx, userId)
}
