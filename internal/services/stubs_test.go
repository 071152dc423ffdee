package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/swiftload/loadboard-service/internal/models"

	"github.com/google/uuid"
)

// memStore - потокобезопасное in-memory хранилище, реализующее все
// интерфейсы репозиториев. Проверки и мутации выполняются под одним
// мьютексом, что воспроизводит сериализацию транзакций по строке груза
// в Postgres-реализации.
type memStore struct {
	mu       sync.Mutex
	users    map[string]models.User
	loads    map[string]models.Load
	bids     map[string]models.Bid
	bidOrder []string
	messages []models.Message
	saved    map[string][]string
}

func newMemStore() *memStore {
	return &memStore{
		users: make(map[string]models.User),
		loads: make(map[string]models.Load),
		bids:  make(map[string]models.Bid),
		saved: make(map[string][]string),
	}
}

// addUser / addLoad / addBid - вспомогательные методы подготовки данных.

func (m *memStore) addUser(role models.UserRole) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	user := models.User{
		ID:        uuid.New().String(),
		Role:      role,
		Name:      "user-" + string(role),
		Email:     uuid.New().String() + "@example.com",
		CreatedAt: time.Now().UTC(),
	}
	m.users[user.ID] = user
	return &user
}

func (m *memStore) addLoad(posterId string, status models.LoadStatus) *models.Load {
	m.mu.Lock()
	defer m.mu.Unlock()
	load := models.Load{
		ID:           uuid.New().String(),
		PosterID:     posterId,
		Title:        "Dry Van TX to GA",
		PickupCity:   "Dallas",
		DeliveryCity: "Atlanta",
		Rate:         1200,
		Status:       status,
		CreatedAt:    time.Now().UTC(),
	}
	m.loads[load.ID] = load
	return &load
}

func (m *memStore) getLoad(loadId string) models.Load {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads[loadId]
}

func (m *memStore) getBid(bidId string) models.Bid {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bids[bidId]
}

// assignmentInvariantHolds проверяет, что перевозчик назначен тогда и
// только тогда, когда груз в статусе assigned, in_transit или delivered.
func (m *memStore) assignmentInvariantHolds() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, load := range m.loads {
		assigned := load.Status == models.AssignedLoad || load.Status == models.InTransitLoad || load.Status == models.DeliveredLoad
		if (load.AssignedBidderID != nil) != assigned {
			return false
		}
	}
	return true
}

// --- UserRepository ---

func (m *memStore) CreateUser(_ context.Context, userReq models.RegisterRequest, passwordHash string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user := models.User{
		ID:           uuid.New().String(),
		Role:         userReq.Role,
		Name:         userReq.Name,
		Email:        userReq.Email,
		PasswordHash: passwordHash,
		Company:      userReq.Company,
		Phone:        userReq.Phone,
		MCNumber:     userReq.MCNumber,
		CreatedAt:    time.Now().UTC(),
	}
	m.users[user.ID] = user
	return &user, nil
}

func (m *memStore) GetUser(_ context.Context, userId string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userId]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &user, nil
}

func (m *memStore) EmailExists(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) DeleteUser(_ context.Context, userId string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[userId]; !ok {
		return models.ErrNotFound
	}
	for _, load := range m.loads {
		if load.AssignedBidderID != nil && *load.AssignedBidderID == userId && load.Status == models.DeliveredLoad {
			return models.ErrUserRetained
		}
	}

	for id, load := range m.loads {
		if load.AssignedBidderID == nil || *load.AssignedBidderID != userId {
			continue
		}
		if load.Status == models.AssignedLoad || load.Status == models.InTransitLoad {
			for bidId, bid := range m.bids {
				if bid.LoadID == id && bid.Status == models.PendingBid {
					bid.Status = models.RejectedBid
					m.bids[bidId] = bid
				}
			}
			load.Status = models.CancelledLoad
			load.AssignedBidderID = nil
			m.loads[id] = load
		}
	}

	delete(m.users, userId)
	for id, load := range m.loads {
		if load.PosterID == userId {
			delete(m.loads, id)
		}
	}
	for id, bid := range m.bids {
		if bid.BidderID == userId {
			delete(m.bids, id)
		}
		if _, ok := m.loads[bid.LoadID]; !ok {
			delete(m.bids, id)
		}
	}
	return nil
}

// --- LoadRepository ---

func (m *memStore) CreateLoad(_ context.Context, loadReq models.LoadRequest) (*models.Load, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	load := models.Load{
		ID:           uuid.New().String(),
		PosterID:     loadReq.PosterID,
		Title:        loadReq.Title,
		PickupCity:   loadReq.PickupCity,
		DeliveryCity: loadReq.DeliveryCity,
		Weight:       loadReq.Weight,
		Equipment:    loadReq.Equipment,
		Rate:         loadReq.Rate,
		Notes:        loadReq.Notes,
		Status:       models.OpenLoad,
		CreatedAt:    time.Now().UTC(),
	}
	m.loads[load.ID] = load
	return &load, nil
}

func (m *memStore) GetLoad(_ context.Context, loadId string) (*models.Load, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	load, ok := m.loads[loadId]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &load, nil
}

func (m *memStore) GetLoads(_ context.Context, filter models.LoadFilter) ([]models.Load, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var loads []models.Load
	for _, load := range m.loads {
		if filter.Status != "" && load.Status != filter.Status {
			continue
		}
		if filter.MinRate > 0 && load.Rate < filter.MinRate {
			continue
		}
		loads = append(loads, load)
	}
	return loads, nil
}

func (m *memStore) TransitionLoad(_ context.Context, loadId string, actor *models.User, target models.LoadStatus) (*models.Load, models.LoadStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	load, ok := m.loads[loadId]
	if !ok {
		return nil, "", models.ErrNotFound
	}
	prior := load.Status
	if actor.ID != load.PosterID && !actor.IsAdmin() {
		return nil, "", models.ErrForbidden
	}
	if !load.Status.CanTransitionTo(target) {
		return nil, "", models.ErrIllegalTransition
	}

	if target == models.CancelledLoad {
		for id, bid := range m.bids {
			if bid.LoadID == loadId && bid.Status == models.PendingBid {
				bid.Status = models.RejectedBid
				m.bids[id] = bid
			}
		}
		load.AssignedBidderID = nil
	}
	load.Status = target
	m.loads[loadId] = load
	return &load, prior, nil
}

func (m *memStore) GetBoardStats(_ context.Context) (*models.BoardStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := models.BoardStats{Users: len(m.users), Loads: len(m.loads), Bids: len(m.bids)}
	for _, load := range m.loads {
		if load.Status == models.OpenLoad {
			stats.OpenLoads++
		}
	}
	return &stats, nil
}

func (m *memStore) SaveLoad(_ context.Context, userId, loadId string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, saved := range m.saved[userId] {
		if saved == loadId {
			return nil
		}
	}
	m.saved[userId] = append(m.saved[userId], loadId)
	return nil
}

func (m *memStore) GetSavedLoads(_ context.Context, userId string) ([]models.Load, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var loads []models.Load
	for i := len(m.saved[userId]) - 1; i >= 0; i-- {
		if load, ok := m.loads[m.saved[userId][i]]; ok {
			loads = append(loads, load)
		}
	}
	return loads, nil
}

// --- BidRepository ---

func (m *memStore) CreateBid(_ context.Context, bidReq models.BidRequest) (*models.Bid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	load, ok := m.loads[bidReq.LoadID]
	if !ok {
		return nil, models.ErrNotFound
	}
	if load.Status != models.OpenLoad {
		return nil, models.ErrLoadNotOpen
	}
	for _, bid := range m.bids {
		if bid.LoadID == bidReq.LoadID && bid.BidderID == bidReq.BidderID && bid.Status == models.PendingBid {
			return nil, models.ErrDuplicatePendingBid
		}
	}

	bid := models.Bid{
		ID:        uuid.New().String(),
		LoadID:    bidReq.LoadID,
		BidderID:  bidReq.BidderID,
		Amount:    bidReq.Amount,
		Note:      bidReq.Note,
		Status:    models.PendingBid,
		CreatedAt: time.Now().UTC(),
	}
	m.bids[bid.ID] = bid
	m.bidOrder = append(m.bidOrder, bid.ID)
	return &bid, nil
}

func (m *memStore) GetBid(_ context.Context, bidId string) (*models.Bid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bid, ok := m.bids[bidId]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &bid, nil
}

func (m *memStore) GetLoadBids(_ context.Context, loadId string) ([]models.Bid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var bids []models.Bid
	for i := len(m.bidOrder) - 1; i >= 0; i-- {
		bid, ok := m.bids[m.bidOrder[i]]
		if ok && bid.LoadID == loadId {
			bids = append(bids, bid)
		}
	}
	return bids, nil
}

func (m *memStore) GetUserBids(_ context.Context, bidderId string, limit, offset int) ([]models.Bid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var bids []models.Bid
	for i := len(m.bidOrder) - 1; i >= 0; i-- {
		bid, ok := m.bids[m.bidOrder[i]]
		if ok && bid.BidderID == bidderId {
			bids = append(bids, bid)
		}
	}
	return bids, nil
}

func (m *memStore) AcceptBid(_ context.Context, bidId string, actor *models.User) (*models.Load, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bid, ok := m.bids[bidId]
	if !ok {
		return nil, models.ErrNotFound
	}
	load := m.loads[bid.LoadID]
	if actor.ID != load.PosterID && !actor.IsAdmin() {
		return nil, models.ErrForbidden
	}
	if load.Status != models.OpenLoad {
		return nil, models.ErrLoadNotOpen
	}

	bid.Status = models.AcceptedBid
	m.bids[bidId] = bid
	for id, other := range m.bids {
		if other.LoadID == bid.LoadID && id != bidId {
			other.Status = models.RejectedBid
			m.bids[id] = other
		}
	}
	load.Status = models.AssignedLoad
	bidderId := bid.BidderID
	load.AssignedBidderID = &bidderId
	m.loads[load.ID] = load
	return &load, nil
}

func (m *memStore) RejectBid(_ context.Context, bidId string, actor *models.User) (*models.Bid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bid, ok := m.bids[bidId]
	if !ok {
		return nil, models.ErrNotFound
	}
	load := m.loads[bid.LoadID]
	if actor.ID != load.PosterID && !actor.IsAdmin() {
		return nil, models.ErrForbidden
	}
	bid.Status = models.RejectedBid
	m.bids[bidId] = bid
	return &bid, nil
}

// --- MessageRepository ---

func (m *memStore) CreateMessage(_ context.Context, msgReq models.MessageRequest) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := models.Message{
		ID:         uuid.New().String(),
		SenderID:   msgReq.SenderID,
		ReceiverID: msgReq.ReceiverID,
		Body:       msgReq.Body,
		CreatedAt:  time.Now().UTC(),
	}
	if msgReq.LoadID != "" {
		msg.LoadID = &msgReq.LoadID
	}
	m.messages = append(m.messages, msg)
	return &msg, nil
}

func (m *memStore) GetInbox(_ context.Context, userId string, limit, offset int) ([]models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var messages []models.Message
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].ReceiverID == userId {
			messages = append(messages, m.messages[i])
		}
	}
	return messages, nil
}
