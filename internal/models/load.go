package models

import "time"

// LoadStatus - статус груза в жизненном цикле.
type LoadStatus string

const (
	OpenLoad      LoadStatus = "open"       // Груз открыт для ставок
	AssignedLoad  LoadStatus = "assigned"   // Груз назначен перевозчику
	InTransitLoad LoadStatus = "in_transit" // Груз в пути
	DeliveredLoad LoadStatus = "delivered"  // Груз доставлен
	CancelledLoad LoadStatus = "cancelled"  // Груз отменён
)

// directTransitions перечисляет переходы, доступные постеру напрямую.
// Переход open -> assigned сюда не входит: он выполняется только через
// принятие ставки, которое одновременно назначает перевозчика.
var directTransitions = map[LoadStatus][]LoadStatus{
	OpenLoad:      {CancelledLoad},
	AssignedLoad:  {InTransitLoad, CancelledLoad},
	InTransitLoad: {DeliveredLoad, CancelledLoad},
	DeliveredLoad: {},
	CancelledLoad: {},
}

// CanTransitionTo проверяет, разрешён ли прямой переход в статус target.
func (s LoadStatus) CanTransitionTo(target LoadStatus) bool {
	for _, next := range directTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsValid проверяет, что статус входит в набор известных статусов груза.
func (s LoadStatus) IsValid() bool {
	switch s {
	case OpenLoad, AssignedLoad, InTransitLoad, DeliveredLoad, CancelledLoad:
		return true
	}
	return false
}

// Load представляет модель груза.
type Load struct {
	ID               string     `json:"id"`
	PosterID         string     `json:"posterId"`
	Title            string     `json:"title"`
	PickupCity       string     `json:"pickupCity"`
	PickupState      string     `json:"pickupState,omitempty"`
	PickupDate       string     `json:"pickupDate,omitempty"`
	DeliveryCity     string     `json:"deliveryCity"`
	DeliveryState    string     `json:"deliveryState,omitempty"`
	DeliveryDate     string     `json:"deliveryDate,omitempty"`
	Weight           float64    `json:"weight,omitempty"`
	Equipment        string     `json:"equipment,omitempty"`
	Rate             float64    `json:"rate"`
	Notes            string     `json:"notes,omitempty"`
	Status           LoadStatus `json:"status"`
	AssignedBidderID *string    `json:"assignedBidderId,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// LoadRequest представляет структуру запроса для создания груза.
type LoadRequest struct {
	PosterID      string  `json:"posterId" validate:"required,uuid4"`
	Title         string  `json:"title" validate:"required"`
	PickupCity    string  `json:"pickupCity" validate:"required"`
	PickupState   string  `json:"pickupState"`
	PickupDate    string  `json:"pickupDate"`
	DeliveryCity  string  `json:"deliveryCity" validate:"required"`
	DeliveryState string  `json:"deliveryState"`
	DeliveryDate  string  `json:"deliveryDate"`
	Weight        float64 `json:"weight" validate:"gte=0"`
	Equipment     string  `json:"equipment"`
	Rate          float64 `json:"rate" validate:"gte=0"`
	Notes         string  `json:"notes"`
}

// LoadFilter описывает параметры поиска по доске грузов.
type LoadFilter struct {
	PickupCity   string
	DeliveryCity string
	Equipment    string
	MinRate      float64
	MaxWeight    float64
	Status       LoadStatus
	Limit        int
	Offset       int
}

// BoardStats - сводные показатели доски для главной страницы.
type BoardStats struct {
	Users     int `json:"users"`
	Loads     int `json:"loads"`
	OpenLoads int `json:"openLoads"`
	Bids      int `json:"bids"`
}
