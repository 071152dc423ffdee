package models

import "time"

// BidStatus - статус ставки.
type BidStatus string

const (
	PendingBid  BidStatus = "pending"  // Ставка ожидает решения
	AcceptedBid BidStatus = "accepted" // Ставка принята
	RejectedBid BidStatus = "rejected" // Ставка отклонена
)

// Bid представляет модель ставки на груз.
type Bid struct {
	ID        string    `json:"id"`
	LoadID    string    `json:"loadId"`
	BidderID  string    `json:"bidderId"`
	Amount    float64   `json:"amount"`
	Note      string    `json:"note,omitempty"`
	Status    BidStatus `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// BidRequest представляет структуру запроса для подачи ставки.
type BidRequest struct {
	LoadID   string  `json:"loadId" validate:"required,uuid4"`
	BidderID string  `json:"bidderId" validate:"required,uuid4"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note"`
}
