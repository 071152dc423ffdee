package models

import "time"

// UserRole - роль пользователя на доске.
type UserRole string

const (
	PosterRole UserRole = "poster" // Размещает грузы и принимает ставки
	BidderRole UserRole = "bidder" // Подаёт ставки на открытые грузы
	AdminRole  UserRole = "admin"  // Полные права над любыми сущностями
)

// User представляет модель пользователя.
type User struct {
	ID           string    `json:"id"`
	Role         UserRole  `json:"role"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Company      string    `json:"company,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	MCNumber     string    `json:"mcNumber,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsAdmin сообщает, обладает ли пользователь административными правами.
func (u *User) IsAdmin() bool {
	return u.Role == AdminRole
}

// RegisterRequest представляет структуру запроса для регистрации пользователя.
type RegisterRequest struct {
	Role     UserRole `json:"role" validate:"required,oneof=poster bidder admin"`
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Company  string   `json:"company"`
	Phone    string   `json:"phone"`
	MCNumber string   `json:"mcNumber"`
}
