package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/swiftload/loadboard-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, role, name, email, password_hash, company, phone, mc_number, created_at`

// UserRepository - интерфейс для работы с пользователями.
type UserRepository interface {
	CreateUser(ctx context.Context, userReq models.RegisterRequest, passwordHash string) (*models.User, error)
	GetUser(ctx context.Context, userId string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	DeleteUser(ctx context.Context, userId string) error
}

// PostgresUserRepository - реализация UserRepository для базы данных.
type PostgresUserRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresUserRepository создает новый экземпляр PostgresUserRepository.
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// CreateUser создает нового пользователя.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, userReq models.RegisterRequest, passwordHash string) (*models.User, error) {
	newUser := models.User{
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
	insertQuery := `INSERT INTO users (id, role, name, email, password_hash, company, phone, mc_number, created_at)
	                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newUser.ID,
		newUser.Role,
		newUser.Name,
		newUser.Email,
		newUser.PasswordHash,
		newUser.Company,
		newUser.Phone,
		newUser.MCNumber,
		newUser.CreatedAt)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return &newUser, nil
}

// GetUser возвращает пользователя по идентификатору.
func (r *PostgresUserRepository) GetUser(ctx context.Context, userId string) (*models.User, error) {
	var user models.User
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	err := r.DB.QueryRow(ctx, query, userId).Scan(
		&user.ID,
		&user.Role,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Company,
		&user.Phone,
		&user.MCNumber,
		&user.CreatedAt)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return &user, nil
}

// EmailExists проверяет, зарегистрирован ли уже такой email.
func (r *PostgresUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	err := r.DB.QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// DeleteUser удаляет пользователя в одной транзакции. Активные назначения
// пользователя снимаются через отмену груза, как в обычном пути отмены.
// Пользователь с доставленными грузами сохраняется для истории перевозок.
// Размещённые им грузы и его ставки удаляются каскадом на уровне хранилища.
func (r *PostgresUserRepository) DeleteUser(ctx context.Context, userId string) error {
	return execTx(ctx, r.DB, func(tx pgx.Tx) error {
		var delivered bool
		existsQuery := `SELECT EXISTS(SELECT 1 FROM loads WHERE assigned_bidder_id = $1 AND status = $2)`
		if err := tx.QueryRow(ctx, existsQuery, userId, models.DeliveredLoad).Scan(&delivered); err != nil {
			return mapStoreError(err)
		}
		if delivered {
			return models.ErrUserRetained
		}

		rejectQuery := `UPDATE bids SET status = $1
		                WHERE status = $2 AND load_id IN
		                  (SELECT id FROM loads WHERE assigned_bidder_id = $3 AND status IN ($4, $5))`
		if _, err := tx.Exec(ctx, rejectQuery, models.RejectedBid, models.PendingBid, userId, models.AssignedLoad, models.InTransitLoad); err != nil {
			return mapStoreError(err)
		}

		releaseQuery := `UPDATE loads SET status = $1, assigned_bidder_id = NULL
		                 WHERE assigned_bidder_id = $2 AND status IN ($3, $4)`
		if _, err := tx.Exec(ctx, releaseQuery, models.CancelledLoad, userId, models.AssignedLoad, models.InTransitLoad); err != nil {
			return mapStoreError(err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userId)
		if err != nil {
			return mapStoreError(err)
		}
		if tag.RowsAffected() == 0 {
			return models.ErrNotFound
		}
		return nil
	})
}
