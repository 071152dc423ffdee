package repository

import (
	"context"
	"time"

	"github.com/swiftload/loadboard-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MessageRepository - интерфейс для работы с сообщениями.
type MessageRepository interface {
	CreateMessage(ctx context.Context, msgReq models.MessageRequest) (*models.Message, error)
	GetInbox(ctx context.Context, userId string, limit, offset int) ([]models.Message, error)
}

// PostgresMessageRepository - реализация MessageRepository для базы данных.
type PostgresMessageRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresMessageRepository создает новый экземпляр PostgresMessageRepository.
func NewPostgresMessageRepository(db *pgxpool.Pool) *PostgresMessageRepository {
	return &PostgresMessageRepository{DB: db}
}

// CreateMessage создает новое сообщение.
func (r *PostgresMessageRepository) CreateMessage(ctx context.Context, msgReq models.MessageRequest) (*models.Message, error) {
	newMessage := models.Message{
		ID:         uuid.New().String(),
		SenderID:   msgReq.SenderID,
		ReceiverID: msgReq.ReceiverID,
		Body:       msgReq.Body,
		CreatedAt:  time.Now().UTC(),
	}
	if msgReq.LoadID != "" {
		newMessage.LoadID = &msgReq.LoadID
	}

	insertQuery := `INSERT INTO messages (id, sender_id, receiver_id, load_id, body, created_at)
	                VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newMessage.ID,
		newMessage.SenderID,
		newMessage.ReceiverID,
		newMessage.LoadID,
		newMessage.Body,
		newMessage.CreatedAt)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return &newMessage, nil
}

// GetInbox возвращает входящие сообщения пользователя, новые первыми.
func (r *PostgresMessageRepository) GetInbox(ctx context.Context, userId string, limit, offset int) ([]models.Message, error) {
	query := `
		SELECT m.id, m.sender_id, u.name, m.receiver_id, m.load_id, m.body, m.created_at
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.receiver_id = $1
		ORDER BY m.created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.DB.Query(ctx, query, userId, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.SenderID,
			&msg.SenderName,
			&msg.ReceiverID,
			&msg.LoadID,
			&msg.Body,
			&msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
