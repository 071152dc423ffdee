package services

import (
	"context"

	"github.com/swiftload/loadboard-service/internal/models"
	"github.com/swiftload/loadboard-service/internal/repository"
)

// MessageService реализует обмен сообщениями между пользователями.
type MessageService struct {
	Messages repository.MessageRepository
	Users    repository.UserRepository
}

// NewMessageService создает новый экземпляр MessageService.
func NewMessageService(messages repository.MessageRepository, users repository.UserRepository) *MessageService {
	return &MessageService{Messages: messages, Users: users}
}

// SendMessage отправляет сообщение другому пользователю.
func (s *MessageService) SendMessage(ctx context.Context, msgReq models.MessageRequest) (*models.Message, error) {
	if _, err := s.Users.GetUser(ctx, msgReq.SenderID); err != nil {
		return nil, err
	}
	if _, err := s.Users.GetUser(ctx, msgReq.ReceiverID); err != nil {
		return nil, err
	}
	return s.Messages.CreateMessage(ctx, msgReq)
}

// GetInbox возвращает входящие сообщения пользователя, новые первыми.
func (s *MessageService) GetInbox(ctx context.Context, userId string, limit, offset int) ([]models.Message, error) {
	if _, err := s.Users.GetUser(ctx, userId); err != nil {
		return nil, err
	}
	return s.Messages.GetInbox(ctx, userId, limit, offset)
}
