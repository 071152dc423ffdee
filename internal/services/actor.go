package services

import (
	"context"
	"errors"

	"github.com/swiftload/loadboard-service/internal/models"
	"github.com/swiftload/loadboard-service/internal/repository"
)

// resolveActor находит действующего пользователя по идентификатору принципала.
// Неизвестный принципал не имеет прав ни над одной сущностью, поэтому
// отсутствие пользователя здесь - ErrForbidden, а не ErrNotFound.
func resolveActor(ctx context.Context, users repository.UserRepository, actingUserId string) (*models.User, error) {
	actor, err := users.GetUser(ctx, actingUserId)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrForbidden
		}
		return nil, err
	}
	return actor, nil
}
