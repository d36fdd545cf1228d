package repository

import (
	"context"

	"airplain-service/internal/domain/entity"
)

// NotifierRepository defines the interface for the push notification
// dispatcher. Sends are fire-and-forget: the engine never sees delivery
// failures.
type NotifierRepository interface {
	Send(ctx context.Context, notification *entity.Notification) error
}
