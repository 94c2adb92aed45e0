package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/auth_service/internal/events"
	"github.com/Skotchmaster/auth_service/internal/logging"
	"github.com/Skotchmaster/auth_service/internal/models"
)

const publishTimeout = 5 * time.Second

// publish is best-effort: failures are logged and never reach the caller.
func publish(ctx context.Context, p events.Publisher, typ string, u *models.User) {
	if p == nil || u == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	e := events.Event{
		Type:     typ,
		UserID:   u.ID.String(),
		Username: u.Username,
		At:       time.Now().UTC(),
	}
	if err := p.Publish(ctx, e); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "type", typ, "error", err)
	}
}
