package service

import (
	"context"

	"github.com/google/uuid"
)

const (
	UserEventRegistered = "user.registered"
	UserEventDeleted    = "user.deleted"
	PostEventCreated    = "post.created"
	PostEventDeleted    = "post.deleted"
)

type UserEvent struct {
	EventType string    `json:"event_type"`
	UserID    uuid.UUID `json:"user_id"`
}

type PostEvent struct {
	EventType string    `json:"event_type"`
	PostID    uuid.UUID `json:"post_id"`
	UserID    uuid.UUID `json:"user_id"`
}

// EventPublisher pushes lifecycle events to the message broker.
// Publishing is best-effort: callers log failures and move on.
type EventPublisher interface {
	PublishUserEvent(ctx context.Context, e UserEvent) error
	PublishPostEvent(ctx context.Context, e PostEvent) error
}
