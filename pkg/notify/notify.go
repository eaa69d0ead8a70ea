package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Action string

const (
	ActionCreated  Action = "created"
	ActionCanceled Action = "canceled"
	ActionDeleted  Action = "deleted"
)

// Event is the message published for every booking mutation made on behalf of a user
type Event struct {
	ID          uuid.UUID `json:"event_id"`
	Action      Action    `json:"action"`
	BookingID   int64     `json:"booking_id"`
	ActorUserID int64     `json:"actor_user_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewEvent(action Action, bookingID, actorUserID int64, at time.Time) Event {
	return Event{
		ID:          uuid.New(),
		Action:      action,
		BookingID:   bookingID,
		ActorUserID: actorUserID,
		OccurredAt:  at,
	}
}

// RoutingKey is the topic key the event is published under, e.g. booking.canceled
func (e Event) RoutingKey() string {
	return "booking." + string(e.Action)
}

type Notifier interface {
	Notify(ctx context.Context, event Event) error
	Close() error
}

// LogNotifier writes events to the log. It is used when no broker is configured.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log.With(zap.String("notifier", "log"))}
}

func (n *LogNotifier) Notify(_ context.Context, event Event) error {
	n.log.Info("Booking event",
		zap.String("event_id", event.ID.String()),
		zap.String("action", string(event.Action)),
		zap.Int64("booking_id", event.BookingID),
		zap.Int64("actor_user_id", event.ActorUserID),
		zap.Time("occurred_at", event.OccurredAt),
	)
	return nil
}

func (n *LogNotifier) Close() error {
	return nil
}
