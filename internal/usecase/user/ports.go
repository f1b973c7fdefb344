package user

import "context"

const (
	TopicUserRegistered = "ecommerce.user.registered"
	TopicUserDeleted    = "ecommerce.user.deleted"

	AggregateTypeUser = "user"
)

// Message is an outbound plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// EventPublisher emits domain events. Failures never fail the request.
type EventPublisher interface {
	Publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error
}

type UserRegisteredData struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserDeletedData struct {
	ID string `json:"id"`
}
