package events

// Topic constants for domain events emitted by the platform.
const (
	TopicOrderCreated  = "order.created"
	TopicOrderCanceled = "order.canceled"
)

// DefaultTopics returns the canonical list of topics that support notifications.
func DefaultTopics() []string {
	return []string{
		TopicOrderCreated,
		TopicOrderCanceled,
	}
}
