package domain

const EventMessageCreated = "message.created"

type MessageCreatedEvent struct {
	Message *Message `json:"message"`
}
