package event

import (
	"context"
	"strings"
	"time"
)

// lifecycle event types
const (
	CustomerCreated = "customer.created"
	CustomerUpdated = "customer.updated"
	CustomerDeleted = "customer.deleted"
	AddressCreated  = "address.created"
	AddressUpdated  = "address.updated"
	AddressDeleted  = "address.deleted"
)

// Event describes entity lifecycle change
type Event struct {
	Type       string    `json:"type"`
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// New builds event of type for entity with id
func New(typ, id string, payload any, now time.Time) Event {
	return Event{Type: typ, ID: id, OccurredAt: now, Payload: payload}
}

// Topic returns topic event belongs to, customer.created goes to customers
func (e Event) Topic() string {
	entity, _, _ := strings.Cut(e.Type, ".")
	if strings.HasSuffix(entity, "s") {
		return entity + "es"
	}
	return entity + "s"
}

// Publisher delivers lifecycle events to subscribers
type Publisher interface {
	Publish(context.Context, Event) error
	Close() error
}
