package shared

import "time"

// DomainEvent represents something that happened to an aggregate
type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
}

// AggregateRoot collects events raised by an aggregate until they are drained
type AggregateRoot struct {
	events []DomainEvent
}

// AddEvent records a domain event for later dispatch
func (a *AggregateRoot) AddEvent(event DomainEvent) {
	a.events = append(a.events, event)
}

// Events returns and clears pending domain events
func (a *AggregateRoot) Events() []DomainEvent {
	events := a.events
	a.events = nil
	return events
}
