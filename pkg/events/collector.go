package events

// EventCollector buffers the events an aggregate raises until the
// application layer hands them to a publisher.
type EventCollector struct {
	pending []DomainEvent
}

// Record appends events in the order they were raised.
func (c *EventCollector) Record(evts ...DomainEvent) {
	c.pending = append(c.pending, evts...)
}

// Pending reports how many events are buffered.
func (c *EventCollector) Pending() int {
	return len(c.pending)
}

// Events returns a copy of the buffered events.
func (c *EventCollector) Events() []DomainEvent {
	if len(c.pending) == 0 {
		return nil
	}
	out := make([]DomainEvent, len(c.pending))
	copy(out, c.pending)
	return out
}

// ClearEvents returns the buffered events and empties the buffer.
func (c *EventCollector) ClearEvents() []DomainEvent {
	collected := c.pending
	c.pending = nil
	return collected
}
