// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exercisevm

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
)

// EventTopic is the bus topic committed events are published on.
const EventTopic = "exercisevm:event"

// Event is a notification emitted by a contract. Events of an invocation
// only become visible once the invocation commits.
type Event struct {
	// Index is assigned on commit, starting at 0, and grows by one per event.
	Index      uint64        `json:"index"`
	ContractID ids.ID        `json:"contractID"`
	Ledger     uint32        `json:"ledger"`
	Topic      Symbol        `json:"topic"`
	Data       []interface{} `json:"data"`
}

// Events buffers the events of a running invocation.
type Events struct {
	contractID ids.ID
	ledger     uint32
	pending    []Event
	err        error
}

// Publish queues an event tagged [topic] carrying [data]. An invalid topic
// aborts the invocation once the entry point returns.
func (e *Events) Publish(topic Symbol, data ...interface{}) {
	if err := topic.Verify(); err != nil {
		if e.err == nil {
			e.err = fmt.Errorf("%w: %w", ErrInvalidTopic, err)
		}
		return
	}
	e.pending = append(e.pending, Event{
		ContractID: e.contractID,
		Ledger:     e.ledger,
		Topic:      topic,
		Data:       data,
	})
}

// Err returns the first publish failure, if any.
func (e *Events) Err() error {
	return e.err
}

// Pending returns the events queued so far.
func (e *Events) Pending() []Event {
	return e.pending
}

// eventLog keeps the most recent committed events.
type eventLog struct {
	size   int
	next   uint64
	events []Event
}

func newEventLog(size int) *eventLog {
	return &eventLog{size: size}
}

// append indexes [events] and returns them.
func (l *eventLog) append(events []Event) []Event {
	indexed := make([]Event, len(events))
	for i, e := range events {
		e.Index = l.next
		l.next++
		indexed[i] = e
	}
	l.events = append(l.events, indexed...)
	if over := len(l.events) - l.size; over > 0 {
		l.events = append([]Event(nil), l.events[over:]...)
	}
	return indexed
}

// since returns up to [limit] events with an index >= [index]. A zero limit
// means no limit.
func (l *eventLog) since(index uint64, limit int) []Event {
	var out []Event
	for _, e := range l.events {
		if e.Index < index {
			continue
		}
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, e)
	}
	return out
}
