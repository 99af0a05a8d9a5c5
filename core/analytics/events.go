package analytics

import (
	"time"

	"github.com/asaidimu/go-events"
	"github.com/google/uuid"
)

// EventType defines the possible event types emitted by the analytics layer.
type EventType string

const (
	SnapshotLoadStart   EventType = "snapshot:load:start"
	SnapshotLoadSuccess EventType = "snapshot:load:success"
	SnapshotLoadFailed  EventType = "snapshot:load:failed"
	ReportSalesStart    EventType = "report:sales:start"
	ReportSalesSuccess  EventType = "report:sales:success"
	ReportSalesFailed   EventType = "report:sales:failed"
)

// Event represents one analytics operation crossing an observable boundary:
// a snapshot load or a report assembly. Input and Output are kept as 'any'
// so subscribers can inspect them without the package taking a dependency
// on their concrete shapes.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp int64     `json:"timestamp"` // Unix milliseconds.
	Operation string    `json:"operation"`
	Input     any       `json:"input,omitempty"`
	Output    any       `json:"output,omitempty"`
	Error     *string   `json:"error,omitempty"`
	Duration  *int64    `json:"duration,omitempty"` // Milliseconds, set on success/failed events.
}

// Bus is the typed event bus analytics events are published on.
type Bus = events.TypedEventBus[Event]

// NewBus creates an analytics event bus with the library's default
// configuration.
func NewBus() (*Bus, error) {
	return events.NewTypedEventBus[Event](events.DefaultConfig())
}

func newEvent(eventType EventType, operation string, input, output any, errStr *string, start time.Time) Event {
	now := time.Now()
	e := Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: now.UnixMilli(),
		Operation: operation,
		Input:     input,
		Output:    output,
		Error:     errStr,
	}
	if eventType != SnapshotLoadStart && eventType != ReportSalesStart {
		d := now.Sub(start).Milliseconds()
		e.Duration = &d
	}
	return e
}

func emit(bus *Bus, event Event) {
	if bus != nil {
		bus.Emit(string(event.Type), event)
	}
}

// withEventEmission wraps an operation with start, success, and failure
// events. A nil bus disables emission without changing the call path.
func withEventEmission[T any](
	bus *Bus,
	operation string,
	startType, successType, failedType EventType,
	input any,
	fn func() (T, error),
) (T, error) {
	start := time.Now()
	emit(bus, newEvent(startType, operation, input, nil, nil, start))

	result, err := fn()
	if err != nil {
		errStr := err.Error()
		emit(bus, newEvent(failedType, operation, input, nil, &errStr, start))
		return result, err
	}

	emit(bus, newEvent(successType, operation, input, result, nil, start))
	return result, nil
}
