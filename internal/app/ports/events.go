package ports

import "context"

const (
	EventGameState   = "game:state"
	EventUIError     = "ui:error"
	EventGameVictory = "game:victory"
	EventUIToast     = "ui:toast"
)

// EventSink receives outbound notifications for a UI or a log.
type EventSink interface {
	Publish(ctx context.Context, name string, payload any) error
}

// MultiSink fans an event out to every sink and returns the first error.
type MultiSink []EventSink

func (m MultiSink) Publish(ctx context.Context, name string, payload any) error {
	var first error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Publish(ctx, name, payload); err != nil && first == nil {
			first = err
		}
	}
	return first
}
