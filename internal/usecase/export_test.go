package usecase

import (
	"time"

	"go.opentelemetry.io/otel/trace"
)

func (s *EventService) SetClock(now func() time.Time)  { s.now = now }
func (s *RatingService) SetClock(now func() time.Time) { s.now = now }
func (s *StrikeService) SetClock(now func() time.Time) { s.now = now }
func (s *RoomService) SetClock(now func() time.Time)   { s.now = now }
func (s *UserService) SetClock(now func() time.Time)   { s.now = now }

// SwapTracer replaces the usecase tracer until the returned func runs. Callers
// must not run in parallel.
func SwapTracer(tracer trace.Tracer) (restore func()) {
	prev := usecaseTracer
	usecaseTracer = tracer
	return func() { usecaseTracer = prev }
}
