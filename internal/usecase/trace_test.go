package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/riskibarqy/gutbuster/internal/domain/room"
	"github.com/riskibarqy/gutbuster/internal/usecase"
)

func recordSpans(t *testing.T) (*tracetest.SpanRecorder, context.Context) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	t.Cleanup(usecase.SwapTracer(provider.Tracer("test")))

	ctx, parent := provider.Tracer("test").Start(context.Background(), "request")
	t.Cleanup(func() { parent.End() })
	return recorder, ctx
}

func endedSpanNames(recorder *tracetest.SpanRecorder) []string {
	spans := recorder.Ended()
	out := make([]string, 0, len(spans))
	for _, span := range spans {
		out = append(out, span.Name())
	}
	return out
}

func TestEventService_VoteOperationsOpenSpans(t *testing.T) {
	h := newHarness(t)
	rm, formats := h.newRoom(t, 2, room.SelectionVote, 2, "F1")
	players := h.newUsers(t, 1)

	ev, err := h.events.CreateEvent(context.Background(), rm.ID)
	require.NoError(t, err)
	_, err = h.events.Enroll(context.Background(), ev.ID, players[0].ID)
	require.NoError(t, err)

	recorder, ctx := recordSpans(t)

	_, err = h.events.CastVote(ctx, ev.ID, players[0].ID, formats[0].ID)
	require.NoError(t, err)
	require.NoError(t, h.events.WithdrawVote(ctx, ev.ID, players[0].ID))

	err = h.events.WithdrawVote(ctx, ev.ID, players[0].ID)
	require.ErrorIs(t, err, usecase.ErrNotFound)

	names := endedSpanNames(recorder)
	assert.Equal(t, []string{
		"usecase.EventService.CastVote",
		"usecase.EventService.WithdrawVote",
		"usecase.EventService.WithdrawVote",
	}, names)

	failed := recorder.Ended()[2]
	assert.NotEmpty(t, failed.Events(), "a failed withdraw records its error")
}

func TestEventService_NoSpanWithoutParentTrace(t *testing.T) {
	h := newHarness(t)
	rm, formats := h.newRoom(t, 2, room.SelectionVote, 2, "F1")
	players := h.newUsers(t, 1)
	ev, err := h.events.CreateEvent(context.Background(), rm.ID)
	require.NoError(t, err)
	_, err = h.events.Enroll(context.Background(), ev.ID, players[0].ID)
	require.NoError(t, err)

	recorder, _ := recordSpans(t)

	_, err = h.events.CastVote(context.Background(), ev.ID, players[0].ID, formats[0].ID)
	require.NoError(t, err)
	assert.Empty(t, recorder.Ended())
}
