package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/gutbuster/internal/domain/event"
	"github.com/riskibarqy/gutbuster/internal/domain/rating"
	"github.com/riskibarqy/gutbuster/internal/domain/room"
	"github.com/riskibarqy/gutbuster/internal/platform/id"
	"github.com/riskibarqy/gutbuster/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const createEventAttempts = 2

// EnrollResult reports the enrollment and whether it filled the event.
type EnrollResult struct {
	Event       event.Event
	Participant event.Participant
	Enrolled    int
	Started     bool
}

type VoteResult struct {
	Event    event.Event
	Vote     event.Vote
	Tally    map[int64]int
	Resolved bool
}

// EndResult lists the rating rows written at closure and the participants
// that finished without a score.
type EndResult struct {
	Event       event.Event
	Ratings     []rating.Rating
	Substitutes []event.Participant
}

type EventService struct {
	store        Store
	resolver     *FormatResolver
	policy       rating.Policy
	ids          id.Generator
	logger       *logging.Logger
	now          func() time.Time
	retryWorkers int
	retryBatch   int
}

func NewEventService(
	store Store,
	resolver *FormatResolver,
	policy rating.Policy,
	ids id.Generator,
	logger *logging.Logger,
) *EventService {
	if logger == nil {
		logger = logging.Default()
	}
	return &EventService{
		store:        store,
		resolver:     resolver,
		policy:       policy,
		ids:          ids,
		logger:       logger,
		now:          time.Now,
		retryWorkers: 4,
		retryBatch:   100,
	}
}

// SetRetryLimits bounds RetryPendingFormats. Non-positive values keep the
// defaults.
func (s *EventService) SetRetryLimits(workers, batch int) {
	if workers > 0 {
		s.retryWorkers = workers
	}
	if batch > 0 {
		s.retryBatch = batch
	}
}

// CreateEvent opens a new LFG event in the room. A short id collision is
// retried once with a fresh id.
func (s *EventService) CreateEvent(ctx context.Context, roomID int64) (event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.CreateEvent", attribute.Int64("room.id", roomID))
	var err error
	defer func() { endUsecaseSpan(span, err) }()

	var created event.Event
	for attempt := 1; attempt <= createEventAttempts; attempt++ {
		created, err = s.createEvent(ctx, roomID)
		if !errors.Is(err, event.ErrDuplicateShortID) {
			break
		}
		s.logger.WarnContext(ctx, "event short id collision", "room_id", roomID, "attempt", attempt)
	}
	if err != nil {
		return event.Event{}, err
	}

	s.logger.InfoContext(ctx, "event created", "event_id", created.ID, "short_id", created.ShortID, "room_id", roomID)
	return created, nil
}

func (s *EventService) createEvent(ctx context.Context, roomID int64) (event.Event, error) {
	if roomID <= 0 {
		return event.Event{}, fmt.Errorf("%w: room_id must be positive", ErrInvalidInput)
	}
	shortID, err := s.ids.NewID()
	if err != nil {
		return event.Event{}, fmt.Errorf("generate short id: %w", err)
	}

	var out event.Event
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		rm, found, err := repos.Rooms.LockByID(ctx, roomID)
		if err != nil {
			return fmt.Errorf("lock room: %w", err)
		}
		if !found {
			return fmt.Errorf("%w: room id=%d", ErrNotFound, roomID)
		}
		if !rm.Enabled {
			return fmt.Errorf("%w: room id=%d", ErrRoomDisabled, roomID)
		}
		if rm.ActiveEventID != nil {
			active, found, err := repos.Events.GetByID(ctx, *rm.ActiveEventID)
			if err != nil {
				return fmt.Errorf("get active event: %w", err)
			}
			if found && active.Status.Active() {
				return fmt.Errorf("%w: event %s is %s", ErrRoomBusy, active.ShortID, active.Status)
			}
		}

		now := s.now().UTC()
		created, err := repos.Events.Create(ctx, event.Event{
			ShortID:    shortID,
			RoomID:     roomID,
			Status:     event.StatusLFG,
			InsertedAt: now,
			UpdatedAt:  now,
		})
		if errors.Is(err, event.ErrRoomHasActiveEvent) {
			return fmt.Errorf("%w: room id=%d", ErrRoomBusy, roomID)
		}
		if err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		if err := repos.Rooms.SetActiveEvent(ctx, roomID, &created.ID); err != nil {
			return fmt.Errorf("set room active event: %w", err)
		}
		out = created
		return nil
	})
	if err != nil {
		return event.Event{}, err
	}
	return out, nil
}

// Enroll adds the user to an LFG event, snapshotting their current rating.
// The enrollment that fills the event starts it and runs format resolution.
func (s *EventService) Enroll(ctx context.Context, eventID, userID int64) (EnrollResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.Enroll",
		attribute.Int64("event.id", eventID),
		attribute.Int64("user.id", userID),
	)
	var err error
	defer func() { endUsecaseSpan(span, err) }()

	var out EnrollResult
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		ev, err := lockEvent(ctx, repos, eventID)
		if err != nil {
			return err
		}
		if ev.Status != event.StatusLFG {
			return fmt.Errorf("%w: event %s is %s", ErrEventNotAcceptingEntries, ev.ShortID, ev.Status)
		}
		if _, err := requireUser(ctx, repos, userID); err != nil {
			return err
		}
		if _, found, err := repos.Events.GetParticipant(ctx, eventID, userID); err != nil {
			return fmt.Errorf("get participant: %w", err)
		} else if found {
			return fmt.Errorf("%w: user id=%d event %s", ErrAlreadyEnrolled, userID, ev.ShortID)
		}

		snapshot, err := currentRating(ctx, repos, userID)
		if err != nil {
			return err
		}
		var ratingID *int64
		if !snapshot.IsDefault() {
			ratingID = &snapshot.ID
		}

		now := s.now().UTC()
		participant, err := repos.Events.AddParticipant(ctx, event.Participant{
			EventID:    eventID,
			UserID:     userID,
			RatingID:   ratingID,
			InsertedAt: now,
			UpdatedAt:  now,
		})
		if errors.Is(err, event.ErrDuplicateParticipant) {
			return fmt.Errorf("%w: user id=%d event %s", ErrAlreadyEnrolled, userID, ev.ShortID)
		}
		if err != nil {
			return fmt.Errorf("add participant: %w", err)
		}

		count, err := repos.Events.CountParticipants(ctx, eventID)
		if err != nil {
			return fmt.Errorf("count participants: %w", err)
		}
		rm, err := requireRoom(ctx, repos, ev.RoomID)
		if err != nil {
			return err
		}

		out = EnrollResult{Event: ev, Participant: participant, Enrolled: count}
		if count < rm.PlayersRequired {
			return nil
		}

		started, err := s.start(ctx, repos, ev, rm)
		if err != nil {
			return err
		}
		out.Event = started
		out.Started = true
		return nil
	})
	if err != nil {
		return EnrollResult{}, err
	}

	if out.Started {
		s.logger.InfoContext(ctx, "event started",
			"event_id", out.Event.ID,
			"short_id", out.Event.ShortID,
			"participants", out.Enrolled,
			"format_resolved", out.Event.FormatResolved(),
		)
	}
	return out, nil
}

// start moves an LFG event to STARTED and tries to resolve its format. An
// empty format set leaves the event STARTED with no format.
func (s *EventService) start(ctx context.Context, repos Repositories, ev event.Event, rm room.Room) (event.Event, error) {
	if !ev.Status.CanTransitionTo(event.StatusStarted) {
		return event.Event{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, ev.Status, event.StatusStarted)
	}
	ev.Status = event.StatusStarted
	ev.UpdatedAt = s.now().UTC()
	if err := repos.Events.Update(ctx, ev); err != nil {
		return event.Event{}, fmt.Errorf("update event status: %w", err)
	}

	resolved, err := s.resolve(ctx, repos, ev, rm)
	if errors.Is(err, ErrNoFormatsConfigured) {
		s.logger.WarnContext(ctx, "event started without formats; resolution deferred",
			"event_id", ev.ID,
			"room_id", rm.ID,
		)
		return ev, nil
	}
	if err != nil {
		return event.Event{}, err
	}
	return resolved, nil
}

// resolve sets the event's format when the resolver reaches a decision.
func (s *EventService) resolve(ctx context.Context, repos Repositories, ev event.Event, rm room.Room) (event.Event, error) {
	formats, err := repos.Rooms.ListFormats(ctx, rm.ID)
	if err != nil {
		return event.Event{}, fmt.Errorf("list formats: %w", err)
	}
	var votes []event.Vote
	if rm.SelectionMode == room.SelectionVote {
		votes, err = repos.Events.ListVotes(ctx, ev.ID)
		if err != nil {
			return event.Event{}, fmt.Errorf("list votes: %w", err)
		}
	}

	chosen, ok, err := s.resolver.Resolve(rm, formats, votes)
	if err != nil {
		return event.Event{}, err
	}
	if !ok {
		return ev, nil
	}

	ev.FormatID = &chosen.ID
	ev.UpdatedAt = s.now().UTC()
	if err := repos.Events.Update(ctx, ev); err != nil {
		return event.Event{}, fmt.Errorf("update event format: %w", err)
	}
	return ev, nil
}

// Withdraw removes the user from an LFG event along with any vote they cast.
func (s *EventService) Withdraw(ctx context.Context, eventID, userID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.Withdraw",
		attribute.Int64("event.id", eventID),
		attribute.Int64("user.id", userID),
	)
	var err error
	defer func() { endUsecaseSpan(span, err) }()

	err = s.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		ev, err := lockEvent(ctx, repos, eventID)
		if err != nil {
			return err
		}
		if ev.Status != event.StatusLFG {
			return fmt.Errorf("%w: event %s is %s", ErrEventNotAcceptingEntries, ev.ShortID, ev.Status)
		}
		removed, err := repos.Events.RemoveParticipant(ctx, eventID, userID)
		if err != nil {
			return fmt.Errorf("remove participant: %w", err)
		}
		if !removed {
			return fmt.Errorf("%w: user id=%d event %s", ErrNotEnrolled, userID, ev.ShortID)
		}
		if _, err := repos.Events.DeleteVote(ctx, eventID, userID); err != nil {
			return fmt.Errorf("delete vote: %w", err)
		}
		return nil
	})
	return err
}

// CastVote records or replaces the participant's format vote. Votes are
// accepted until the format is resolved; in a STARTED event the vote that
// crosses the threshold resolves the format.
func (s *EventService) CastVote(ctx context.Context, eventID, userID, formatID int64) (VoteResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.CastVote",
		attribute.Int64("event.id", eventID),
		attribute.Int64("user.id", userID),
		attribute.Int64("format.id", formatID),
	)
	var err error
	defer func() { endUsecaseSpan(span, err) }()

	var out VoteResult
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		ev, rm, err := s.lockVotable(ctx, repos, eventID)
		if err != nil {
			return err
		}
		if _, found, err := repos.Events.GetParticipant(ctx, eventID, userID); err != nil {
			return fmt.Errorf("get participant: %w", err)
		} else if !found {
			return fmt.Errorf("%w: user id=%d event %s", ErrNotEnrolled, userID, ev.ShortID)
		}

		formats, err := repos.Rooms.ListFormats(ctx, rm.ID)
		if err != nil {
			return fmt.Errorf("list formats: %w", err)
		}
		if len(formats) == 0 {
			return fmt.Errorf("%w: room id=%d", ErrNoFormatsConfigured, rm.ID)
		}
		if !containsFormat(formats, formatID) {
			return fmt.Errorf("%w: format id=%d in room id=%d", ErrNotFound, formatID, rm.ID)
		}

		now := s.now().UTC()
		vote, err := repos.Events.UpsertVote(ctx, event.Vote{
			EventID:    eventID,
			UserID:     userID,
			FormatID:   formatID,
			InsertedAt: now,
			UpdatedAt:  now,
		})
		if err != nil {
			return fmt.Errorf("upsert vote: %w", err)
		}

		votes, err := repos.Events.ListVotes(ctx, eventID)
		if err != nil {
			return fmt.Errorf("list votes: %w", err)
		}
		out = VoteResult{Event: ev, Vote: vote, Tally: event.Tally(votes)}

		if ev.Status != event.StatusStarted {
			return nil
		}
		resolved, err := s.resolve(ctx, repos, ev, rm)
		if err != nil {
			return err
		}
		out.Event = resolved
		out.Resolved = resolved.FormatResolved()
		return nil
	})
	if err != nil {
		return VoteResult{}, err
	}

	if out.Resolved {
		s.logger.InfoContext(ctx, "event format resolved by vote",
			"event_id", out.Event.ID,
			"format_id", *out.Event.FormatID,
		)
	}
	return out, nil
}

// WithdrawVote drops the participant's vote; the tally is recomputed from the
// remaining rows on the next vote.
func (s *EventService) WithdrawVote(ctx context.Context, eventID, userID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.WithdrawVote",
		attribute.Int64("event.id", eventID),
		attribute.Int64("user.id", userID),
	)
	var err error
	defer func() { endUsecaseSpan(span, err) }()

	err = s.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		ev, _, err := s.lockVotable(ctx, repos, eventID)
		if err != nil {
			return err
		}
		deleted, err := repos.Events.DeleteVote(ctx, eventID, userID)
		if err != nil {
			return fmt.Errorf("delete vote: %w", err)
		}
		if !deleted {
			return fmt.Errorf("%w: no vote by user id=%d in event %s", ErrNotFound, userID, ev.ShortID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "event vote withdrawn", "event_id", eventID, "user_id", userID)
	return nil
}

func (s *EventService) lockVotable(ctx context.Context, repos Repositories, eventID int64) (event.Event, room.Room, error) {
	ev, err := lockEvent(ctx, repos, eventID)
	if err != nil {
		return event.Event{}, room.Room{}, err
	}
	if !ev.Status.Active() || ev.FormatResolved() {
		return event.Event{}, room.Room{}, fmt.Errorf("%w: event %s is no longer voting", ErrInvalidTransition, ev.ShortID)
	}
	rm, err := requireRoom(ctx, repos, ev.RoomID)
	if err != nil {
		return event.Event{}, room.Room{}, err
	}
	if rm.SelectionMode != room.SelectionVote {
		return event.Event{}, room.Room{}, fmt.Errorf("%w: room id=%d selects formats %s", ErrInvalidInput, rm.ID, rm.SelectionMode)
	}
	return ev, rm, nil
}

// ResolveFormat re-runs format resolution for a STARTED event. It is a no-op
// for an event whose format is already set.
func (s *EventService) ResolveFormat(ctx context.Context, eventID int64) (event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.ResolveFormat", attribute.Int64("event.id", eventID))
	var err error
	defer func() { endUsecaseSpan(span, err) }()

	var out event.Event
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		ev, err := lockEvent(ctx, repos, eventID)
		if err != nil {
			return err
		}
		if ev.Status != event.StatusStarted {
			return fmt.Errorf("%w: event %s is %s", ErrInvalidTransition, ev.ShortID, ev.Status)
		}
		if ev.FormatResolved() {
			out = ev
			return nil
		}
		rm, err := requireRoom(ctx, repos, ev.RoomID)
		if err != nil {
			return err
		}
		out, err = s.resolve(ctx, repos, ev, rm)
		return err
	})
	if err != nil {
		return event.Event{}, err
	}
	return out, nil
}

// RecordScore sets the participant's final score while the event is STARTED.
func (s *EventService) RecordScore(ctx context.Context, eventID, userID int64, score int) (event.Participant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.RecordScore",
		attribute.Int64("event.id", eventID),
		attribute.Int64("user.id", userID),
	)
	var err error
	defer func() { endUsecaseSpan(span, err) }()

	if score < 0 {
		err = fmt.Errorf("%w: score must be >= 0", ErrInvalidInput)
		return event.Participant{}, err
	}

	var out event.Participant
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		ev, err := lockEvent(ctx, repos, eventID)
		if err != nil {
			return err
		}
		if ev.Status != event.StatusStarted {
			return fmt.Errorf("%w: cannot score event %s in status %s", ErrInvalidTransition, ev.ShortID, ev.Status)
		}
		participant, found, err := repos.Events.GetParticipant(ctx, eventID, userID)
		if err != nil {
			return fmt.Errorf("get participant: %w", err)
		}
		if !found {
			return fmt.Errorf("%w: user id=%d event %s", ErrNotEnrolled, userID, ev.ShortID)
		}

		participant.Score = &score
		participant.UpdatedAt = s.now().UTC()
		if err := repos.Events.UpdateParticipant(ctx, participant); err != nil {
			return fmt.Errorf("update participant score: %w", err)
		}
		out = participant
		return nil
	})
	if err != nil {
		return event.Participant{}, err
	}
	return out, nil
}

// EndEvent closes a STARTED event and commits one rating row per scored
// participant, rated from their enrollment snapshot. Unscored participants
// are reported as substitutes.
func (s *EventService) EndEvent(ctx context.Context, eventID int64) (EndResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.EndEvent", attribute.Int64("event.id", eventID))
	var err error
	defer func() { endUsecaseSpan(span, err) }()

	var out EndResult
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		ev, err := lockEvent(ctx, repos, eventID)
		if err != nil {
			return err
		}
		if !ev.Status.CanTransitionTo(event.StatusEnded) {
			return fmt.Errorf("%w: %s -> %s for event %s", ErrInvalidTransition, ev.Status, event.StatusEnded, ev.ShortID)
		}

		participants, err := repos.Events.ListParticipants(ctx, eventID)
		if err != nil {
			return fmt.Errorf("list participants: %w", err)
		}

		now := s.now().UTC()
		standings := make([]rating.Standing, 0, len(participants))
		substitutes := make([]event.Participant, 0)
		for _, p := range participants {
			if p.Substitute() {
				substitutes = append(substitutes, p)
				continue
			}
			snapshot, err := participantSnapshot(ctx, repos, p)
			if err != nil {
				return err
			}
			standings = append(standings, rating.Standing{
				UserID:    p.UserID,
				Value:     snapshot.Value,
				Deviation: snapshot.Deviation,
				RatedAt:   snapshot.InsertedAt,
				Score:     *p.Score,
			})
		}

		written := make([]rating.Rating, 0, len(standings))
		if len(standings) > 0 {
			for _, outcome := range s.policy.Rate(standings, now) {
				inserted, err := repos.Ratings.Insert(ctx, rating.Rating{
					UserID:     outcome.UserID,
					Value:      outcome.Value,
					Deviation:  outcome.Deviation,
					InsertedAt: now,
					UpdatedAt:  now,
				})
				if err != nil {
					return fmt.Errorf("insert rating: %w", err)
				}
				written = append(written, inserted)
			}
		}

		ev.Status = event.StatusEnded
		ev.UpdatedAt = now
		if err := repos.Events.Update(ctx, ev); err != nil {
			return fmt.Errorf("update event status: %w", err)
		}
		if err := repos.Rooms.SetActiveEvent(ctx, ev.RoomID, nil); err != nil {
			return fmt.Errorf("clear room active event: %w", err)
		}

		out = EndResult{Event: ev, Ratings: written, Substitutes: substitutes}
		return nil
	})
	if err != nil {
		return EndResult{}, err
	}

	s.logger.InfoContext(ctx, "event ended",
		"event_id", out.Event.ID,
		"short_id", out.Event.ShortID,
		"rated", len(out.Ratings),
		"substitutes", len(out.Substitutes),
	)
	return out, nil
}

func participantSnapshot(ctx context.Context, repos Repositories, p event.Participant) (rating.Rating, error) {
	if p.RatingID == nil {
		return rating.Default(p.UserID), nil
	}
	snapshot, found, err := repos.Ratings.GetByID(ctx, *p.RatingID)
	if err != nil {
		return rating.Rating{}, fmt.Errorf("get rating snapshot: %w", err)
	}
	if !found {
		return rating.Rating{}, fmt.Errorf("%w: rating snapshot id=%d", ErrNotFound, *p.RatingID)
	}
	return snapshot, nil
}

// Roster lists participants in enrollment order.
func (s *EventService) Roster(ctx context.Context, eventID int64) ([]event.Participant, error) {
	repos := s.store.Repositories()
	if _, err := requireEvent(ctx, repos, eventID); err != nil {
		return nil, err
	}
	items, err := repos.Events.ListParticipants(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return items, nil
}

// Teams splits the roster by the resolved format's team mode.
func (s *EventService) Teams(ctx context.Context, eventID int64) ([][]event.Participant, error) {
	repos := s.store.Repositories()
	ev, err := requireEvent(ctx, repos, eventID)
	if err != nil {
		return nil, err
	}
	if !ev.FormatResolved() {
		return nil, fmt.Errorf("%w: event %s has no format yet", ErrInvalidTransition, ev.ShortID)
	}
	format, found, err := repos.Rooms.GetFormat(ctx, *ev.FormatID)
	if err != nil {
		return nil, fmt.Errorf("get format: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: format id=%d", ErrNotFound, *ev.FormatID)
	}
	roster, err := repos.Events.ListParticipants(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return room.AssignTeams(format.TeamMode, roster), nil
}

func (s *EventService) GetEvent(ctx context.Context, shortID string) (event.Event, error) {
	shortID = strings.ToUpper(strings.TrimSpace(shortID))
	if len(shortID) != event.ShortIDLength {
		return event.Event{}, fmt.Errorf("%w: short_id must be %d characters", ErrInvalidInput, event.ShortIDLength)
	}
	ev, found, err := s.store.Repositories().Events.GetByShortID(ctx, shortID)
	if err != nil {
		return event.Event{}, fmt.Errorf("get event by short id: %w", err)
	}
	if !found {
		return event.Event{}, fmt.Errorf("%w: event %s", ErrNotFound, shortID)
	}
	return ev, nil
}

func (s *EventService) GetEventByID(ctx context.Context, eventID int64) (event.Event, error) {
	return requireEvent(ctx, s.store.Repositories(), eventID)
}

// ActiveEvent follows the room's active event pointer.
func (s *EventService) ActiveEvent(ctx context.Context, roomID int64) (event.Event, bool, error) {
	repos := s.store.Repositories()
	rm, err := requireRoom(ctx, repos, roomID)
	if err != nil {
		return event.Event{}, false, err
	}
	if rm.ActiveEventID == nil {
		return event.Event{}, false, nil
	}
	ev, found, err := repos.Events.GetByID(ctx, *rm.ActiveEventID)
	if err != nil {
		return event.Event{}, false, fmt.Errorf("get active event: %w", err)
	}
	if !found || !ev.Status.Active() {
		return event.Event{}, false, nil
	}
	return ev, true, nil
}

// ActiveEventsFor lists the LFG and STARTED events the user is enrolled in.
func (s *EventService) ActiveEventsFor(ctx context.Context, userID int64) ([]event.Event, error) {
	repos := s.store.Repositories()
	if _, err := requireUser(ctx, repos, userID); err != nil {
		return nil, err
	}
	items, err := repos.Events.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list active events by user: %w", err)
	}
	return items, nil
}

func lockEvent(ctx context.Context, repos Repositories, eventID int64) (event.Event, error) {
	if eventID <= 0 {
		return event.Event{}, fmt.Errorf("%w: event_id must be positive", ErrInvalidInput)
	}
	ev, found, err := repos.Events.LockByID(ctx, eventID)
	if err != nil {
		return event.Event{}, fmt.Errorf("lock event: %w", err)
	}
	if !found {
		return event.Event{}, fmt.Errorf("%w: event id=%d", ErrNotFound, eventID)
	}
	return ev, nil
}

func requireEvent(ctx context.Context, repos Repositories, eventID int64) (event.Event, error) {
	if eventID <= 0 {
		return event.Event{}, fmt.Errorf("%w: event_id must be positive", ErrInvalidInput)
	}
	ev, found, err := repos.Events.GetByID(ctx, eventID)
	if err != nil {
		return event.Event{}, fmt.Errorf("get event: %w", err)
	}
	if !found {
		return event.Event{}, fmt.Errorf("%w: event id=%d", ErrNotFound, eventID)
	}
	return ev, nil
}

func containsFormat(formats []room.Format, formatID int64) bool {
	for _, f := range formats {
		if f.ID == formatID {
			return true
		}
	}
	return false
}
