package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/gutbuster/internal/domain/event"
	"github.com/riskibarqy/gutbuster/internal/domain/room"
	"github.com/riskibarqy/gutbuster/internal/platform/cache"
	"github.com/riskibarqy/gutbuster/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	maxFormatNameLength = 64
	maxFormatServers    = 32
)

type ConfigureRoomInput struct {
	ChannelID       string
	GuildID         string
	PlayersRequired int
	SelectionMode   room.SelectionMode
	VotesRequired   int
}

type AddFormatInput struct {
	RoomID   int64
	Name     string
	TeamMode room.TeamMode
	Servers  []string
}

type RoomService struct {
	store    Store
	channels *cache.Store[int64]
	logger   *logging.Logger
	now      func() time.Time
}

// NewRoomService caches channel to room id lookups for cacheTTL. Room ids
// never change for a channel, so the cache needs no invalidation.
func NewRoomService(store Store, cacheTTL time.Duration, logger *logging.Logger) *RoomService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RoomService{
		store:    store,
		channels: cache.NewStore[int64](cacheTTL),
		logger:   logger,
		now:      time.Now,
	}
}

// ConfigureRoom upserts the room for a channel. Reconfiguring keeps the
// enabled flag and formats.
func (s *RoomService) ConfigureRoom(ctx context.Context, input ConfigureRoomInput) (room.Room, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoomService.ConfigureRoom", attribute.String("room.channel_id", input.ChannelID))
	var err error
	defer func() { endUsecaseSpan(span, err) }()

	input.ChannelID = strings.TrimSpace(input.ChannelID)
	input.GuildID = strings.TrimSpace(input.GuildID)
	if input.ChannelID == "" {
		err = fmt.Errorf("%w: channel_id is required", ErrInvalidInput)
		return room.Room{}, err
	}
	settings := room.Settings{
		PlayersRequired: input.PlayersRequired,
		SelectionMode:   input.SelectionMode,
		VotesRequired:   input.VotesRequired,
	}
	if vErr := settings.Validate(); vErr != nil {
		err = fmt.Errorf("%w: %v", ErrInvalidInput, vErr)
		return room.Room{}, err
	}

	var out room.Room
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		now := s.now().UTC()
		existing, found, err := repos.Rooms.GetByChannelID(ctx, input.ChannelID)
		if err != nil {
			return fmt.Errorf("get room by channel: %w", err)
		}
		if found {
			if err := checkActiveLobbyFits(ctx, repos, existing, settings.PlayersRequired); err != nil {
				return err
			}
			existing.PlayersRequired = settings.PlayersRequired
			existing.SelectionMode = settings.SelectionMode
			existing.VotesRequired = settings.VotesRequired
			if input.GuildID != "" {
				existing.GuildID = input.GuildID
			}
			existing.UpdatedAt = now
			if err := repos.Rooms.Update(ctx, existing); err != nil {
				return fmt.Errorf("update room: %w", err)
			}
			out = existing
			return nil
		}

		created, err := repos.Rooms.Create(ctx, room.Room{
			ChannelID:       input.ChannelID,
			GuildID:         input.GuildID,
			Enabled:         true,
			PlayersRequired: settings.PlayersRequired,
			SelectionMode:   settings.SelectionMode,
			VotesRequired:   settings.VotesRequired,
			InsertedAt:      now,
			UpdatedAt:       now,
		})
		if err != nil {
			return fmt.Errorf("create room: %w", err)
		}
		out = created
		return nil
	})
	if err != nil {
		return room.Room{}, err
	}

	s.logger.InfoContext(ctx, "room configured",
		"room_id", out.ID,
		"channel_id", out.ChannelID,
		"players_required", out.PlayersRequired,
		"selection_mode", out.SelectionMode,
		"votes_required", out.VotesRequired,
	)
	return out, nil
}

// checkActiveLobbyFits rejects a players_required an LFG event has already
// reached. The event row stays locked so no enrollment slips in before the
// room update commits.
func checkActiveLobbyFits(ctx context.Context, repos Repositories, rm room.Room, playersRequired int) error {
	if rm.ActiveEventID == nil || playersRequired >= rm.PlayersRequired {
		return nil
	}
	ev, err := lockEvent(ctx, repos, *rm.ActiveEventID)
	if err != nil {
		return err
	}
	if ev.Status != event.StatusLFG {
		return nil
	}
	count, err := repos.Events.CountParticipants(ctx, ev.ID)
	if err != nil {
		return fmt.Errorf("count participants: %w", err)
	}
	if count >= playersRequired {
		return fmt.Errorf("%w: event %s already has %d players, players_required must exceed that while it is LFG",
			ErrInvalidInput, ev.ShortID, count)
	}
	return nil
}

// EnableRoom enables the channel's room. An unknown channel gets a room with
// default settings and a default FFA format.
func (s *RoomService) EnableRoom(ctx context.Context, channelID, guildID string) (room.Room, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoomService.EnableRoom", attribute.String("room.channel_id", channelID))
	var err error
	defer func() { endUsecaseSpan(span, err) }()

	channelID = strings.TrimSpace(channelID)
	guildID = strings.TrimSpace(guildID)
	if channelID == "" {
		err = fmt.Errorf("%w: channel_id is required", ErrInvalidInput)
		return room.Room{}, err
	}

	var out room.Room
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		now := s.now().UTC()
		existing, found, err := repos.Rooms.GetByChannelID(ctx, channelID)
		if err != nil {
			return fmt.Errorf("get room by channel: %w", err)
		}
		if found {
			if !existing.Enabled {
				existing.Enabled = true
				existing.UpdatedAt = now
				if err := repos.Rooms.Update(ctx, existing); err != nil {
					return fmt.Errorf("update room: %w", err)
				}
			}
			out = existing
			return nil
		}

		defaults := room.DefaultSettings()
		created, err := repos.Rooms.Create(ctx, room.Room{
			ChannelID:       channelID,
			GuildID:         guildID,
			Enabled:         true,
			PlayersRequired: defaults.PlayersRequired,
			SelectionMode:   defaults.SelectionMode,
			VotesRequired:   defaults.VotesRequired,
			InsertedAt:      now,
			UpdatedAt:       now,
		})
		if err != nil {
			return fmt.Errorf("create room: %w", err)
		}
		if _, err := repos.Rooms.CreateFormat(ctx, room.Format{
			RoomID:     created.ID,
			Name:       room.DefaultFormatName,
			TeamMode:   room.TeamFFA,
			InsertedAt: now,
			UpdatedAt:  now,
		}); err != nil {
			return fmt.Errorf("create default format: %w", err)
		}
		out = created
		return nil
	})
	if err != nil {
		return room.Room{}, err
	}

	s.logger.InfoContext(ctx, "room enabled", "room_id", out.ID, "channel_id", out.ChannelID)
	return out, nil
}

// DisableRoom stops new events in the room. An event already running is left
// to finish.
func (s *RoomService) DisableRoom(ctx context.Context, channelID string) (room.Room, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoomService.DisableRoom", attribute.String("room.channel_id", channelID))
	var err error
	defer func() { endUsecaseSpan(span, err) }()

	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		err = fmt.Errorf("%w: channel_id is required", ErrInvalidInput)
		return room.Room{}, err
	}

	var out room.Room
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		existing, found, err := repos.Rooms.GetByChannelID(ctx, channelID)
		if err != nil {
			return fmt.Errorf("get room by channel: %w", err)
		}
		if !found {
			return fmt.Errorf("%w: room channel_id=%s", ErrNotFound, channelID)
		}
		if existing.Enabled {
			existing.Enabled = false
			existing.UpdatedAt = s.now().UTC()
			if err := repos.Rooms.Update(ctx, existing); err != nil {
				return fmt.Errorf("update room: %w", err)
			}
		}
		out = existing
		return nil
	})
	if err != nil {
		return room.Room{}, err
	}

	s.logger.InfoContext(ctx, "room disabled", "room_id", out.ID, "channel_id", out.ChannelID)
	return out, nil
}

func (s *RoomService) GetRoom(ctx context.Context, channelID string) (room.Room, error) {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return room.Room{}, fmt.Errorf("%w: channel_id is required", ErrInvalidInput)
	}

	repos := s.store.Repositories()
	roomID, err := s.channels.GetOrLoad(ctx, "room:channel:"+channelID, func(ctx context.Context) (int64, error) {
		item, found, err := repos.Rooms.GetByChannelID(ctx, channelID)
		if err != nil {
			return 0, fmt.Errorf("get room by channel: %w", err)
		}
		if !found {
			return 0, fmt.Errorf("%w: room channel_id=%s", ErrNotFound, channelID)
		}
		return item.ID, nil
	})
	if err != nil {
		return room.Room{}, err
	}

	return s.GetRoomByID(ctx, roomID)
}

func (s *RoomService) GetRoomByID(ctx context.Context, roomID int64) (room.Room, error) {
	return requireRoom(ctx, s.store.Repositories(), roomID)
}

func (s *RoomService) AddFormat(ctx context.Context, input AddFormatInput) (room.Format, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoomService.AddFormat", attribute.Int64("room.id", input.RoomID))
	var err error
	defer func() { endUsecaseSpan(span, err) }()

	input.Name = strings.TrimSpace(input.Name)
	servers, err := normalizeServers(input.Servers)
	if err != nil {
		return room.Format{}, err
	}
	if err = validateAddFormatInput(input); err != nil {
		return room.Format{}, err
	}

	var out room.Format
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		if _, err := requireRoom(ctx, repos, input.RoomID); err != nil {
			return err
		}
		now := s.now().UTC()
		created, err := repos.Rooms.CreateFormat(ctx, room.Format{
			RoomID:     input.RoomID,
			Name:       input.Name,
			TeamMode:   input.TeamMode,
			Servers:    servers,
			InsertedAt: now,
			UpdatedAt:  now,
		})
		if errors.Is(err, room.ErrDuplicateFormatName) {
			return fmt.Errorf("%w: format %q already exists in room", ErrNameTaken, input.Name)
		}
		if err != nil {
			return fmt.Errorf("create format: %w", err)
		}
		out = created
		return nil
	})
	if err != nil {
		return room.Format{}, err
	}

	s.logger.InfoContext(ctx, "format added", "room_id", out.RoomID, "format_id", out.ID, "name", out.Name, "team_mode", out.TeamMode)
	return out, nil
}

func (s *RoomService) ListFormats(ctx context.Context, roomID int64) ([]room.Format, error) {
	repos := s.store.Repositories()
	if _, err := requireRoom(ctx, repos, roomID); err != nil {
		return nil, err
	}

	items, err := repos.Rooms.ListFormats(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("list formats: %w", err)
	}
	return items, nil
}

func requireRoom(ctx context.Context, repos Repositories, roomID int64) (room.Room, error) {
	if roomID <= 0 {
		return room.Room{}, fmt.Errorf("%w: room_id must be positive", ErrInvalidInput)
	}
	item, found, err := repos.Rooms.GetByID(ctx, roomID)
	if err != nil {
		return room.Room{}, fmt.Errorf("get room: %w", err)
	}
	if !found {
		return room.Room{}, fmt.Errorf("%w: room id=%d", ErrNotFound, roomID)
	}
	return item, nil
}

func validateAddFormatInput(input AddFormatInput) error {
	if input.Name == "" {
		return fmt.Errorf("%w: format name is required", ErrInvalidInput)
	}
	if len(input.Name) > maxFormatNameLength {
		return fmt.Errorf("%w: format name exceeds %d characters", ErrInvalidInput, maxFormatNameLength)
	}
	if !input.TeamMode.Valid() {
		return fmt.Errorf("%w: invalid team mode %d", ErrInvalidInput, int16(input.TeamMode))
	}
	return nil
}

// normalizeServers trims and de-duplicates server names, keeping first-seen
// order.
func normalizeServers(servers []string) ([]string, error) {
	if len(servers) > maxFormatServers {
		return nil, fmt.Errorf("%w: at most %d servers per format", ErrInvalidInput, maxFormatServers)
	}

	out := make([]string, 0, len(servers))
	seen := make(map[string]struct{}, len(servers))
	for _, server := range servers {
		server = strings.TrimSpace(server)
		if server == "" {
			return nil, fmt.Errorf("%w: server name must not be empty", ErrInvalidInput)
		}
		if _, ok := seen[server]; ok {
			continue
		}
		seen[server] = struct{}{}
		out = append(out, server)
	}
	return out, nil
}
