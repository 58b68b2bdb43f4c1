package memory

import (
	"context"
	"slices"

	"github.com/riskibarqy/gutbuster/internal/domain/room"
)

type RoomRepository struct {
	store view
}

func (r *RoomRepository) GetByID(_ context.Context, id int64) (out room.Room, found bool, err error) {
	r.store.read(func(data *state) {
		out, found = data.rooms[id]
	})
	return out, found, nil
}

func (r *RoomRepository) GetByChannelID(_ context.Context, channelID string) (out room.Room, found bool, err error) {
	r.store.read(func(data *state) {
		for _, item := range data.rooms {
			if item.ChannelID == channelID {
				out, found = item, true
				return
			}
		}
	})
	return out, found, nil
}

// LockByID is a plain read; transactions are already serialized.
func (r *RoomRepository) LockByID(ctx context.Context, id int64) (room.Room, bool, error) {
	return r.GetByID(ctx, id)
}

func (r *RoomRepository) Create(_ context.Context, item room.Room) (room.Room, error) {
	err := r.store.write(func(data *state) error {
		for _, existing := range data.rooms {
			if existing.ChannelID == item.ChannelID {
				return room.ErrDuplicateChannel
			}
		}
		item.ID = data.nextID()
		data.rooms[item.ID] = item
		return nil
	})
	if err != nil {
		return room.Room{}, err
	}
	return item, nil
}

func (r *RoomRepository) Update(_ context.Context, item room.Room) error {
	return r.store.write(func(data *state) error {
		existing, ok := data.rooms[item.ID]
		if !ok {
			return nil
		}
		// The active event pointer is owned by SetActiveEvent.
		item.ActiveEventID = existing.ActiveEventID
		data.rooms[item.ID] = item
		return nil
	})
}

func (r *RoomRepository) SetActiveEvent(_ context.Context, roomID int64, eventID *int64) error {
	return r.store.write(func(data *state) error {
		existing, ok := data.rooms[roomID]
		if !ok {
			return nil
		}
		if eventID != nil {
			id := *eventID
			eventID = &id
		}
		existing.ActiveEventID = eventID
		data.rooms[roomID] = existing
		return nil
	})
}

func (r *RoomRepository) ListFormats(_ context.Context, roomID int64) ([]room.Format, error) {
	out := make([]room.Format, 0)
	r.store.read(func(data *state) {
		for _, f := range data.formats {
			if f.RoomID == roomID {
				f.Servers = slices.Clone(f.Servers)
				out = append(out, f)
			}
		}
	})
	return out, nil
}

func (r *RoomRepository) GetFormat(_ context.Context, formatID int64) (out room.Format, found bool, err error) {
	r.store.read(func(data *state) {
		for _, f := range data.formats {
			if f.ID == formatID {
				f.Servers = slices.Clone(f.Servers)
				out, found = f, true
				return
			}
		}
	})
	return out, found, nil
}

func (r *RoomRepository) CreateFormat(_ context.Context, f room.Format) (room.Format, error) {
	err := r.store.write(func(data *state) error {
		for _, existing := range data.formats {
			if existing.RoomID == f.RoomID && existing.Name == f.Name {
				return room.ErrDuplicateFormatName
			}
		}
		f.ID = data.nextID()
		f.Servers = slices.Clone(f.Servers)
		data.formats = append(data.formats, f)
		return nil
	})
	if err != nil {
		return room.Format{}, err
	}
	return f, nil
}
