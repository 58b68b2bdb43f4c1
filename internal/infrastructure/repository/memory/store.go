package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/riskibarqy/gutbuster/internal/domain/event"
	"github.com/riskibarqy/gutbuster/internal/domain/playermod"
	"github.com/riskibarqy/gutbuster/internal/domain/rating"
	"github.com/riskibarqy/gutbuster/internal/domain/room"
	"github.com/riskibarqy/gutbuster/internal/domain/user"
	"github.com/riskibarqy/gutbuster/internal/usecase"
)

type state struct {
	seq          int64
	users        map[int64]user.User
	ratings      []rating.Rating
	rooms        map[int64]room.Room
	formats      []room.Format
	events       map[int64]event.Event
	participants []event.Participant
	votes        []event.Vote
	mods         []playermod.PlayerMod
}

func newState() *state {
	return &state{
		users:  make(map[int64]user.User),
		rooms:  make(map[int64]room.Room),
		events: make(map[int64]event.Event),
	}
}

func (s *state) nextID() int64 {
	s.seq++
	return s.seq
}

// clone copies everything a transaction may mutate. Pointer fields are never
// written through, so sharing them is safe.
func (s *state) clone() *state {
	out := &state{
		seq:          s.seq,
		users:        make(map[int64]user.User, len(s.users)),
		ratings:      slices.Clone(s.ratings),
		rooms:        make(map[int64]room.Room, len(s.rooms)),
		formats:      make([]room.Format, len(s.formats)),
		events:       make(map[int64]event.Event, len(s.events)),
		participants: slices.Clone(s.participants),
		votes:        slices.Clone(s.votes),
		mods:         slices.Clone(s.mods),
	}
	for id, u := range s.users {
		out.users[id] = u
	}
	for id, r := range s.rooms {
		out.rooms[id] = r
	}
	for i, f := range s.formats {
		f.Servers = slices.Clone(f.Servers)
		out.formats[i] = f
	}
	for id, e := range s.events {
		out.events[id] = e
	}
	return out
}

// Store keeps every table in process memory. Transactions are serialized and
// work on a private copy of the tables that replaces the committed state
// only when the transaction succeeds.
type Store struct {
	txMu  sync.Mutex
	mu    sync.RWMutex
	data  *state
	repos usecase.Repositories
}

var _ usecase.Store = (*Store)(nil)

func NewStore() *Store {
	s := &Store{data: newState()}
	s.repos = newRepositories(view{store: s})
	return s
}

func newRepositories(v view) usecase.Repositories {
	return usecase.Repositories{
		Users:   &UserRepository{store: v},
		Ratings: &RatingRepository{store: v},
		Rooms:   &RoomRepository{store: v},
		Events:  &EventRepository{store: v},
		Mods:    &PlayerModRepository{store: v},
	}
}

// Repositories reads and writes the committed state. Each write is its own
// transaction.
func (s *Store) Repositories() usecase.Repositories {
	return s.repos
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos usecase.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	working := &txState{data: s.data.clone()}
	s.mu.RUnlock()

	if err := fn(ctx, newRepositories(view{store: s, tx: working})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.data = working.data
	s.mu.Unlock()
	return nil
}

type txState struct {
	mu   sync.RWMutex
	data *state
}

// view routes repository access to a transaction's working state, or to the
// committed state when tx is nil.
type view struct {
	store *Store
	tx    *txState
}

func (v view) read(fn func(data *state)) {
	if v.tx != nil {
		v.tx.mu.RLock()
		defer v.tx.mu.RUnlock()
		fn(v.tx.data)
		return
	}
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	fn(v.store.data)
}

func (v view) write(fn func(data *state) error) error {
	if v.tx != nil {
		v.tx.mu.Lock()
		defer v.tx.mu.Unlock()
		return fn(v.tx.data)
	}
	v.store.txMu.Lock()
	defer v.store.txMu.Unlock()
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	working := v.store.data.clone()
	if err := fn(working); err != nil {
		return err
	}
	v.store.data = working
	return nil
}
