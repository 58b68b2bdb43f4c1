package memory

import (
	"context"

	"github.com/riskibarqy/gutbuster/internal/domain/user"
)

type UserRepository struct {
	store view
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (out user.User, found bool, err error) {
	r.store.read(func(data *state) {
		out, found = data.users[id]
	})
	return out, found, nil
}

func (r *UserRepository) GetByExternalID(_ context.Context, externalID string) (out user.User, found bool, err error) {
	r.store.read(func(data *state) {
		for _, u := range data.users {
			if u.ExternalID == externalID {
				out, found = u, true
				return
			}
		}
	})
	return out, found, nil
}

func (r *UserRepository) Create(_ context.Context, u user.User) (user.User, error) {
	err := r.store.write(func(data *state) error {
		for _, existing := range data.users {
			if existing.ExternalID == u.ExternalID {
				return user.ErrDuplicateExternalID
			}
			if existing.Name == u.Name {
				return user.ErrDuplicateName
			}
		}
		u.ID = data.nextID()
		data.users[u.ID] = u
		return nil
	})
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (r *UserRepository) UpdateName(_ context.Context, u user.User) error {
	return r.store.write(func(data *state) error {
		existing, ok := data.users[u.ID]
		if !ok {
			return nil
		}
		for id, other := range data.users {
			if id != u.ID && other.Name == u.Name {
				return user.ErrDuplicateName
			}
		}
		existing.Name = u.Name
		existing.UpdatedAt = u.UpdatedAt
		data.users[u.ID] = existing
		return nil
	})
}
