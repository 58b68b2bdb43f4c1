package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/gutbuster/internal/domain/user"
	"github.com/riskibarqy/gutbuster/internal/platform/logging"
)

type UserService struct {
	store  Store
	logger *logging.Logger
	now    func() time.Time
}

func NewUserService(store Store, logger *logging.Logger) *UserService {
	if logger == nil {
		logger = logging.Default()
	}
	return &UserService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// ResolveUser returns the user behind an external account, creating it on
// first sighting and refreshing a stale display name.
func (s *UserService) ResolveUser(ctx context.Context, identity user.Identity) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.ResolveUser")
	var err error
	defer func() { endUsecaseSpan(span, err) }()

	identity.ExternalID = strings.TrimSpace(identity.ExternalID)
	identity.Name = strings.TrimSpace(identity.Name)
	if identity.ExternalID == "" {
		err = fmt.Errorf("%w: external_id is required", ErrInvalidInput)
		return user.User{}, err
	}

	var out user.User
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		var txErr error
		out, txErr = s.resolve(ctx, repos, identity)
		return txErr
	})
	if errors.Is(err, user.ErrDuplicateExternalID) {
		// Lost a first-sighting race; the winner's row is now visible.
		err = s.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
			var txErr error
			out, txErr = s.resolve(ctx, repos, identity)
			return txErr
		})
	}
	if err != nil {
		return user.User{}, err
	}

	return out, nil
}

func (s *UserService) resolve(ctx context.Context, repos Repositories, identity user.Identity) (user.User, error) {
	now := s.now().UTC()

	existing, found, err := repos.Users.GetByExternalID(ctx, identity.ExternalID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user by external id: %w", err)
	}
	if found {
		if identity.Name == "" || identity.Name == existing.Name {
			return existing, nil
		}
		existing.Name = identity.Name
		existing.UpdatedAt = now
		if err := repos.Users.UpdateName(ctx, existing); err != nil {
			return user.User{}, mapUserConflict(fmt.Errorf("refresh user name: %w", err))
		}
		return existing, nil
	}

	name := identity.Name
	if name == "" {
		name = identity.ExternalID
	}
	created, err := repos.Users.Create(ctx, user.User{
		ExternalID: identity.ExternalID,
		Name:       name,
		InsertedAt: now,
		UpdatedAt:  now,
	})
	if err != nil {
		return user.User{}, mapUserConflict(fmt.Errorf("create user: %w", err))
	}

	s.logger.InfoContext(ctx, "user created", "user_id", created.ID, "external_id", created.ExternalID)
	return created, nil
}

func (s *UserService) GetUser(ctx context.Context, externalID string) (user.User, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return user.User{}, fmt.Errorf("%w: external_id is required", ErrInvalidInput)
	}

	item, found, err := s.store.Repositories().Users.GetByExternalID(ctx, externalID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user by external id: %w", err)
	}
	if !found {
		return user.User{}, fmt.Errorf("%w: user external_id=%s", ErrNotFound, externalID)
	}

	return item, nil
}

func mapUserConflict(err error) error {
	if errors.Is(err, user.ErrDuplicateName) {
		return fmt.Errorf("%w: %w", ErrNameTaken, err)
	}
	return err
}

// requireUser is shared by services that take internal user ids.
func requireUser(ctx context.Context, repos Repositories, userID int64) (user.User, error) {
	if userID <= 0 {
		return user.User{}, fmt.Errorf("%w: user_id must be positive", ErrInvalidInput)
	}
	item, found, err := repos.Users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !found {
		return user.User{}, fmt.Errorf("%w: user id=%d", ErrNotFound, userID)
	}
	return item, nil
}
