// Package todos manages Todo persistence and exposes interception points
// that run after each write, inside the write's transaction scope.
package todos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"slack-bridge/internal/models"
	"slack-bridge/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var ErrNotFound = repository.ErrNotFound

// Store is the persistence the service needs. *repository.TodoRepo satisfies it.
type Store interface {
	Insert(ctx context.Context, todo *models.Todo) error
	Update(ctx context.Context, todo *models.Todo) error
	Delete(ctx context.Context, id bson.ObjectID) (*models.Todo, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Todo, error)
	List(ctx context.Context) ([]models.Todo, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// SaveHook runs after a todo is inserted (created=true) or updated.
type SaveHook func(ctx context.Context, todo *models.Todo, created bool) error

// DeleteHook runs after a todo is deleted.
type DeleteHook func(ctx context.Context, todo *models.Todo) error

type Service struct {
	store       Store
	afterSave   []SaveHook
	afterDelete []DeleteHook
	now         func() time.Time
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// AfterSave subscribes h to inserts and updates. Hooks run in registration
// order; the first error aborts the save.
func (s *Service) AfterSave(h SaveHook) {
	s.afterSave = append(s.afterSave, h)
}

// AfterDelete subscribes h to deletions.
func (s *Service) AfterDelete(h DeleteHook) {
	s.afterDelete = append(s.afterDelete, h)
}

// Create validates text and saves a new todo.
func (s *Service) Create(ctx context.Context, text string) (*models.Todo, error) {
	todo := &models.Todo{Text: strings.TrimSpace(text)}
	if errs := todo.Validate(); len(errs) > 0 {
		return nil, errs
	}
	if err := s.Save(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Update validates text and saves it onto the existing todo id.
func (s *Service) Update(ctx context.Context, id bson.ObjectID, text string) (*models.Todo, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find todo: %w", err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	existing.Text = strings.TrimSpace(text)
	if errs := existing.Validate(); len(errs) > 0 {
		return nil, errs
	}
	if err := s.Save(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Save inserts todo when it has no id yet and updates it otherwise, then runs
// the save hooks. It does not validate.
func (s *Service) Save(ctx context.Context, todo *models.Todo) error {
	created := todo.ID.IsZero()
	err := s.store.WithTransaction(ctx, func(ctx context.Context) error {
		now := s.now()
		todo.UpdatedAt = now
		if created {
			// A store may run this callback again after an aborted attempt.
			todo.ID = bson.ObjectID{}
			todo.CreatedAt = now
			if err := s.store.Insert(ctx, todo); err != nil {
				return fmt.Errorf("insert todo: %w", err)
			}
		} else if err := s.store.Update(ctx, todo); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("update todo: %w", err)
		}

		for _, h := range s.afterSave {
			if err := h(ctx, todo, created); err != nil {
				return fmt.Errorf("after save: %w", err)
			}
		}
		return nil
	})
	if err != nil && created {
		todo.ID = bson.ObjectID{}
	}
	return err
}

// Delete removes the todo and runs the delete hooks with its last state.
func (s *Service) Delete(ctx context.Context, id bson.ObjectID) error {
	return s.store.WithTransaction(ctx, func(ctx context.Context) error {
		todo, err := s.store.Delete(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("delete todo: %w", err)
		}

		for _, h := range s.afterDelete {
			if err := h(ctx, todo); err != nil {
				return fmt.Errorf("after delete: %w", err)
			}
		}
		return nil
	})
}

// Get returns nil, nil when the todo does not exist.
func (s *Service) Get(ctx context.Context, id bson.ObjectID) (*models.Todo, error) {
	return s.store.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]models.Todo, error) {
	return s.store.List(ctx)
}
