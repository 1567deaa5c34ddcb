// Package todostest provides an in-memory todos.Store for tests.
package todostest

import (
	"context"
	"sort"
	"sync"

	"slack-bridge/internal/models"
	"slack-bridge/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemStore keeps todos in a map. WithTransaction snapshots the map and
// restores it when the callback fails, mimicking an aborted transaction.
type MemStore struct {
	mu    sync.Mutex
	todos map[bson.ObjectID]models.Todo
}

func NewMemStore() *MemStore {
	return &MemStore{todos: make(map[bson.ObjectID]models.Todo)}
}

func (s *MemStore) Insert(_ context.Context, todo *models.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	todo.ID = bson.NewObjectID()
	s.todos[todo.ID] = *todo
	return nil
}

func (s *MemStore) Update(_ context.Context, todo *models.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.todos[todo.ID]; !ok {
		return repository.ErrNotFound
	}
	s.todos[todo.ID] = *todo
	return nil
}

func (s *MemStore) Delete(_ context.Context, id bson.ObjectID) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	todo, ok := s.todos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(s.todos, id)
	return &todo, nil
}

func (s *MemStore) FindByID(_ context.Context, id bson.ObjectID) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	todo, ok := s.todos[id]
	if !ok {
		return nil, nil
	}
	return &todo, nil
}

func (s *MemStore) List(_ context.Context) ([]models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Todo, 0, len(s.todos))
	for _, todo := range s.todos {
		out = append(out, todo)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID.Hex() < out[j].ID.Hex()
	})
	return out, nil
}

func (s *MemStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	snapshot := make(map[bson.ObjectID]models.Todo, len(s.todos))
	for id, todo := range s.todos {
		snapshot[id] = todo
	}
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.todos = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// Len reports the number of stored todos.
func (s *MemStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.todos)
}
