package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker/backend/internal/models"
	"task-tracker/backend/internal/repositories"
	"task-tracker/backend/internal/services"
)

// fakeStore は呼び出し回数を数えるだけのストアです。
type fakeStore struct {
	todos     map[int64]*models.Todo
	deleteErr error
	calls     int
}

func newFakeStore(todos ...*models.Todo) *fakeStore {
	s := &fakeStore{todos: map[int64]*models.Todo{}}
	for _, t := range todos {
		s.todos[t.ID] = t
	}
	return s
}

func (s *fakeStore) FindAll(ctx context.Context) ([]*models.Todo, error) {
	s.calls++
	out := []*models.Todo{}
	for _, t := range s.todos {
		out = append(out, t)
	}
	return out, nil
}

func (s *fakeStore) FindByID(ctx context.Context, id int64) (*models.Todo, error) {
	s.calls++
	t, ok := s.todos[id]
	if !ok {
		return nil, repositories.ErrTodoNotFound
	}
	return t, nil
}

func (s *fakeStore) Create(ctx context.Context, in models.CreateTodoInput) (*models.Todo, error) {
	s.calls++
	t := &models.Todo{ID: int64(len(s.todos) + 1), Title: in.Title}
	s.todos[t.ID] = t
	return t, nil
}

func (s *fakeStore) Update(ctx context.Context, id int64, in models.UpdateTodoInput) (*models.Todo, error) {
	s.calls++
	t, ok := s.todos[id]
	if !ok {
		return nil, repositories.ErrTodoNotFound
	}
	if completed, ok := in.Completed.Get(); ok {
		t.Completed = completed
	}
	return t, nil
}

func (s *fakeStore) Delete(ctx context.Context, id int64) (bool, error) {
	s.calls++
	if s.deleteErr != nil {
		return false, s.deleteErr
	}
	if _, ok := s.todos[id]; !ok {
		return false, nil
	}
	delete(s.todos, id)
	return true, nil
}

func TestTodoService_DeleteTodo(t *testing.T) {
	ctx := context.Background()

	t.Run("existing todo", func(t *testing.T) {
		store := newFakeStore(&models.Todo{ID: 1, Title: "A"})
		svc := services.NewTodoService(store)

		require.NoError(t, svc.DeleteTodo(ctx, 1))
		assert.Empty(t, store.todos)
		assert.Equal(t, 1, store.calls)
	})

	t.Run("missing todo maps to ErrTodoNotFound", func(t *testing.T) {
		store := newFakeStore()
		svc := services.NewTodoService(store)

		err := svc.DeleteTodo(ctx, 42)
		assert.ErrorIs(t, err, repositories.ErrTodoNotFound)
	})

	t.Run("storage error is passed through", func(t *testing.T) {
		storageErr := errors.New("disk I/O error")
		store := newFakeStore()
		store.deleteErr = storageErr
		svc := services.NewTodoService(store)

		err := svc.DeleteTodo(ctx, 1)
		assert.ErrorIs(t, err, storageErr)
		assert.NotErrorIs(t, err, repositories.ErrTodoNotFound)
	})
}

func TestTodoService_OneStoreCallPerOperation(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(&models.Todo{ID: 1, Title: "A"})
	svc := services.NewTodoService(store)

	_, err := svc.GetTodos(ctx)
	require.NoError(t, err)
	_, err = svc.GetTodoByID(ctx, 1)
	require.NoError(t, err)
	_, err = svc.CreateTodo(ctx, models.CreateTodoInput{Title: "B"})
	require.NoError(t, err)
	updated, err := svc.UpdateTodo(ctx, 1, models.UpdateTodoInput{Completed: models.Some(true)})
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	assert.Equal(t, 4, store.calls)
}

func TestTodoService_GetTodoByID_NotFound(t *testing.T) {
	svc := services.NewTodoService(newFakeStore())

	_, err := svc.GetTodoByID(context.Background(), 7)
	assert.ErrorIs(t, err, repositories.ErrTodoNotFound)
}
