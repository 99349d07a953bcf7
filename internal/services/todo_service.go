// Package services はハンドラーとリポジトリの間のドメインロジックを扱います。
package services

import (
	"context"

	"task-tracker/backend/internal/models"
	"task-tracker/backend/internal/repositories"
)

// TodoStore はTodoServiceが必要とする永続化操作です。
// *repositories.TodoRepository が実装します。
type TodoStore interface {
	FindAll(ctx context.Context) ([]*models.Todo, error)
	FindByID(ctx context.Context, id int64) (*models.Todo, error)
	Create(ctx context.Context, in models.CreateTodoInput) (*models.Todo, error)
	Update(ctx context.Context, id int64, in models.UpdateTodoInput) (*models.Todo, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

var _ TodoStore = (*repositories.TodoRepository)(nil)

// TodoService はTodo関連のビジネスロジックを扱います。
// 1回の呼び出しにつきストアへのアクセスは1回だけです。
type TodoService struct {
	todoRepo TodoStore
}

// NewTodoService は新しいTodoServiceを作成します。
func NewTodoService(todoRepo TodoStore) *TodoService {
	return &TodoService{todoRepo: todoRepo}
}

// GetTodos はすべてのTodoを新しい順に取得します。
func (s *TodoService) GetTodos(ctx context.Context) ([]*models.Todo, error) {
	return s.todoRepo.FindAll(ctx)
}

// GetTodoByID は指定IDのTodoを取得します。
func (s *TodoService) GetTodoByID(ctx context.Context, id int64) (*models.Todo, error) {
	return s.todoRepo.FindByID(ctx, id)
}

// CreateTodo は新しいTodoを作成します。
func (s *TodoService) CreateTodo(ctx context.Context, in models.CreateTodoInput) (*models.Todo, error) {
	return s.todoRepo.Create(ctx, in)
}

// UpdateTodo はTodoを部分更新します。
func (s *TodoService) UpdateTodo(ctx context.Context, id int64, in models.UpdateTodoInput) (*models.Todo, error) {
	return s.todoRepo.Update(ctx, id, in)
}

// DeleteTodo はTodoを削除します。
// リポジトリは存在しないIDを false で返すので、ここで ErrTodoNotFound に変換します。
func (s *TodoService) DeleteTodo(ctx context.Context, id int64) error {
	deleted, err := s.todoRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return repositories.ErrTodoNotFound
	}
	return nil
}
