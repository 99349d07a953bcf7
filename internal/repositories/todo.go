// Package repositories はデータベース操作を行うリポジトリを提供します。
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"task-tracker/backend/internal/database"
	"task-tracker/backend/internal/models"
)

// ErrTodoNotFound はTODOが見つからない場合のエラーです。
var ErrTodoNotFound = errors.New("todo not found")

const todoColumns = "id, title, description, completed, created_at, updated_at"

// TodoRepository はtodosテーブルに対するSQLを発行する唯一のコンポーネントです。
// キャッシュは持たず、各メソッドが独立した往復になります。
type TodoRepository struct {
	DB *database.DB
	// Now は現在時刻を返します。nil の場合は time.Now を使います。
	Now func() time.Time
}

// NewTodoRepository は新しいTodoRepositoryを作成します。
func NewTodoRepository(db *database.DB) *TodoRepository {
	return &TodoRepository{DB: db}
}

func (r *TodoRepository) now() time.Time {
	if r.Now != nil {
		return r.Now().UTC()
	}
	return time.Now().UTC()
}

// FindAll はすべてのTodoを作成日時の新しい順に取得します。
// 1件も無い場合は空のスライスを返します。
func (r *TodoRepository) FindAll(ctx context.Context) ([]*models.Todo, error) {
	query := "SELECT " + todoColumns + " FROM todos ORDER BY created_at DESC, id DESC"

	todos := []*models.Todo{}
	if err := r.DB.SelectContext(ctx, &todos, query); err != nil {
		return nil, fmt.Errorf("could not query todos: %w", err)
	}
	for _, t := range todos {
		normalize(t)
	}
	return todos, nil
}

// FindByID は指定されたIDのTodoを取得します。
// 存在しない場合は ErrTodoNotFound を返します。
func (r *TodoRepository) FindByID(ctx context.Context, id int64) (*models.Todo, error) {
	query := r.DB.Rebind("SELECT " + todoColumns + " FROM todos WHERE id = ?")

	var t models.Todo
	if err := r.DB.GetContext(ctx, &t, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("could not query todo %d: %w", id, err)
	}
	normalize(&t)
	return &t, nil
}

// Create は新しいTodoを挿入し、採番されたIDを含む保存後の行を返します。
// completed は false、created_at と updated_at は同じ現在時刻になります。
func (r *TodoRepository) Create(ctx context.Context, in models.CreateTodoInput) (*models.Todo, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := r.now()
	query := "INSERT INTO todos (title, description, completed, created_at, updated_at) VALUES (?, ?, ?, ?, ?)"
	args := []any{strings.TrimSpace(in.Title), descriptionArg(in.Description), false, now, now}

	var id int64
	if r.DB.SupportsReturning() {
		if err := r.DB.QueryRowxContext(ctx, r.DB.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
			return nil, fmt.Errorf("could not insert todo: %w", err)
		}
	} else {
		result, err := r.DB.ExecContext(ctx, r.DB.Rebind(query), args...)
		if err != nil {
			return nil, fmt.Errorf("could not insert todo: %w", err)
		}
		if id, err = result.LastInsertId(); err != nil {
			return nil, fmt.Errorf("could not get last insert ID: %w", err)
		}
	}

	created, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not read back todo %d: %w", id, err)
	}
	return created, nil
}

// Update は指定されたフィールドだけを更新します。
// 何も指定されていない場合は現在の行をそのまま返し、updated_at も変えません。
func (r *TodoRepository) Update(ctx context.Context, id int64, in models.UpdateTodoInput) (*models.Todo, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	sets, args := updateAssignments(in)
	sets = append(sets, "updated_at = ?")
	args = append(args, r.now(), id)

	query := r.DB.Rebind("UPDATE todos SET " + strings.Join(sets, ", ") + " WHERE id = ?")
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not update todo %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("could not get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrTodoNotFound
	}

	return r.FindByID(ctx, id)
}

// Delete は指定されたIDの行を削除し、実際に削除されたかどうかを返します。
// 存在しないIDはエラーではなく false になります。
func (r *TodoRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.DB.ExecContext(ctx, r.DB.Rebind("DELETE FROM todos WHERE id = ?"), id)
	if err != nil {
		return false, fmt.Errorf("could not delete todo %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// updateAssignments は指定されたフィールドだけから SET 句を組み立てます。
// 列の並びは固定なので、リクエスト中のフィールド順は結果に影響しません。
func updateAssignments(in models.UpdateTodoInput) ([]string, []any) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)

	if title, ok := in.Title.Get(); ok {
		sets = append(sets, "title = ?")
		args = append(args, strings.TrimSpace(title))
	}
	if in.Description.IsSet() {
		sets = append(sets, "description = ?")
		if desc, ok := in.Description.Get(); ok {
			args = append(args, descriptionArg(&desc))
		} else {
			args = append(args, nil)
		}
	}
	if completed, ok := in.Completed.Get(); ok {
		sets = append(sets, "completed = ?")
		args = append(args, completed)
	}
	return sets, args
}

// descriptionArg は空白のみの説明を NULL として扱います。
func descriptionArg(desc *string) any {
	if desc == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*desc)
	if trimmed == "" {
		return nil
	}
	return trimmed
}

// ドライバーによってタイムゾーンの表現が異なるため、UTCに揃えます。
func normalize(t *models.Todo) {
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
}
