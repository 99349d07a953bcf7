// Package models はTodoとそのリクエスト型を定義します。
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Todo はtodosテーブルの1行を表します。
// Description は未設定の場合 nil で、JSONでは null になります。
type Todo struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	Completed   bool      `json:"completed" db:"completed"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ErrValidation は入力値が不正な場合のエラーです。HTTP層では 400 になります。
var ErrValidation = errors.New("validation failed")

var (
	ErrEmptyTitle = fmt.Errorf("%w: title must not be empty", ErrValidation)
	ErrNullField  = fmt.Errorf("%w: title and completed must not be null", ErrValidation)
)

// CreateTodoInput はTodo作成リクエストです。
// `notblank` は handlers.RegisterValidations で登録されるカスタムルールです。
type CreateTodoInput struct {
	Title       string  `json:"title" binding:"required,notblank"`
	Description *string `json:"description"`
}

// Validate はtitleが空白のみでないことを確認します。
func (in CreateTodoInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// UpdateTodoInput は部分更新リクエストです。指定されたフィールドだけが更新されます。
// description に null を送ると説明が消去されます。
type UpdateTodoInput struct {
	Title       Optional[string] `json:"title,omitzero"`
	Description Optional[string] `json:"description,omitzero"`
	Completed   Optional[bool]   `json:"completed,omitzero"`
}

// IsEmpty はどのフィールドも指定されていない場合に true を返します。
func (in UpdateTodoInput) IsEmpty() bool {
	return !in.Title.IsSet() && !in.Description.IsSet() && !in.Completed.IsSet()
}

// Validate は title / completed への null と空白のみの title を拒否します。
func (in UpdateTodoInput) Validate() error {
	if in.Title.IsNull() || in.Completed.IsNull() {
		return ErrNullField
	}
	if title, ok := in.Title.Get(); ok && strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	return nil
}
