package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"task-tracker/backend/internal/models"
	"task-tracker/backend/internal/repositories"
	"task-tracker/backend/internal/services"
)

// TodoHandler はTodo関連のハンドラーを管理します。
type TodoHandler struct {
	todoService *services.TodoService
	logger      *slog.Logger
}

// NewTodoHandler は新しいTodoHandlerを作成します。
func NewTodoHandler(todoService *services.TodoService, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{todoService: todoService, logger: logger}
}

// GetTodosHandler はTodoリストを取得します。
func (h *TodoHandler) GetTodosHandler(c *gin.Context) {
	todos, err := h.todoService.GetTodos(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to fetch todos", err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

// CreateTodoHandler は新しいTodoを作成します。
func (h *TodoHandler) CreateTodoHandler(c *gin.Context) {
	var in models.CreateTodoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	created, err := h.todoService.CreateTodo(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
			return
		}
		h.internalError(c, "Failed to create todo", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetTodoByIDHandler は指定IDのTodoを取得します。
func (h *TodoHandler) GetTodoByIDHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	todo, err := h.todoService.GetTodoByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
			return
		}
		h.internalError(c, "Failed to fetch todo", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// UpdateTodoHandler はTodoを部分更新します。ボディに含まれるフィールドだけが変更されます。
func (h *TodoHandler) UpdateTodoHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var in models.UpdateTodoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	if err := in.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}

	updated, err := h.todoService.UpdateTodo(c.Request.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrTodoNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		case errors.Is(err, models.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		default:
			h.internalError(c, "Failed to update todo", err, "id", id)
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteTodoHandler はTodoを削除します。
func (h *TodoHandler) DeleteTodoHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.todoService.DeleteTodo(c.Request.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
			return
		}
		h.internalError(c, "Failed to delete todo", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// parseID はパスパラメータのIDを整数として解釈します。
// 整数でない場合は 400 を書き込み、ストアには到達させません。
// 0 や負の値は整数なのでそのまま渡し、存在しなければ 404 になります。
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid todo ID"})
		return 0, false
	}
	return id, true
}

// validationMessage は検証エラーをクライアント向けの固定メッセージに変換します。
func validationMessage(err error) string {
	if errors.Is(err, models.ErrNullField) {
		return "Title and completed must not be null"
	}
	return "Title is required"
}

// internalError は詳細をログに残し、クライアントには汎用メッセージだけを返します。
func (h *TodoHandler) internalError(c *gin.Context, message string, err error, attrs ...any) {
	attrs = append(attrs, "error", err, RequestIDKey, RequestID(c))
	h.logger.ErrorContext(c.Request.Context(), message, attrs...)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}
