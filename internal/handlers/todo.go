package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"slack-bridge/internal/validation"
	"slack-bridge/internal/models"
	"slack-bridge/internal/todos"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

// TodoService is the subset of *todos.Service the API uses.
type TodoService interface {
	Create(ctx context.Context, text string) (*models.Todo, error)
	Update(ctx context.Context, id bson.ObjectID, text string) (*models.Todo, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	Get(ctx context.Context, id bson.ObjectID) (*models.Todo, error)
	List(ctx context.Context) ([]models.Todo, error)
}

type TodoHandler struct {
	todos  TodoService
	logger *zap.Logger
}

func NewTodoHandler(todos TodoService, logger *zap.Logger) *TodoHandler {
	return &TodoHandler{
		todos:  todos,
		logger: logger,
	}
}

type TodoRequest struct {
	Text string `json:"text"`
}

// --- GET /todos ---

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.todos.List(r.Context())
	if err != nil {
		h.logger.Error("error listing todos", zap.Error(err))
		writeJSON(w, r, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]interface{}{"todos": list})
}

// --- POST /todos ---

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	todo, err := h.todos.Create(r.Context(), req.Text)
	if err != nil {
		h.writeError(w, r, "error creating todo", err)
		return
	}
	writeJSON(w, r, http.StatusCreated, todo)
}

// --- GET /todos/{id} ---

func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTodoID(w, r)
	if !ok {
		return
	}

	todo, err := h.todos.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "error finding todo", err)
		return
	}
	if todo == nil {
		writeJSON(w, r, http.StatusNotFound, map[string]string{"error": "todo not found"})
		return
	}
	writeJSON(w, r, http.StatusOK, todo)
}

// --- PUT /todos/{id} ---

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTodoID(w, r)
	if !ok {
		return
	}

	var req TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	todo, err := h.todos.Update(r.Context(), id, req.Text)
	if err != nil {
		h.writeError(w, r, "error updating todo", err)
		return
	}
	writeJSON(w, r, http.StatusOK, todo)
}

// --- DELETE /todos/{id} ---

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTodoID(w, r)
	if !ok {
		return
	}

	if err := h.todos.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, "error deleting todo", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TodoHandler) writeError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	var fieldErrs validation.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		writeJSON(w, r, http.StatusBadRequest, map[string]interface{}{"errors": fieldErrs.ByField()})
	case errors.Is(err, todos.ErrNotFound):
		writeJSON(w, r, http.StatusNotFound, map[string]string{"error": "todo not found"})
	default:
		h.logger.Error(msg, zap.Error(err))
		writeJSON(w, r, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func parseTodoID(w http.ResponseWriter, r *http.Request) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid todo ID"})
		return bson.ObjectID{}, false
	}
	return id, true
}
