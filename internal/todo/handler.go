package todo

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/krysmro/todo-service/internal/auth"
)

const maxTaskBody = 1 << 20

// Handler translates HTTP requests into service calls using the caller
// identity extracted by the auth middleware.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// List handles GET /Todos.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	items, err := h.svc.List(r.Context(), userID)
	if err != nil {
		h.respondError(w, err, "Todos.List", "user_id", userID)
		return
	}
	h.writeJSON(w, http.StatusOK, items)
}

// Get handles GET /Todos/{todoID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	todoID, ok := h.todoID(w, r)
	if !ok {
		return
	}
	item, err := h.svc.Get(r.Context(), userID, todoID)
	if err != nil {
		h.respondError(w, err, "Todos.Get", "user_id", userID, "todo_id", todoID)
		return
	}
	h.writeJSON(w, http.StatusOK, item)
}

// Create handles POST /Todos. The body is the task text, either raw or as a
// JSON string.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	task, err := readTaskBody(r)
	if err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	item, err := h.svc.Create(r.Context(), task, userID)
	if err != nil {
		h.respondError(w, err, "Todos.Create", "user_id", userID)
		return
	}
	h.writeJSON(w, http.StatusOK, item)
}

// UpdateTask handles PUT /Todos/{todoID}.
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	todoID, ok := h.todoID(w, r)
	if !ok {
		return
	}
	task, err := readTaskBody(r)
	if err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := h.svc.UpdateTask(r.Context(), todoID, userID, task); err != nil {
		h.respondError(w, err, "Todos.UpdateTask", "user_id", userID, "todo_id", todoID)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Complete handles PUT /Todos/{todoID}/Complete.
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	todoID, ok := h.todoID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Complete(r.Context(), todoID, userID); err != nil {
		h.respondError(w, err, "Todos.Complete", "user_id", userID, "todo_id", todoID)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Delete handles DELETE /Todos/{todoID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	todoID, ok := h.todoID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), userID, todoID); err != nil {
		h.respondError(w, err, "Todos.Delete", "user_id", userID, "todo_id", todoID)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// userID pulls the verified caller id from the request context. A missing id
// means the middleware did not run; treated as an authorization failure, not
// a fallback user.
func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

func (h *Handler) todoID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "todoID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid todo id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// respondError maps service errors onto the response taxonomy: validation
// → 400, not found → 404, anything else → 500 (retryable by the client).
func (h *Handler) respondError(w http.ResponseWriter, err error, op string, kv ...any) {
	switch {
	case errors.Is(err, ErrTaskRequired):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		h.logger.Errorw("todo operation failed", append([]any{"op", op, "err", err}, kv...)...)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// readTaskBody accepts either a JSON string literal or raw text as the task.
func readTaskBody(r *http.Request) (string, error) {
	b, err := io.ReadAll(io.LimitReader(r.Body, maxTaskBody))
	if err != nil {
		return "", err
	}
	s := string(b)
	if strings.HasPrefix(strings.TrimSpace(s), `"`) {
		var decoded string
		if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &decoded); err == nil {
			return decoded, nil
		}
	}
	return s, nil
}
