package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/kanban-api/internal/api/shared"
	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/service"
)

// Client-facing messages for missing required fields.
const (
	msgColumnNameRequired = "Column name required"
	msgTaskFieldsRequired = "Task title & column required"
	msgNewColumnRequired  = "New column required"
	msgNewNameRequired    = "New name required"
	msgNewTitleRequired   = "New title required"
	msgInvalidBody        = "Invalid request body"
)

// BoardHandler handles column and task HTTP requests
type BoardHandler struct {
	boardService service.BoardService
	logger       *slog.Logger
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(boardService service.BoardService, logger *slog.Logger) *BoardHandler {
	if boardService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("boardService cannot be nil for BoardHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &BoardHandler{
		boardService: boardService,
		logger:       logger.With(slog.String("component", "board_handler")),
	}
}

// Routes registers the board endpoints on r.
func (h *BoardHandler) Routes(r chi.Router) {
	r.Route("/columns", func(r chi.Router) {
		r.Get("/", h.ListColumns)
		r.Post("/", h.CreateColumn)
		r.Delete("/{id}", h.DeleteColumn)
		r.Post("/{id}/update", h.RenameColumn)
	})
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.ListTasks)
		r.Post("/", h.CreateTask)
		r.Delete("/{id}", h.DeleteTask)
		r.Post("/{id}/move", h.MoveTask)
		r.Post("/{id}/update", h.RenameTask)
	})
}

// ListColumns handles GET /columns requests
func (h *BoardHandler) ListColumns(w http.ResponseWriter, r *http.Request) {
	columns, err := h.boardService.ListColumns(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, columns)
}

// ListTasks handles GET /tasks requests
func (h *BoardHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.boardService.ListTasks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// CreateColumn handles POST /columns requests
func (h *BoardHandler) CreateColumn(w http.ResponseWriter, r *http.Request) {
	var req CreateColumnRequest
	if !decode(w, r, &req, msgColumnNameRequired) {
		return
	}

	column, err := h.boardService.CreateColumn(r.Context(), req.Name)
	if err != nil {
		HandleAPIError(w, r, err, msgColumnNameRequired)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("column created",
		slog.Int64("column_id", column.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, column)
}

// DeleteColumn handles DELETE /columns/{id} requests.
// Every task in the column is deleted with it.
func (h *BoardHandler) DeleteColumn(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.boardService.DeleteColumn(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithSuccess(w, r)
}

// RenameColumn handles POST /columns/{id}/update requests
func (h *BoardHandler) RenameColumn(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req RenameColumnRequest
	if !decode(w, r, &req, msgNewNameRequired) {
		return
	}

	if err := h.boardService.RenameColumn(r.Context(), id, req.NewName); err != nil {
		HandleAPIError(w, r, err, msgNewNameRequired)
		return
	}
	shared.RespondWithSuccess(w, r)
}

// CreateTask handles POST /tasks requests
func (h *BoardHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if !decode(w, r, &req, msgTaskFieldsRequired) {
		return
	}

	task, err := h.boardService.CreateTask(r.Context(), req.Title, req.ColumnID)
	if err != nil {
		HandleAPIError(w, r, err, msgTaskFieldsRequired)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("column_id", task.ColumnID))
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/{id} requests
func (h *BoardHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.boardService.DeleteTask(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithSuccess(w, r)
}

// MoveTask handles POST /tasks/{id}/move requests
func (h *BoardHandler) MoveTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req MoveTaskRequest
	if !decode(w, r, &req, msgNewColumnRequired) {
		return
	}

	if err := h.boardService.MoveTask(r.Context(), id, req.NewColumnID); err != nil {
		HandleAPIError(w, r, err, msgNewColumnRequired)
		return
	}
	shared.RespondWithSuccess(w, r)
}

// RenameTask handles POST /tasks/{id}/update requests
func (h *BoardHandler) RenameTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req RenameTaskRequest
	if !decode(w, r, &req, msgNewTitleRequired) {
		return
	}

	if err := h.boardService.RenameTask(r.Context(), id, req.NewTitle); err != nil {
		HandleAPIError(w, r, err, msgNewTitleRequired)
		return
	}
	shared.RespondWithSuccess(w, r)
}

// pathID reads the {id} path parameter, writing a 400 response when it is invalid.
func (h *BoardHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := getPathID(r, "id")
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Debug("invalid path id",
			slog.String("value", chi.URLParam(r, "id")))
		HandleAPIError(w, r, err, "Invalid id")
		return 0, false
	}
	return id, true
}

// decode decodes and validates the request body into v. A malformed body
// yields a generic 400; a missing field yields missingMsg.
func decode(w http.ResponseWriter, r *http.Request, v interface{}, missingMsg string) bool {
	err := shared.DecodeAndValidate(r, v)
	if err == nil {
		return true
	}

	msg := missingMsg
	if ve, ok := err.(*domain.ValidationError); ok && ve.Field == "body" {
		msg = msgInvalidBody
	}
	HandleAPIError(w, r, err, msg)
	return false
}
