package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/probata/estateledger-backend/internal/logger"
	"github.com/probata/estateledger-backend/internal/services"
	"github.com/probata/estateledger-backend/internal/types"
)

type TaskHandler struct {
	log         *logger.Logger
	taskService services.TaskService
}

func NewTaskHandler(log *logger.Logger, taskService services.TaskService) *TaskHandler {
	return &TaskHandler{
		log:         log.With("handler", "TaskHandler"),
		taskService: taskService,
	}
}

type TaskRequest struct {
	Title     string     `json:"title" binding:"required"`
	Owner     string     `json:"owner"`
	Deadline  time.Time  `json:"deadline"`
	Status    string     `json:"status"`
	Priority  string     `json:"priority"`
	ProjectID *uuid.UUID `json:"project_id"`
	AssetID   *uuid.UUID `json:"asset_id"`
	Notes     *string    `json:"notes"`
}

func (r TaskRequest) attrs() (services.TaskAttrs, error) {
	attrs := services.TaskAttrs{
		Title:     r.Title,
		Owner:     r.Owner,
		Deadline:  r.Deadline,
		ProjectID: r.ProjectID,
		AssetID:   r.AssetID,
		Notes:     r.Notes,
	}
	if r.Status != "" {
		status, err := types.ParseTaskStatus(r.Status)
		if err != nil {
			return attrs, err
		}
		attrs.Status = status
	}
	if r.Priority != "" {
		priority, err := types.ParseTaskPriority(r.Priority)
		if err != nil {
			return attrs, err
		}
		attrs.Priority = priority
	}
	return attrs, nil
}

// POST /api/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	attrs, err := req.attrs()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_task_field", err)
		return
	}
	task, err := h.taskService.CreateTask(c.Request.Context(), nil, attrs)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, task)
}

// GET /api/tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context())
	if err != nil {
		h.log.Error("ListTasks failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"tasks": tasks})
}

// PUT /api/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_task_id", err)
		return
	}
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	attrs, err := req.attrs()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_task_field", err)
		return
	}
	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, attrs)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, task)
}

// DELETE /api/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_task_id", err)
		return
	}
	if err := h.taskService.DeleteTask(c.Request.Context(), taskID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": taskID})
}

type AddAttachmentRequest struct {
	URL string `json:"url" binding:"required"`
}

// POST /api/tasks/:id/attachments
func (h *TaskHandler) AddAttachment(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_task_id", err)
		return
	}
	var req AddAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	attachment, err := h.taskService.AddAttachment(c.Request.Context(), taskID, req.URL)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, attachment)
}
