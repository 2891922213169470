package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskforge/scheduler/internal/errs"
	"github.com/taskforge/scheduler/internal/id"
	"github.com/taskforge/scheduler/internal/models"
	"github.com/taskforge/scheduler/internal/store"
)

// TaskHandler implements the CRUD surface from spec.md §6, delegated to
// the Task Store. Before a write, Create and Update check that the
// duration is positive and that every dependency id parses, names an
// existing task of the same user, and is not the task itself. Priority
// is not range-checked, and dependency cycles longer than a self
// reference are not rejected here; they surface as CycleDetected when a
// schedule is generated.
type TaskHandler struct {
	tasks store.TaskStore
}

// NewTaskHandler builds a TaskHandler.
func NewTaskHandler(tasks store.TaskStore) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

func (h *TaskHandler) List(c *gin.Context) {
	userID, _ := CurrentUserID(c)
	tasks, err := h.tasks.List(c.Request.Context(), store.TaskFilter{UserID: userID, IncludeBreaks: true})
	if err != nil {
		WriteError(c, err)
		return
	}
	for i := range tasks {
		deps, err := h.tasks.Dependencies(c.Request.Context(), tasks[i].ID)
		if err == nil {
			tasks[i].Dependencies = deps
		}
	}
	c.JSON(http.StatusOK, toTaskDTOs(tasks))
}

func (h *TaskHandler) Get(c *gin.Context) {
	userID, _ := CurrentUserID(c)
	taskID, err := id.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid task id")
		return
	}
	task, err := h.tasks.FindByID(c.Request.Context(), taskID)
	if err != nil {
		WriteError(c, err)
		return
	}
	if task.UserID != userID {
		WriteError(c, errs.NotFound("httpapi.Task.Get", "task not found"))
		return
	}
	deps, _ := h.tasks.Dependencies(c.Request.Context(), task.ID)
	task.Dependencies = deps
	c.JSON(http.StatusOK, toTaskDTO(*task))
}

func (h *TaskHandler) Create(c *gin.Context) {
	const op = "httpapi.Task.Create"
	userID, _ := CurrentUserID(c)

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.DurationMinutes <= 0 {
		WriteError(c, errs.InvalidDuration(op, "duration_minutes must be positive"))
		return
	}

	deps, err := parseIDs(req.Dependencies)
	if err != nil {
		WriteError(c, errs.Validation(op, "dependencies", "malformed dependency id"))
		return
	}
	if err := h.validateDependencies(c, userID, id.Nil, deps); err != nil {
		WriteError(c, err)
		return
	}

	task := &models.Task{
		ID:              id.New(),
		UserID:          userID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Priority:        req.Priority,
		Status:          models.StatusPending,
		Deadline:        req.Deadline,
		Dependencies:    deps,
	}
	if err := h.tasks.Create(c.Request.Context(), task); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTaskDTO(*task))
}

func (h *TaskHandler) Update(c *gin.Context) {
	const op = "httpapi.Task.Update"
	userID, _ := CurrentUserID(c)
	taskID, err := id.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid task id")
		return
	}

	task, err := h.tasks.FindByID(c.Request.Context(), taskID)
	if err != nil {
		WriteError(c, err)
		return
	}
	if task.UserID != userID {
		WriteError(c, errs.NotFound(op, "task not found"))
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	if req.Name != nil {
		task.Name = *req.Name
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			WriteError(c, errs.InvalidDuration(op, "duration_minutes must be positive"))
			return
		}
		task.DurationMinutes = *req.DurationMinutes
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.ClearDeadline {
		task.Deadline = nil
	} else if req.Deadline != nil {
		task.Deadline = req.Deadline
	}

	if req.Dependencies != nil {
		deps, err := parseIDs(req.Dependencies)
		if err != nil {
			WriteError(c, errs.Validation(op, "dependencies", "malformed dependency id"))
			return
		}
		if err := h.validateDependencies(c, userID, taskID, deps); err != nil {
			WriteError(c, err)
			return
		}
		if err := h.tasks.SetDependencies(c.Request.Context(), taskID, deps); err != nil {
			WriteError(c, err)
			return
		}
		task.Dependencies = deps
	}

	if err := h.tasks.Update(c.Request.Context(), task); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskDTO(*task))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	userID, _ := CurrentUserID(c)
	taskID, err := id.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid task id")
		return
	}
	task, err := h.tasks.FindByID(c.Request.Context(), taskID)
	if err != nil {
		WriteError(c, err)
		return
	}
	if task.UserID != userID {
		WriteError(c, errs.NotFound("httpapi.Task.Delete", "task not found"))
		return
	}
	if err := h.tasks.Delete(c.Request.Context(), taskID); err != nil {
		WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// validateDependencies rejects self-references and dependencies that
// do not belong to the same user, per spec.md §6's "dependency
// validation before write."
func (h *TaskHandler) validateDependencies(c *gin.Context, userID, selfID id.ID, deps []id.ID) error {
	const op = "httpapi.Task.validateDependencies"
	for _, dep := range deps {
		if !selfID.IsNil() && dep == selfID {
			return errs.Validation(op, "dependencies", "a task cannot depend on itself")
		}
		depTask, err := h.tasks.FindByID(c.Request.Context(), dep)
		if err != nil {
			return err
		}
		if depTask.UserID != userID {
			return errs.Validation(op, "dependencies", "dependency does not belong to this user")
		}
	}
	return nil
}
