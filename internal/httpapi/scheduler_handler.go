package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskforge/scheduler/internal/errs"
	"github.com/taskforge/scheduler/internal/id"
	"github.com/taskforge/scheduler/internal/models"
	"github.com/taskforge/scheduler/internal/ordering"
	"github.com/taskforge/scheduler/internal/scheduler"
	"github.com/taskforge/scheduler/internal/store"
	"github.com/taskforge/scheduler/internal/tracker"
)

const clockTimeLayout = "15:04"

// SchedulerHandler implements the /scheduler/* routes from spec.md §6.
type SchedulerHandler struct {
	svc                     *scheduler.Service
	tracker                 *tracker.Tracker
	tasks                   store.TaskStore
	location                *time.Location
	defaultWindowEndMinutes int
}

// NewSchedulerHandler builds a SchedulerHandler. loc is the deployment's
// configured scheduling zone, and defaultWindowEndMinutes is the
// configured daily working window's end (minutes since midnight, per
// config.Config.DefaultWindowEndMinutes) used to flag break-reflow
// overflow past the working day.
func NewSchedulerHandler(svc *scheduler.Service, trk *tracker.Tracker, tasks store.TaskStore, loc *time.Location, defaultWindowEndMinutes int) *SchedulerHandler {
	return &SchedulerHandler{
		svc:                     svc,
		tracker:                 trk,
		tasks:                   tasks,
		location:                loc,
		defaultWindowEndMinutes: defaultWindowEndMinutes,
	}
}

func (h *SchedulerHandler) Generate(c *gin.Context) {
	const op = "httpapi.Scheduler.Generate"
	userID, _ := CurrentUserID(c)

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	date, err := time.ParseInLocation(dateLayout, req.Date, h.location)
	if err != nil {
		WriteError(c, errs.Validation(op, "date", "expected YYYY-MM-DD"))
		return
	}
	start, err := parseClockOnDate(date, req.StartTime, h.location)
	if err != nil {
		WriteError(c, errs.Validation(op, "start_time", "expected HH:MM"))
		return
	}
	end, err := parseClockOnDate(date, req.EndTime, h.location)
	if err != nil {
		WriteError(c, errs.Validation(op, "end_time", "expected HH:MM"))
		return
	}

	tasks, err := h.svc.Generate(c.Request.Context(), scheduler.GenerateInput{
		UserID:      userID,
		Date:        date,
		WindowStart: start,
		WindowEnd:   end,
		Policy:      ordering.Policy(req.Algorithm),
	})
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskDTOs(tasks))
}

func (h *SchedulerHandler) Reset(c *gin.Context) {
	const op = "httpapi.Scheduler.Reset"
	userID, _ := CurrentUserID(c)

	date, err := time.ParseInLocation(dateLayout, c.Param("date"), h.location)
	if err != nil {
		WriteError(c, errs.Validation(op, "date", "expected YYYY-MM-DD"))
		return
	}

	count, err := h.svc.Reset(c.Request.Context(), userID, date)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": count})
}

func (h *SchedulerHandler) Daily(c *gin.Context) {
	const op = "httpapi.Scheduler.Daily"
	userID, _ := CurrentUserID(c)

	date, err := time.ParseInLocation(dateLayout, c.Param("date"), h.location)
	if err != nil {
		WriteError(c, errs.Validation(op, "date", "expected YYYY-MM-DD"))
		return
	}

	tasks, err := h.svc.Daily(c.Request.Context(), userID, date)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskDTOs(tasks))
}

func (h *SchedulerHandler) InsertBreak(c *gin.Context) {
	const op = "httpapi.Scheduler.InsertBreak"
	userID, _ := CurrentUserID(c)

	var req InsertBreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	afterID, err := id.Parse(req.AfterTaskID)
	if err != nil {
		WriteError(c, errs.Validation(op, "after_task_id", "malformed id"))
		return
	}

	windowEnd := h.windowEndFor(c, afterID)

	result, err := h.svc.InsertBreak(c.Request.Context(), scheduler.InsertBreakInput{
		UserID:          userID,
		AfterTaskID:     afterID,
		DurationMinutes: req.DurationMinutes,
		WindowEnd:       windowEnd,
	})
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"break":    toTaskDTO(result.Break),
		"reflowed": toTaskDTOs(result.Reflowed),
		"warning":  result.Warning,
	})
}

// ExecutionPatch implements the execution-tracker patch endpoint,
// spec.md §4.5.
func (h *SchedulerHandler) ExecutionPatch(c *gin.Context) {
	userID, _ := CurrentUserID(c)
	taskID, err := id.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid task id")
		return
	}

	existing, err := h.tasks.FindByID(c.Request.Context(), taskID)
	if err != nil {
		WriteError(c, err)
		return
	}
	if existing.UserID != userID {
		WriteError(c, errs.NotFound("httpapi.Scheduler.ExecutionPatch", "task not found"))
		return
	}

	var req ExecutionPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	patch := tracker.Patch{ActualStartTime: req.ActualStartTime, ActualEndTime: req.ActualEndTime}
	if req.Status != nil {
		status := models.Status(*req.Status)
		patch.Status = &status
	}

	task, err := h.tracker.Apply(c.Request.Context(), taskID, patch)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskDTO(*task))
}

// windowEndFor resolves the working-window end for the day of anchorID's
// scheduled task, in the deployment's configured window (spec.md §4.4
// step 4 / DESIGN.md's insert_break window note). It returns nil (no
// warning check) if the anchor cannot be resolved here; InsertBreak
// itself re-validates the anchor and reports any lookup failure.
func (h *SchedulerHandler) windowEndFor(c *gin.Context, anchorID id.ID) *time.Time {
	anchor, err := h.tasks.FindByID(c.Request.Context(), anchorID)
	if err != nil || anchor.ScheduledEndTime == nil {
		return nil
	}
	y, m, d := anchor.ScheduledEndTime.In(h.location).Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, h.location).Add(time.Duration(h.defaultWindowEndMinutes) * time.Minute)
	return &end
}

func parseClockOnDate(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(clockTimeLayout, clock, loc)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc), nil
}
