package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/scheduler/internal/id"
	"github.com/taskforge/scheduler/internal/models"
	"github.com/taskforge/scheduler/internal/store/storetest"
)

func reportRouter(t *testing.T, tasks *storetest.TaskStore, reports *storetest.ReportStore, userID id.ID) (*gin.Engine, []*http.Cookie) {
	t.Helper()
	rh := NewReportHandler(tasks, reports, nil, time.UTC)

	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("secret"))))
	protected := r.Group("/api/reports")
	protected.Use(RequireAuth())
	{
		protected.POST("/generate/:date", rh.Generate)
		protected.POST("/simple/:date", rh.GenerateSimple)
		protected.GET("", rh.List)
		protected.GET("/:id", rh.Get)
		protected.GET("/:id/pdf", rh.GetPDF)
	}

	r.POST("/login-as", func(c *gin.Context) {
		s := sessions.Default(c)
		s.Set(sessionUserIDKey, userID.String())
		require.NoError(t, s.Save())
		c.Status(http.StatusOK)
	})
	rec := doJSON(r, http.MethodPost, "/login-as", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	return r, rec.Result().Cookies()
}

func TestReportHandler_Generate_ReturnsReport(t *testing.T) {
	tasks := storetest.NewTaskStore()
	reports := storetest.NewReportStore()
	userID := id.New()

	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)
	task := models.Task{
		ID: id.New(), UserID: userID, Name: "a", DurationMinutes: 30, Status: models.StatusCompleted,
		ScheduledStartTime: &start, ScheduledEndTime: &end, ActualStartTime: &start, ActualEndTime: &end,
	}
	require.NoError(t, tasks.Create(context.Background(), &task))

	r, cookies := reportRouter(t, tasks, reports, userID)
	rec := doJSON(r, http.MethodPost, "/api/reports/generate/2026-01-05", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	var got ReportDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotEmpty(t, got.AISummary)
	assert.Equal(t, "2026-01-05", got.Date)
}

func TestReportHandler_Generate_NoTasksReturns404(t *testing.T) {
	tasks := storetest.NewTaskStore()
	reports := storetest.NewReportStore()
	userID := id.New()

	r, cookies := reportRouter(t, tasks, reports, userID)
	rec := doJSON(r, http.MethodPost, "/api/reports/generate/2026-01-05", nil, cookies)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportHandler_GetPDF_NotImplemented(t *testing.T) {
	tasks := storetest.NewTaskStore()
	reports := storetest.NewReportStore()
	userID := id.New()

	r, cookies := reportRouter(t, tasks, reports, userID)
	rec := doJSON(r, http.MethodGet, "/api/reports/"+id.New().String()+"/pdf", nil, cookies)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestReportHandler_Get_ReturnsOwnReport(t *testing.T) {
	tasks := storetest.NewTaskStore()
	reports := storetest.NewReportStore()
	userID := id.New()

	rpt := models.Report{ID: id.New(), UserID: userID, Date: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, reports.Create(context.Background(), &rpt))

	r, cookies := reportRouter(t, tasks, reports, userID)
	rec := doJSON(r, http.MethodGet, "/api/reports/"+rpt.ID.String(), nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	var got ReportDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, rpt.ID.String(), got.ID)
}

func TestReportHandler_Get_OtherUsersReportIsNotFound(t *testing.T) {
	tasks := storetest.NewTaskStore()
	reports := storetest.NewReportStore()
	owner := id.New()

	rpt := models.Report{ID: id.New(), UserID: owner, Date: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, reports.Create(context.Background(), &rpt))

	r, cookies := reportRouter(t, tasks, reports, id.New())
	rec := doJSON(r, http.MethodGet, "/api/reports/"+rpt.ID.String(), nil, cookies)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportHandler_List_ReturnsUsersReports(t *testing.T) {
	tasks := storetest.NewTaskStore()
	reports := storetest.NewReportStore()
	userID := id.New()

	rpt := models.Report{ID: id.New(), UserID: userID, Date: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, reports.Create(context.Background(), &rpt))

	r, cookies := reportRouter(t, tasks, reports, userID)
	rec := doJSON(r, http.MethodGet, "/api/reports", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []ReportDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
}
