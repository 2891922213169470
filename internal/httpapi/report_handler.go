package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskforge/scheduler/internal/errs"
	"github.com/taskforge/scheduler/internal/id"
	"github.com/taskforge/scheduler/internal/report"
	"github.com/taskforge/scheduler/internal/store"
	"github.com/taskforge/scheduler/internal/summary"
)

// ReportHandler implements the /reports/* routes from spec.md §6.
type ReportHandler struct {
	full     *report.Generator
	simple   *report.Generator
	reports  store.ReportStore
	location *time.Location
}

// NewReportHandler builds a ReportHandler. full uses the configured
// Summary Provider (with template fallback); simple always uses the
// deterministic template, per spec.md §6's `/reports/simple/{date}`.
func NewReportHandler(tasks store.TaskStore, reports store.ReportStore, primary summary.Provider, loc *time.Location) *ReportHandler {
	return &ReportHandler{
		full:     report.New(tasks, reports, summary.NewFallback(primary, nil), nil),
		simple:   report.New(tasks, reports, summary.NewFallback(nil, nil), nil),
		reports:  reports,
		location: loc,
	}
}

func (h *ReportHandler) Generate(c *gin.Context) {
	h.generate(c, h.full)
}

func (h *ReportHandler) GenerateSimple(c *gin.Context) {
	h.generate(c, h.simple)
}

func (h *ReportHandler) generate(c *gin.Context, gen *report.Generator) {
	const op = "httpapi.Report.Generate"
	userID, _ := CurrentUserID(c)

	date, err := time.ParseInLocation(dateLayout, c.Param("date"), h.location)
	if err != nil {
		WriteError(c, errs.Validation(op, "date", "expected YYYY-MM-DD"))
		return
	}

	rpt, err := gen.GenerateDailyReport(c.Request.Context(), userID, date)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReportDTO(*rpt))
}

func (h *ReportHandler) List(c *gin.Context) {
	userID, _ := CurrentUserID(c)
	reports, err := h.reports.List(c.Request.Context(), store.ReportFilter{UserID: userID})
	if err != nil {
		WriteError(c, err)
		return
	}
	out := make([]ReportDTO, 0, len(reports))
	for _, r := range reports {
		out = append(out, toReportDTO(r))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) Get(c *gin.Context) {
	userID, _ := CurrentUserID(c)
	reportID, err := id.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid report id")
		return
	}
	rpt, err := h.reports.FindByID(c.Request.Context(), reportID)
	if err != nil {
		WriteError(c, err)
		return
	}
	if rpt.UserID != userID {
		WriteError(c, errs.NotFound("httpapi.Report.Get", "report not found"))
		return
	}
	c.JSON(http.StatusOK, toReportDTO(*rpt))
}

// GetPDF is unimplemented: PDF rendering is an external collaborator
// per spec.md §1, not part of this core.
func (h *ReportHandler) GetPDF(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, APIError{
		Kind:    "NOT_IMPLEMENTED",
		Message: "PDF rendering is delegated to an external renderer and is not implemented by this service",
	})
}
