package gormstore

import (
	"context"
	"errors"
	"time"

	"github.com/taskforge/scheduler/internal/errs"
	"github.com/taskforge/scheduler/internal/id"
	"github.com/taskforge/scheduler/internal/models"
	"github.com/taskforge/scheduler/internal/store"
	"gorm.io/gorm"
)

// ReportStore is a gorm implementation of store.ReportStore.
type ReportStore struct {
	db *gorm.DB
}

// NewReportStore builds a ReportStore over db.
func NewReportStore(db *gorm.DB) *ReportStore {
	return &ReportStore{db: db}
}

func (s *ReportStore) Create(ctx context.Context, report *models.Report) error {
	if report.ID.IsNil() {
		report.ID = id.New()
	}
	if err := s.db.WithContext(ctx).Create(report).Error; err != nil {
		return errs.Wrap("gormstore.Report.Create", err)
	}
	return nil
}

func (s *ReportStore) FindByID(ctx context.Context, reportID id.ID) (*models.Report, error) {
	var rpt models.Report
	err := s.db.WithContext(ctx).First(&rpt, "id = ?", reportID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("gormstore.Report.FindByID", "report not found")
	}
	if err != nil {
		return nil, errs.Wrap("gormstore.Report.FindByID", err)
	}
	return &rpt, nil
}

func (s *ReportStore) FindByUserAndDate(ctx context.Context, userID id.ID, date time.Time) (*models.Report, error) {
	y, mo, d := date.Date()
	start := time.Date(y, mo, d, 0, 0, 0, 0, date.Location())
	end := start.Add(24 * time.Hour)

	var rpt models.Report
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		First(&rpt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("gormstore.Report.FindByUserAndDate", "report not found")
	}
	if err != nil {
		return nil, errs.Wrap("gormstore.Report.FindByUserAndDate", err)
	}
	return &rpt, nil
}

func (s *ReportStore) List(ctx context.Context, filter store.ReportFilter) ([]models.Report, error) {
	query := s.db.WithContext(ctx).Model(&models.Report{}).Where("user_id = ?", filter.UserID)
	if filter.Date != nil {
		y, mo, d := filter.Date.Date()
		start := time.Date(y, mo, d, 0, 0, 0, 0, filter.Date.Location())
		end := start.Add(24 * time.Hour)
		query = query.Where("date >= ? AND date < ?", start, end)
	}

	var reports []models.Report
	if err := query.Order("date DESC").Find(&reports).Error; err != nil {
		return nil, errs.Wrap("gormstore.Report.List", err)
	}
	return reports, nil
}

func (s *ReportStore) Delete(ctx context.Context, reportID id.ID) error {
	if err := s.db.WithContext(ctx).Where("id = ?", reportID).Delete(&models.Report{}).Error; err != nil {
		return errs.Wrap("gormstore.Report.Delete", err)
	}
	return nil
}
