package gormstore

import (
	"context"
	"errors"

	"github.com/taskforge/scheduler/internal/errs"
	"github.com/taskforge/scheduler/internal/id"
	"github.com/taskforge/scheduler/internal/models"
	"github.com/taskforge/scheduler/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TaskStore is a gorm implementation of store.TaskStore, grounded on
// the teacher's GormTaskRepository but generalized to this domain's
// filter shape and to a join-table dependency model.
type TaskStore struct {
	db *gorm.DB
}

// NewTaskStore builds a TaskStore over db.
func NewTaskStore(db *gorm.DB) *TaskStore {
	return &TaskStore{db: db}
}

func (s *TaskStore) Create(ctx context.Context, task *models.Task) error {
	if task.ID.IsNil() {
		task.ID = id.New()
	}
	if err := s.db.WithContext(ctx).Create(task).Error; err != nil {
		return errs.Wrap("gormstore.Task.Create", err)
	}
	if len(task.Dependencies) > 0 {
		if err := s.SetDependencies(ctx, task.ID, task.Dependencies); err != nil {
			return err
		}
	}
	return nil
}

func (s *TaskStore) FindByID(ctx context.Context, taskID id.ID) (*models.Task, error) {
	var task models.Task
	err := s.db.WithContext(ctx).First(&task, "id = ?", taskID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("gormstore.Task.FindByID", "task not found")
	}
	if err != nil {
		return nil, errs.Wrap("gormstore.Task.FindByID", err)
	}
	return &task, nil
}

func (s *TaskStore) List(ctx context.Context, filter store.TaskFilter) ([]models.Task, error) {
	query := s.db.WithContext(ctx).Model(&models.Task{}).Where("user_id = ?", filter.UserID)

	if !filter.IncludeBreaks {
		query = query.Where("status <> ?", models.StatusBreak)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.DeadlineFrom != nil {
		query = query.Where("deadline >= ?", *filter.DeadlineFrom)
	}
	if filter.DeadlineTo != nil {
		query = query.Where("deadline < ?", *filter.DeadlineTo)
	}
	if filter.ScheduledFrom != nil {
		query = query.Where("scheduled_end_time > ?", *filter.ScheduledFrom)
	}
	if filter.ScheduledTo != nil {
		query = query.Where("scheduled_start_time < ?", *filter.ScheduledTo)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at < ?", *filter.CreatedTo)
	}

	var tasks []models.Task
	if err := query.Order("created_at ASC").Find(&tasks).Error; err != nil {
		return nil, errs.Wrap("gormstore.Task.List", err)
	}
	return tasks, nil
}

func (s *TaskStore) Update(ctx context.Context, task *models.Task) error {
	if err := s.db.WithContext(ctx).Save(task).Error; err != nil {
		return errs.Wrap("gormstore.Task.Update", err)
	}
	return nil
}

func (s *TaskStore) Delete(ctx context.Context, taskID id.ID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ? OR depends_on_id = ?", taskID, taskID).
			Delete(&models.TaskDependency{}).Error; err != nil {
			return errs.Wrap("gormstore.Task.Delete", err)
		}
		if err := tx.Where("id = ?", taskID).Delete(&models.Task{}).Error; err != nil {
			return errs.Wrap("gormstore.Task.Delete", err)
		}
		return nil
	})
}

func (s *TaskStore) Dependencies(ctx context.Context, taskID id.ID) ([]id.ID, error) {
	var rows []models.TaskDependency
	if err := s.db.WithContext(ctx).Where("task_id = ?", taskID).Find(&rows).Error; err != nil {
		return nil, errs.Wrap("gormstore.Task.Dependencies", err)
	}
	out := make([]id.ID, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.DependsOnID)
	}
	return out, nil
}

func (s *TaskStore) SetDependencies(ctx context.Context, taskID id.ID, dependsOn []id.ID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskDependency{}).Error; err != nil {
			return errs.Wrap("gormstore.Task.SetDependencies", err)
		}
		if len(dependsOn) == 0 {
			return nil
		}
		rows := make([]models.TaskDependency, 0, len(dependsOn))
		for _, dep := range dependsOn {
			rows = append(rows, models.TaskDependency{TaskID: taskID, DependsOnID: dep})
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
			return errs.Wrap("gormstore.Task.SetDependencies", err)
		}
		return nil
	})
}
