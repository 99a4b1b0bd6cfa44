package db

import (
	"context"
	"errors"

	"github.com/jumush/backend/internal/core/ports"
	"github.com/jumush/backend/internal/domain"
	"github.com/jumush/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type taskRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepository(db *gorm.DB, log *logger.Logger) ports.TaskRepository {
	return &taskRepository{db: db, log: log}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		r.log.Errorw("task_repo_create_failed", "customer_id", task.CustomerID, "error", err)
		return err
	}
	r.log.Infow("task_repo_create_ok", "id", task.ID, "region_id", task.RegionID)
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id uint) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		r.log.Errorw("task_repo_get_failed", "id", id, "error", err)
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListOpenByRegion(ctx context.Context, regionID uint) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Where("state = ? AND region_id = ?", domain.TaskStateOpen, regionID).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		r.log.Errorw("task_repo_list_open_failed", "region_id", regionID, "error", err)
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) ListByCustomer(ctx context.Context, customerID uint) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		r.log.Errorw("task_repo_list_by_customer_failed", "customer_id", customerID, "error", err)
		return nil, err
	}
	return tasks, nil
}

// MarkPaid flips open->paid in a single conditional statement. A false
// return with no error means another payer already transitioned the row.
func (r *taskRepository) MarkPaid(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("id = ? AND state = ?", id, domain.TaskStateOpen).
		Update("state", domain.TaskStatePaid)
	if res.Error != nil {
		r.log.Errorw("task_repo_mark_paid_failed", "id", id, "error", res.Error)
		return false, res.Error
	}
	r.log.Infow("task_repo_mark_paid", "id", id, "transitioned", res.RowsAffected > 0)
	return res.RowsAffected > 0, nil
}

// ClaimExclusive serializes racing claimers on the task's row lock. The
// check-and-set runs entirely inside one transaction; the lock is released
// on commit and on rollback alike, so every exit path is covered.
func (r *taskRepository) ClaimExclusive(ctx context.Context, id uint, executorID uint) (*domain.Task, error) {
	var claimed domain.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task domain.Task
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&task, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTaskNotFound
			}
			return err
		}

		if task.State == domain.TaskStateOpen {
			return domain.ErrTaskNotPaid
		}
		if task.ExecutorID != nil || task.State == domain.TaskStateClaimed {
			return domain.ErrTaskAlreadyClaimed
		}

		task.ExecutorID = &executorID
		task.State = domain.TaskStateClaimed
		if err := tx.Model(&domain.Task{}).
			Where("id = ?", task.ID).
			Updates(map[string]interface{}{
				"executor_id": executorID,
				"state":       domain.TaskStateClaimed,
			}).Error; err != nil {
			return err
		}

		claimed = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.log.Infow("task_repo_claim_ok", "id", id, "executor_id", executorID)
	return &claimed, nil
}
