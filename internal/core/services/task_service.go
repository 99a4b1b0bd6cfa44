package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jumush/backend/internal/core/ports"
	"github.com/jumush/backend/internal/domain"
	"github.com/jumush/backend/internal/infrastructure/logger"
)

type taskService struct {
	tasks        ports.TaskRepository
	regions      ports.RegionRepository
	policy       ports.AccessPolicy
	logger       *logger.Logger
	maxTaskMedia int
}

type TaskServiceConfig struct {
	TaskRepo     ports.TaskRepository
	RegionRepo   ports.RegionRepository
	Policy       ports.AccessPolicy
	Logger       *logger.Logger
	MaxTaskMedia int
}

func NewTaskService(cfg TaskServiceConfig) ports.TaskService {
	maxMedia := cfg.MaxTaskMedia
	if maxMedia == 0 {
		maxMedia = 5
	}
	return &taskService{
		tasks:        cfg.TaskRepo,
		regions:      cfg.RegionRepo,
		policy:       cfg.Policy,
		logger:       cfg.Logger,
		maxTaskMedia: maxMedia,
	}
}

func (s *taskService) CreateTask(ctx context.Context, principal domain.Principal, input ports.CreateTaskInput) (*domain.Task, error) {
	if !s.policy.CanCreateTask(principal) {
		return nil, domain.ErrForbidden
	}

	if err := s.validate(input); err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		if _, err := s.regions.GetCategory(ctx, *input.CategoryID); err != nil {
			return nil, fmt.Errorf("%w: unknown category", domain.ErrTaskInvalidInput)
		}
	}

	task := &domain.Task{
		Title:            strings.TrimSpace(input.Title),
		Description:      strings.TrimSpace(input.Description),
		PriceForExecutor: input.PriceForExecutor,
		Budget:           input.Budget,
		Deadline:         input.Deadline,
		Contact:          strings.TrimSpace(input.Contact),
		Latitude:         input.Latitude,
		Longitude:        input.Longitude,
		Media:            input.Media,
		CategoryID:       input.CategoryID,
		CustomerID:       principal.AccountID,
		// Tasks are scoped to the creating customer's region.
		RegionID: principal.RegionID,
		State:    domain.TaskStateOpen,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Infow("task_created", "id", task.ID, "customer_id", principal.AccountID, "region_id", task.RegionID)
	return task, nil
}

func (s *taskService) validate(input ports.CreateTaskInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrTaskInvalidInput)
	}
	if strings.TrimSpace(input.Description) == "" {
		return fmt.Errorf("%w: description is required", domain.ErrTaskInvalidInput)
	}
	if strings.TrimSpace(input.Contact) == "" {
		return fmt.Errorf("%w: contact is required", domain.ErrTaskInvalidInput)
	}
	if input.PriceForExecutor <= 0 {
		return fmt.Errorf("%w: price_for_executor must be positive", domain.ErrTaskInvalidInput)
	}
	if input.Budget <= 0 {
		return fmt.Errorf("%w: budget must be positive", domain.ErrTaskInvalidInput)
	}
	if len(input.Media) > s.maxTaskMedia {
		return fmt.Errorf("%w: at most %d media references", domain.ErrTaskInvalidInput, s.maxTaskMedia)
	}
	if (input.Latitude == nil) != (input.Longitude == nil) {
		return fmt.Errorf("%w: latitude and longitude must be set together", domain.ErrTaskInvalidInput)
	}
	return nil
}

// ListOpenTasks shows executors the open tasks in their own region. The
// listing is re-queried on every call; it observes current state rather
// than a snapshot.
func (s *taskService) ListOpenTasks(ctx context.Context, principal domain.Principal) ([]domain.Task, error) {
	if !s.policy.CanBrowseTasks(principal) {
		return nil, domain.ErrForbidden
	}
	return s.tasks.ListOpenByRegion(ctx, principal.RegionID)
}

func (s *taskService) ListOwnTasks(ctx context.Context, principal domain.Principal) ([]domain.Task, error) {
	if principal.Role != domain.RoleCustomer {
		return nil, domain.ErrForbidden
	}
	return s.tasks.ListByCustomer(ctx, principal.AccountID)
}

func (s *taskService) GetTask(ctx context.Context, id uint) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}
