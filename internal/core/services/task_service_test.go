package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jumush/backend/internal/core/ports"
	"github.com/jumush/backend/internal/domain"
	"github.com/jumush/backend/internal/infrastructure/logger"
)

func newTaskFixture() (ports.TaskService, *mockTaskRepo) {
	tasks := newMockTaskRepo()
	svc := NewTaskService(TaskServiceConfig{
		TaskRepo:   tasks,
		RegionRepo: &mockRegionRepo{},
		Policy:     NewAccessPolicy(),
		Logger:     logger.Nop(),
	})
	return svc, tasks
}

func validInput() ports.CreateTaskInput {
	return ports.CreateTaskInput{
		Title:            "Paint the gate",
		Description:      "Metal gate, green paint provided",
		Contact:          "+996 555 000111",
		PriceForExecutor: 50,
		Budget:           800,
	}
}

func TestCreateTaskStartsOpenInCustomerRegion(t *testing.T) {
	svc, _ := newTaskFixture()

	task, err := svc.CreateTask(context.Background(), customerPrincipal(7, 2), validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if task.State != domain.TaskStateOpen {
		t.Errorf("expected open, got %s", task.State)
	}
	if task.ExecutorID != nil {
		t.Error("new task must have no executor")
	}
	if task.RegionID != 2 {
		t.Errorf("task must inherit the customer's region, got %d", task.RegionID)
	}
	if task.CustomerID != 7 {
		t.Errorf("task must belong to the creating customer, got %d", task.CustomerID)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	svc, _ := newTaskFixture()
	principal := customerPrincipal(7, 1)

	lat := 42.87
	cases := []struct {
		name   string
		mutate func(*ports.CreateTaskInput)
	}{
		{"empty title", func(i *ports.CreateTaskInput) { i.Title = "  " }},
		{"empty description", func(i *ports.CreateTaskInput) { i.Description = "" }},
		{"empty contact", func(i *ports.CreateTaskInput) { i.Contact = "" }},
		{"zero price", func(i *ports.CreateTaskInput) { i.PriceForExecutor = 0 }},
		{"negative price", func(i *ports.CreateTaskInput) { i.PriceForExecutor = -5 }},
		{"zero budget", func(i *ports.CreateTaskInput) { i.Budget = 0 }},
		{"too many media", func(i *ports.CreateTaskInput) {
			i.Media = []string{"a", "b", "c", "d", "e", "f"}
		}},
		{"latitude without longitude", func(i *ports.CreateTaskInput) { i.Latitude = &lat }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			_, err := svc.CreateTask(context.Background(), principal, input)
			if !errors.Is(err, domain.ErrTaskInvalidInput) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateTaskMediaAtLimit(t *testing.T) {
	svc, _ := newTaskFixture()
	input := validInput()
	input.Media = []string{"a", "b", "c", "d", "e"}

	if _, err := svc.CreateTask(context.Background(), customerPrincipal(7, 1), input); err != nil {
		t.Fatalf("five media references must be accepted: %v", err)
	}
}

func TestCreateTaskUnknownCategory(t *testing.T) {
	svc, _ := newTaskFixture()
	input := validInput()
	unknown := uint(99)
	input.CategoryID = &unknown

	_, err := svc.CreateTask(context.Background(), customerPrincipal(7, 1), input)
	if !errors.Is(err, domain.ErrTaskInvalidInput) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateTaskForbiddenForExecutor(t *testing.T) {
	svc, _ := newTaskFixture()

	_, err := svc.CreateTask(context.Background(), executorPrincipal(3, 1), validInput())
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestListOpenTasksFiltersByRegion(t *testing.T) {
	svc, tasks := newTaskFixture()

	inRegion := tasks.seed(&domain.Task{
		Title: "Region A task", RegionID: 1, State: domain.TaskStateOpen, CustomerID: 1,
	})
	tasks.seed(&domain.Task{
		Title: "Region B task", RegionID: 2, State: domain.TaskStateOpen, CustomerID: 1,
	})
	tasks.seed(&domain.Task{
		Title: "Paid task in region A", RegionID: 1, State: domain.TaskStatePaid, CustomerID: 1,
	})

	listed, err := svc.ListOpenTasks(context.Background(), executorPrincipal(5, 1))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(listed) != 1 {
		t.Fatalf("expected 1 task, got %d", len(listed))
	}
	if listed[0].ID != inRegion.ID {
		t.Errorf("expected task %d, got %d", inRegion.ID, listed[0].ID)
	}
}

func TestListOpenTasksIsLiveNotSnapshot(t *testing.T) {
	svc, tasks := newTaskFixture()
	principal := executorPrincipal(5, 1)

	task := tasks.seed(&domain.Task{
		Title: "Open now", RegionID: 1, State: domain.TaskStateOpen, CustomerID: 1,
	})

	first, _ := svc.ListOpenTasks(context.Background(), principal)
	if len(first) != 1 {
		t.Fatalf("expected 1 task, got %d", len(first))
	}

	if _, err := tasks.MarkPaid(context.Background(), task.ID); err != nil {
		t.Fatal(err)
	}

	second, _ := svc.ListOpenTasks(context.Background(), principal)
	if len(second) != 0 {
		t.Fatalf("re-query must observe current state, got %d tasks", len(second))
	}
}

func TestListOpenTasksForbiddenForCustomer(t *testing.T) {
	svc, _ := newTaskFixture()

	_, err := svc.ListOpenTasks(context.Background(), customerPrincipal(9, 1))
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestGetTaskNotFound(t *testing.T) {
	svc, _ := newTaskFixture()

	_, err := svc.GetTask(context.Background(), 42)
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
