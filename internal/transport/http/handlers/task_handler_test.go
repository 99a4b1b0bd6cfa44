package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jumush/backend/internal/core/ports"
	"github.com/jumush/backend/internal/domain"
	"github.com/jumush/backend/internal/infrastructure/logger"
	"github.com/jumush/backend/internal/transport/http/middleware"
)

// stubTaskService and stubClaimService return canned results so the tests
// pin down request parsing and the error-to-status mapping.
type stubTaskService struct {
	task  *domain.Task
	tasks []domain.Task
	err   error
}

func (s *stubTaskService) CreateTask(ctx context.Context, principal domain.Principal, input ports.CreateTaskInput) (*domain.Task, error) {
	return s.task, s.err
}

func (s *stubTaskService) ListOpenTasks(ctx context.Context, principal domain.Principal) ([]domain.Task, error) {
	return s.tasks, s.err
}

func (s *stubTaskService) ListOwnTasks(ctx context.Context, principal domain.Principal) ([]domain.Task, error) {
	return s.tasks, s.err
}

func (s *stubTaskService) GetTask(ctx context.Context, id uint) (*domain.Task, error) {
	return s.task, s.err
}

type stubClaimService struct {
	pay   *ports.PayResult
	claim *ports.ClaimResult
	err   error
}

func (s *stubClaimService) Pay(ctx context.Context, principal domain.Principal, taskID uint) (*ports.PayResult, error) {
	return s.pay, s.err
}

func (s *stubClaimService) Claim(ctx context.Context, principal domain.Principal, taskID uint) (*ports.ClaimResult, error) {
	return s.claim, s.err
}

func newTestApp(tasks ports.TaskService, claims ports.ClaimService) *fiber.App {
	app := fiber.New()
	// Tests bypass token resolution and inject the principal directly.
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.PrincipalKey, domain.Principal{
			AccountID: 1, Role: domain.RoleExecutor, RegionID: 1, Verified: true,
		})
		return c.Next()
	})

	h := NewTaskHandler(tasks, claims, logger.Nop())
	app.Post("/tasks", h.CreateTask)
	app.Get("/tasks", h.ListOpenTasks)
	app.Get("/tasks/:id", h.GetTask)
	app.Post("/tasks/:id/pay", h.PayForTask)
	app.Post("/tasks/:id/claim", h.ClaimTask)
	return app
}

func TestPayForTaskStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"insufficient funds", &domain.InsufficientFundsError{Required: 50, Available: 30}, fiber.StatusPaymentRequired},
		{"already paid", domain.ErrTaskAlreadyPaid, fiber.StatusConflict},
		{"forbidden", domain.ErrForbidden, fiber.StatusForbidden},
		{"not found", domain.ErrTaskNotFound, fiber.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(&stubTaskService{}, &stubClaimService{err: tc.err})

			req := httptest.NewRequest("POST", "/tasks/1/pay", nil)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, resp.StatusCode)
			}
		})
	}
}

func TestPayForTaskInsufficientFundsPayload(t *testing.T) {
	app := newTestApp(&stubTaskService{}, &stubClaimService{
		err: &domain.InsufficientFundsError{Required: 50, Available: 30},
	})

	req := httptest.NewRequest("POST", "/tasks/1/pay", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body["required"] != float64(50) || body["available"] != float64(30) {
		t.Errorf("expected amounts in payload, got %v", body)
	}
}

func TestClaimTaskReturnsContact(t *testing.T) {
	executorID := uint(1)
	app := newTestApp(&stubTaskService{}, &stubClaimService{
		claim: &ports.ClaimResult{
			Task: &domain.Task{
				ID: 1, State: domain.TaskStateClaimed, ExecutorID: &executorID, Contact: "+996 700 123456",
			},
			Contact: "+996 700 123456",
		},
	})

	req := httptest.NewRequest("POST", "/tasks/1/claim", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result ports.ClaimResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if result.Contact != "+996 700 123456" {
		t.Errorf("expected contact channel, got %q", result.Contact)
	}
}

func TestCreateTaskRejectsInvalidBody(t *testing.T) {
	app := newTestApp(&stubTaskService{}, &stubClaimService{})

	req := httptest.NewRequest("POST", "/tasks", strings.NewReader(`{"title": ""}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestInvalidTaskIDs(t *testing.T) {
	// A negative id must be rejected at the parse, not wrap through uint
	// into a lookup that 404s.
	app := newTestApp(&stubTaskService{err: domain.ErrTaskNotFound}, &stubClaimService{err: domain.ErrTaskNotFound})

	for _, path := range []string{"/tasks/abc", "/tasks/-1", "/tasks/-1/pay", "/tasks/-1/claim"} {
		method := "GET"
		if strings.HasSuffix(path, "/pay") || strings.HasSuffix(path, "/claim") {
			method = "POST"
		}
		resp, err := app.Test(httptest.NewRequest(method, path, nil))
		if err != nil {
			t.Fatalf("%s %s failed: %v", method, path, err)
		}
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Errorf("%s %s: expected 400, got %d", method, path, resp.StatusCode)
		}
	}
}
