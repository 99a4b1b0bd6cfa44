package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jumush/backend/internal/config"
	"github.com/jumush/backend/internal/core/services"
	"github.com/jumush/backend/internal/infrastructure/cache"
	"github.com/jumush/backend/internal/infrastructure/db"
	"github.com/jumush/backend/internal/infrastructure/logger"
	"github.com/jumush/backend/internal/transport/http/handlers"
	httpmw "github.com/jumush/backend/internal/transport/http/middleware"
	"gorm.io/gorm"
)

type RouterConfig struct {
	DB     *gorm.DB
	Logger *logger.Logger
	Config *config.Config
}

func SetupRoutes(app *fiber.App, cfg RouterConfig) {
	// Repositories
	taskRepo := db.NewTaskRepository(cfg.DB, cfg.Logger)
	accountRepo := db.NewAccountRepository(cfg.DB, cfg.Logger)
	ledgerRepo := db.NewLedgerEntryRepository(cfg.DB, cfg.Logger)
	regionRepo := db.NewRegionRepository(cfg.DB, cfg.Logger)

	// Services
	policy := services.NewAccessPolicy()
	regionService := services.NewRegionService(regionRepo)

	ledgerService := services.NewLedgerService(services.LedgerServiceConfig{
		AccountRepo: accountRepo,
		EntryRepo:   ledgerRepo,
		Logger:      cfg.Logger,
	})

	taskService := services.NewTaskService(services.TaskServiceConfig{
		TaskRepo:     taskRepo,
		RegionRepo:   regionRepo,
		Policy:       policy,
		Logger:       cfg.Logger,
		MaxTaskMedia: cfg.Config.Market.MaxTaskMedia,
	})

	claimService := services.NewClaimService(services.ClaimServiceConfig{
		TaskRepo: taskRepo,
		Ledger:   ledgerService,
		Policy:   policy,
		Logger:   cfg.Logger,
	})

	codeStore := cache.NewCodeStore(cfg.Config.Market.ResetCodeTTL)

	accountService := services.NewAccountService(services.AccountServiceConfig{
		AccountRepo: accountRepo,
		Regions:     regionService,
		Ledger:      ledgerService,
		Codes:       codeStore,
		Logger:      cfg.Logger,
	})

	// Handlers
	taskHandler := handlers.NewTaskHandler(taskService, claimService, cfg.Logger)
	accountHandler := handlers.NewAccountHandler(accountService, ledgerService, cfg.Logger)
	regionHandler := handlers.NewRegionHandler(regionService)

	authRequired := httpmw.RequireAuth(accountRepo)
	adminOnly := httpmw.AdminAuth(cfg.Config)

	api := app.Group("/api/v1")

	// Public
	auth := api.Group("/auth")
	auth.Post("/register", accountHandler.Register)
	auth.Post("/login", accountHandler.Login)
	auth.Post("/password/reset", accountHandler.RequestPasswordReset)
	auth.Post("/password/reset/confirm", accountHandler.ConfirmPasswordReset)

	api.Get("/regions", regionHandler.ListRegions)
	api.Get("/regions/:id/subregions", regionHandler.ListSubregions)
	api.Get("/categories", regionHandler.ListCategories)

	// Authenticated
	auth.Post("/password/change", authRequired, accountHandler.ChangePassword)
	api.Get("/profile", authRequired, accountHandler.Profile)
	api.Put("/profile", authRequired, accountHandler.UpdateProfile)
	api.Delete("/profile", authRequired, accountHandler.DeleteAccount)
	api.Get("/ledger", authRequired, accountHandler.LedgerHistory)

	tasks := api.Group("/tasks", authRequired)
	tasks.Post("/", taskHandler.CreateTask)
	tasks.Get("/", taskHandler.ListOpenTasks)
	tasks.Get("/mine", taskHandler.ListOwnTasks)
	tasks.Get("/:id", taskHandler.GetTask)
	tasks.Post("/:id/pay", taskHandler.PayForTask)
	tasks.Post("/:id/claim", taskHandler.ClaimTask)

	// Administrative
	admin := api.Group("/admin", adminOnly)
	admin.Post("/accounts/:id/topup", accountHandler.TopUp)
	admin.Post("/accounts/:id/verify", accountHandler.Verify)
}
