package main

import (
  "fmt"
  "os"
  "github.com/probata/estateledger-backend/internal/logger"
  "github.com/probata/estateledger-backend/internal/utils"
  "github.com/probata/estateledger-backend/internal/db"
  "github.com/probata/estateledger-backend/internal/cache"
  "github.com/probata/estateledger-backend/internal/repos"
  "github.com/probata/estateledger-backend/internal/services"
  "github.com/probata/estateledger-backend/internal/handlers"
  "github.com/probata/estateledger-backend/internal/middleware"
  "github.com/probata/estateledger-backend/internal/server"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  port := utils.GetEnv("PORT", "8080", log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  heirRepo := repos.NewHeirRepo(thePG, log)
  assetRepo := repos.NewAssetRepo(thePG, log)
  shareRepo := repos.NewDistributionShareRepo(thePG, log)
  liabilityRepo := repos.NewLiabilityRepo(thePG, log)
  projectRepo := repos.NewProjectRepo(thePG, log)
  taskRepo := repos.NewTaskRepo(thePG, log)
  attachmentRepo := repos.NewAttachmentRepo(thePG, log)

  // Rollup cache (optional, redis-backed)
  var rollupCache *cache.RollupCache
  if os.Getenv("REDIS_ADDR") != "" {
    rollupCache, err = cache.NewRollupCache(log)
    if err != nil {
      log.Warn("Could not init RollupCache, continuing without it", "error", err)
      rollupCache = nil
    }
  }

  // Services
  log.Info("Setting up Services from main...")
  assetService := services.NewAssetService(thePG, log, assetRepo, shareRepo, heirRepo, rollupCache)
  heirService := services.NewHeirService(thePG, log, heirRepo, shareRepo)
  liabilityService := services.NewLiabilityService(thePG, log, liabilityRepo)
  summaryService := services.NewSummaryService(thePG, log, assetRepo, shareRepo, liabilityRepo, rollupCache)
  taskService := services.NewTaskService(thePG, log, taskRepo, projectRepo, attachmentRepo)
  projectService := services.NewProjectService(thePG, log, projectRepo)

  // Handlers
  log.Info("Setting up Handlers from main...")
  assetHandler := handlers.NewAssetHandler(log, assetService)
  heirHandler := handlers.NewHeirHandler(log, heirService)
  liabilityHandler := handlers.NewLiabilityHandler(log, liabilityService)
  summaryHandler := handlers.NewSummaryHandler(log, summaryService)
  taskHandler := handlers.NewTaskHandler(log, taskService)
  projectHandler := handlers.NewProjectHandler(log, projectService)

  // Middleware
  requestLogger := middleware.NewRequestLogger(log)

  // Router
  log.Info("Setting up Router from main...")
  router := server.NewRouter(server.RouterConfig{
    RequestLogger:    requestLogger,
    AssetHandler:     assetHandler,
    HeirHandler:      heirHandler,
    LiabilityHandler: liabilityHandler,
    SummaryHandler:   summaryHandler,
    TaskHandler:      taskHandler,
    ProjectHandler:   projectHandler,
  })

  log.Info("Starting server", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Fatal("Server exited", "error", err)
  }
}
