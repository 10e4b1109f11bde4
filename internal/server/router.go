package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "github.com/probata/estateledger-backend/internal/handlers"
  "github.com/probata/estateledger-backend/internal/middleware"
)

type RouterConfig struct {
  RequestLogger    *middleware.RequestLogger
  AssetHandler     *handlers.AssetHandler
  HeirHandler      *handlers.HeirHandler
  LiabilityHandler *handlers.LiabilityHandler
  SummaryHandler   *handlers.SummaryHandler
  TaskHandler      *handlers.TaskHandler
  ProjectHandler   *handlers.ProjectHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))
  router.Use(cfg.RequestLogger.Log())

  router.GET("/healthcheck", handlers.HealthCheck)

  api := router.Group("/api")
  {
    // Assets + distribution shares
    api.POST("/assets", cfg.AssetHandler.CreateAsset)
    api.GET("/assets", cfg.AssetHandler.ListAssets)
    api.GET("/assets/:id", cfg.AssetHandler.GetAsset)
    api.DELETE("/assets/:id", cfg.AssetHandler.DeleteAsset)
    api.PATCH("/assets/:id/value", cfg.AssetHandler.UpdateValue)
    api.PATCH("/assets/:id/status", cfg.AssetHandler.ChangeStatus)
    api.PUT("/assets/:id/distributions", cfg.AssetHandler.ReplaceShares)
    api.GET("/assets/:id/distributions", cfg.AssetHandler.GetDistributions)
    // Heirs
    api.POST("/heirs", cfg.HeirHandler.CreateHeir)
    api.GET("/heirs", cfg.HeirHandler.ListHeirs)
    api.PUT("/heirs/:id", cfg.HeirHandler.UpdateHeir)
    api.DELETE("/heirs/:id", cfg.HeirHandler.DeleteHeir)
    // Liabilities
    api.POST("/liabilities", cfg.LiabilityHandler.CreateLiability)
    api.GET("/liabilities", cfg.LiabilityHandler.ListLiabilities)
    api.DELETE("/liabilities/:id", cfg.LiabilityHandler.DeleteLiability)
    // Summary
    api.GET("/summary/categories", cfg.SummaryHandler.Categories)
    api.GET("/summary/estate", cfg.SummaryHandler.Estate)
    api.GET("/summary/heirs", cfg.SummaryHandler.Heirs)
    // Tasks
    api.POST("/tasks", cfg.TaskHandler.CreateTask)
    api.GET("/tasks", cfg.TaskHandler.ListTasks)
    api.PUT("/tasks/:id", cfg.TaskHandler.UpdateTask)
    api.DELETE("/tasks/:id", cfg.TaskHandler.DeleteTask)
    api.POST("/tasks/:id/attachments", cfg.TaskHandler.AddAttachment)
    // Projects
    api.POST("/projects", cfg.ProjectHandler.CreateProject)
    api.GET("/projects", cfg.ProjectHandler.ListProjects)
  }

  return router
}
