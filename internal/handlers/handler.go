package handlers

import (
	"ecoheat_dashboard/internal/logger"
	"ecoheat_dashboard/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Versioned API endpoints
	h.registerAPIRoutes(router)

	// Editor state stream (HTTP upgrade) — same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.requestLogMiddleware)
	{
		h.registerCatalogRoutes(api)
		h.registerScheduleRoutes(api)
		h.registerEditorRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerCatalogRoutes(api *gin.RouterGroup) {
	api.GET("/days", h.listDays)
	api.GET("/hours", h.listHours)
	api.POST("/hours", h.createHour)
	api.GET("/rooms", h.listRooms)
}

func (h *Handler) registerScheduleRoutes(api *gin.RouterGroup) {
	schedules := api.Group("/schedules")
	{
		schedules.GET("", h.listSchedules)
		schedules.POST("", h.createSchedule)
		schedules.PUT("/:id", h.updateSchedule)
		schedules.DELETE("/:id", h.deleteSchedule)
		// Query: ?discard=true to abandon pending edits when switching
		schedules.POST("/:id/select", h.selectSchedule)
		schedules.POST("/:id/assign", h.assignSchedule)
	}
}

func (h *Handler) registerEditorRoutes(api *gin.RouterGroup) {
	editor := api.Group("/editor")
	{
		editor.GET("", h.editorSnapshot)
		editor.POST("/begin", h.beginEdit)
		editor.POST("/preset", h.setPreset)
		editor.POST("/days/:dayID", h.toggleDay)
		editor.POST("/cells/:hourID", h.toggleCell)
		editor.POST("/defaults", h.setDefaults)
		editor.POST("/save", h.saveEdits)
		editor.POST("/cancel", h.cancelEdits)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}
