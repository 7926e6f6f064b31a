package assistant

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SmartEditRequest запрос на редактирование строки
type SmartEditRequest struct {
	Row     map[string]any `json:"datos_fila" binding:"required"`
	Command string         `json:"comando" binding:"required"`
}

// Handler HTTP обработчики помощника
type Handler struct {
	service Service
	logger  *slog.Logger
}

// NewHandler создает обработчик
func NewHandler(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes регистрирует маршруты помощника
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/optimize", h.Optimize)
	router.POST("/smart-edit", h.SmartEdit)
}

// NewRouter собирает gin.Engine с маршрутами под /api
func NewRouter(service Service, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), CORS())
	NewHandler(service, logger).RegisterRoutes(r.Group("/api"))
	return r
}

// CORS разрешает запросы с любого источника без учетных данных
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "*")
		c.Header("Access-Control-Allow-Headers", "*")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Optimize POST /api/optimize
func (h *Handler) Optimize(c *gin.Context) {
	var req ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	listing, err := h.service.OptimizeListing(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("оптимизация не выполнена", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, listing)
}

// SmartEdit POST /api/smart-edit
func (h *Handler) SmartEdit(c *gin.Context) {
	var req SmartEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	changes, err := h.service.EditRow(c.Request.Context(), req.Row, req.Command)
	if err != nil {
		h.logger.Error("редактирование строки не выполнено", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, changes)
}
