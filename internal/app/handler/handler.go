package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/config"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/dto"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/redis"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ImageStorage — хранилище изображений типов проектов.
// Реализуется storage.MinIOClient; в тестах подменяется фейком.
type ImageStorage interface {
	UploadImage(fileData []byte, originalFilename string) (string, error)
	DeleteImage(filename string) error
	GetImageURL(filename string) (string, error)
	ImageExists(filename string) (bool, error)
}

// APIHandler содержит обработчики для REST API
type APIHandler struct {
	Repository  *repository.Repository
	RedisClient *redis.Client
	Images      ImageStorage
	Config      *config.Config
}

func NewAPIHandler(r *repository.Repository, redisClient *redis.Client, images ImageStorage, cfg *config.Config) *APIHandler {
	return &APIHandler{
		Repository:  r,
		RedisClient: redisClient,
		Images:      images,
		Config:      cfg,
	}
}

// ============ Вспомогательные функции ============

func (h *APIHandler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func (h *APIHandler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

// parseIDParam разбирает path-параметр :id
func parseIDParam(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// reorderHandler - общий обработчик массовой пересортировки для всех
// конфигурационных таблиц
func (h *APIHandler) reorderHandler(c *gin.Context, reorder func(context.Context, []repository.OrderUpdate) error) {
	var req dto.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат данных: "+err.Error())
		return
	}

	items := make([]repository.OrderUpdate, len(req.Items))
	for i, item := range req.Items {
		items[i] = repository.OrderUpdate{
			ID:           item.ID,
			DisplayOrder: item.DisplayOrder,
		}
	}

	err := reorder(c.Request.Context(), items)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Одна из записей не найдена, порядок не изменен")
			return
		}
		logrus.Error("Error reordering rows: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка изменения порядка")
		return
	}

	h.successResponse(c, http.StatusOK, "Порядок изменен", nil)
}
