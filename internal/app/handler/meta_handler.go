package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/ds"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/dto"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН META-НАСТРОЙКИ ============

func metaSettingToDTO(m *ds.MetaSetting) dto.MetaSettingResponse {
	return dto.MetaSettingResponse{
		ID:           m.ID,
		Key:          m.Key,
		Value:        json.RawMessage(m.Value),
		DisplayOrder: m.DisplayOrder,
		IsActive:     m.IsActive,
	}
}

// GetMetaSettings возвращает все meta-настройки
// @Summary Список meta-настроек
// @Tags Meta
// @Produce json
// @Security AdminKey
// @Success 200 {array} dto.MetaSettingResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/admin/meta [get]
func (h *APIHandler) GetMetaSettings(c *gin.Context) {
	settings, err := h.Repository.GetMetaSettings(c.Request.Context())
	if err != nil {
		logrus.Error("Error getting meta settings: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения meta-настроек")
		return
	}

	dtoSettings := make([]dto.MetaSettingResponse, len(settings))
	for i := range settings {
		dtoSettings[i] = metaSettingToDTO(&settings[i])
	}

	c.JSON(http.StatusOK, dtoSettings)
}

// GetMetaSetting возвращает одну meta-настройку по ключу
// @Summary Meta-настройка по ключу
// @Tags Meta
// @Produce json
// @Security AdminKey
// @Param key path string true "Ключ настройки"
// @Success 200 {object} dto.MetaSettingResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/meta/{key} [get]
func (h *APIHandler) GetMetaSetting(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ключ настройки")
		return
	}

	setting, err := h.Repository.GetMetaSettingByKey(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Meta-настройка не найдена")
			return
		}
		logrus.Error("Error getting meta setting: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения meta-настройки")
		return
	}

	c.JSON(http.StatusOK, metaSettingToDTO(setting))
}

// UpsertMetaSetting создает или обновляет настройку по ключу
// @Summary Создание/обновление meta-настройки
// @Tags Meta
// @Accept json
// @Produce json
// @Security AdminKey
// @Param key path string true "Ключ настройки"
// @Param request body dto.UpsertMetaSettingRequest true "Значение"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/admin/meta/{key} [put]
func (h *APIHandler) UpsertMetaSetting(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ключ настройки")
		return
	}

	var req dto.UpsertMetaSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат данных: "+err.Error())
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	setting := ds.MetaSetting{
		Key:          key,
		Value:        ds.JSON(req.Value),
		DisplayOrder: req.DisplayOrder,
		IsActive:     isActive,
	}

	if err := h.Repository.UpsertMetaSetting(c.Request.Context(), &setting); err != nil {
		logrus.Error("Error upserting meta setting: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка сохранения meta-настройки")
		return
	}

	h.successResponse(c, http.StatusOK, "Meta-настройка сохранена", metaSettingToDTO(&setting))
}

// DeleteMetaSetting скрывает настройку; расчет вернется к значению по умолчанию
// @Summary Удаление meta-настройки
// @Tags Meta
// @Produce json
// @Security AdminKey
// @Param key path string true "Ключ настройки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/meta/{key} [delete]
func (h *APIHandler) DeleteMetaSetting(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ключ настройки")
		return
	}

	err := h.Repository.DeleteMetaSetting(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Meta-настройка не найдена")
			return
		}
		logrus.Error("Error deleting meta setting: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка удаления meta-настройки")
		return
	}

	h.successResponse(c, http.StatusOK, "Meta-настройка удалена", nil)
}
