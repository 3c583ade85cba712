package handler

import (
	"errors"
	"net/http"

	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/ds"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/dto"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН БАЗОВЫЕ СТАВКИ ============

func baseRateToDTO(br *ds.BaseRate) dto.BaseRateResponse {
	return dto.BaseRateResponse{
		ID:             br.ID,
		ProjectTypeKey: br.ProjectTypeKey,
		ClientTypeKey:  br.ClientTypeKey,
		BaseRateIls:    br.BaseRateIls,
		DisplayOrder:   br.DisplayOrder,
		IsActive:       br.IsActive,
	}
}

// GetBaseRates возвращает все базовые ставки (включая скрытые)
// @Summary Список базовых ставок
// @Tags BaseRates
// @Produce json
// @Security AdminKey
// @Success 200 {array} dto.BaseRateResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/admin/base-rates [get]
func (h *APIHandler) GetBaseRates(c *gin.Context) {
	baseRates, err := h.Repository.GetBaseRates(c.Request.Context())
	if err != nil {
		logrus.Error("Error getting base rates: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения базовых ставок")
		return
	}

	dtoRates := make([]dto.BaseRateResponse, len(baseRates))
	for i := range baseRates {
		dtoRates[i] = baseRateToDTO(&baseRates[i])
	}

	c.JSON(http.StatusOK, dtoRates)
}

// CreateBaseRate создает базовую ставку для пары (тип проекта, сегмент)
// @Summary Создание базовой ставки
// @Tags BaseRates
// @Accept json
// @Produce json
// @Security AdminKey
// @Param request body dto.CreateBaseRateRequest true "Данные ставки"
// @Success 201 {object} dto.BaseRateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/admin/base-rates [post]
func (h *APIHandler) CreateBaseRate(c *gin.Context) {
	var req dto.CreateBaseRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат данных: "+err.Error())
		return
	}

	// Тип проекта должен существовать, иначе ставка повиснет в воздухе
	if _, err := h.Repository.GetProjectTypeByKey(c.Request.Context(), req.ProjectTypeKey); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Тип проекта не найден")
		return
	}

	baseRate := ds.BaseRate{
		ProjectTypeKey: req.ProjectTypeKey,
		ClientTypeKey:  req.ClientTypeKey,
		BaseRateIls:    req.BaseRateIls,
		DisplayOrder:   req.DisplayOrder,
		IsActive:       true,
	}

	if err := h.Repository.CreateBaseRate(c.Request.Context(), &baseRate); err != nil {
		logrus.Error("Error creating base rate: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания базовой ставки")
		return
	}

	c.JSON(http.StatusCreated, baseRateToDTO(&baseRate))
}

// UpdateBaseRate изменяет базовую ставку
// @Summary Изменение базовой ставки
// @Tags BaseRates
// @Accept json
// @Produce json
// @Security AdminKey
// @Param id path int true "ID ставки"
// @Param request body dto.UpdateBaseRateRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/base-rates/{id} [put]
func (h *APIHandler) UpdateBaseRate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID ставки")
		return
	}

	var req dto.UpdateBaseRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат данных: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.ClientTypeKey != nil {
		updates["client_type_key"] = *req.ClientTypeKey
	}
	if req.BaseRateIls != nil {
		updates["base_rate_ils"] = *req.BaseRateIls
	}
	if req.DisplayOrder != nil {
		updates["display_order"] = *req.DisplayOrder
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Нет полей для изменения")
		return
	}

	err := h.Repository.UpdateBaseRate(c.Request.Context(), id, updates)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Базовая ставка не найдена")
			return
		}
		logrus.Error("Error updating base rate: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка изменения базовой ставки")
		return
	}

	h.successResponse(c, http.StatusOK, "Базовая ставка изменена", nil)
}

// DeleteBaseRate скрывает базовую ставку
// @Summary Удаление базовой ставки
// @Tags BaseRates
// @Produce json
// @Security AdminKey
// @Param id path int true "ID ставки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/base-rates/{id} [delete]
func (h *APIHandler) DeleteBaseRate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID ставки")
		return
	}

	err := h.Repository.DeleteBaseRate(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Базовая ставка не найдена")
			return
		}
		logrus.Error("Error deleting base rate: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка удаления базовой ставки")
		return
	}

	h.successResponse(c, http.StatusOK, "Базовая ставка удалена", nil)
}

// ReorderBaseRates меняет порядок отображения одним запросом
// @Summary Сортировка базовых ставок
// @Tags BaseRates
// @Accept json
// @Produce json
// @Security AdminKey
// @Param request body dto.ReorderRequest true "Новый порядок"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/admin/base-rates/reorder [put]
func (h *APIHandler) ReorderBaseRates(c *gin.Context) {
	h.reorderHandler(c, h.Repository.ReorderBaseRates)
}
