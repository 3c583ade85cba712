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

// ============ ДОМЕН ФИЧИ ============

func featureToDTO(f *ds.Feature) dto.FeatureResponse {
	return dto.FeatureResponse{
		ID:           f.ID,
		Key:          f.Key,
		DisplayName:  f.DisplayName,
		CostIls:      f.CostIls,
		GroupName:    f.GroupName,
		DisplayOrder: f.DisplayOrder,
		IsActive:     f.IsActive,
	}
}

// GetFeatures возвращает все фичи (включая скрытые)
// @Summary Список фич
// @Tags Features
// @Produce json
// @Security AdminKey
// @Success 200 {array} dto.FeatureResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/admin/features [get]
func (h *APIHandler) GetFeatures(c *gin.Context) {
	features, err := h.Repository.GetFeatures(c.Request.Context())
	if err != nil {
		logrus.Error("Error getting features: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения фич")
		return
	}

	dtoFeatures := make([]dto.FeatureResponse, len(features))
	for i := range features {
		dtoFeatures[i] = featureToDTO(&features[i])
	}

	c.JSON(http.StatusOK, dtoFeatures)
}

// CreateFeature создает новую фичу
// @Summary Создание фичи
// @Tags Features
// @Accept json
// @Produce json
// @Security AdminKey
// @Param request body dto.CreateFeatureRequest true "Данные фичи"
// @Success 201 {object} dto.FeatureResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/admin/features [post]
func (h *APIHandler) CreateFeature(c *gin.Context) {
	var req dto.CreateFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат данных: "+err.Error())
		return
	}

	feature := ds.Feature{
		Key:          req.Key,
		DisplayName:  req.DisplayName,
		CostIls:      req.CostIls,
		GroupName:    req.GroupName,
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
	}

	if err := h.Repository.CreateFeature(c.Request.Context(), &feature); err != nil {
		logrus.Error("Error creating feature: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания фичи")
		return
	}

	c.JSON(http.StatusCreated, featureToDTO(&feature))
}

// UpdateFeature изменяет фичу
// @Summary Изменение фичи
// @Tags Features
// @Accept json
// @Produce json
// @Security AdminKey
// @Param id path int true "ID фичи"
// @Param request body dto.UpdateFeatureRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/features/{id} [put]
func (h *APIHandler) UpdateFeature(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID фичи")
		return
	}

	var req dto.UpdateFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат данных: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if req.CostIls != nil {
		updates["cost_ils"] = *req.CostIls
	}
	if req.GroupName != nil {
		updates["group_name"] = *req.GroupName
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

	err := h.Repository.UpdateFeature(c.Request.Context(), id, updates)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Фича не найдена")
			return
		}
		logrus.Error("Error updating feature: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка изменения фичи")
		return
	}

	h.successResponse(c, http.StatusOK, "Фича изменена", nil)
}

// DeleteFeature скрывает фичу
// @Summary Удаление фичи
// @Tags Features
// @Produce json
// @Security AdminKey
// @Param id path int true "ID фичи"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/features/{id} [delete]
func (h *APIHandler) DeleteFeature(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID фичи")
		return
	}

	err := h.Repository.DeleteFeature(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Фича не найдена")
			return
		}
		logrus.Error("Error deleting feature: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка удаления фичи")
		return
	}

	h.successResponse(c, http.StatusOK, "Фича удалена", nil)
}

// ReorderFeatures меняет порядок отображения одним запросом
// @Summary Сортировка фич
// @Tags Features
// @Accept json
// @Produce json
// @Security AdminKey
// @Param request body dto.ReorderRequest true "Новый порядок"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/admin/features/reorder [put]
func (h *APIHandler) ReorderFeatures(c *gin.Context) {
	h.reorderHandler(c, h.Repository.ReorderFeatures)
}
