package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/ds"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/dto"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН МНОЖИТЕЛИ ============

func multiplierGroupToDTO(g *ds.MultiplierGroup) dto.MultiplierGroupResponse {
	return dto.MultiplierGroupResponse{
		ID:           g.ID,
		Key:          g.Key,
		DisplayName:  g.DisplayName,
		DisplayOrder: g.DisplayOrder,
		IsActive:     g.IsActive,
	}
}

func multiplierValueToDTO(v *ds.MultiplierValue) dto.MultiplierValueResponse {
	return dto.MultiplierValueResponse{
		ID:           v.ID,
		GroupKey:     v.GroupKey,
		OptionKey:    v.OptionKey,
		Value:        v.Value,
		IsFixed:      v.IsFixed,
		DisplayName:  v.DisplayName,
		DisplayOrder: v.DisplayOrder,
		IsActive:     v.IsActive,
	}
}

// GetMultiplierGroups возвращает все группы множителей
// @Summary Список групп множителей
// @Tags Multipliers
// @Produce json
// @Security AdminKey
// @Success 200 {array} dto.MultiplierGroupResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/admin/multipliers/groups [get]
func (h *APIHandler) GetMultiplierGroups(c *gin.Context) {
	groups, err := h.Repository.GetMultiplierGroups(c.Request.Context())
	if err != nil {
		logrus.Error("Error getting multiplier groups: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения групп множителей")
		return
	}

	dtoGroups := make([]dto.MultiplierGroupResponse, len(groups))
	for i := range groups {
		dtoGroups[i] = multiplierGroupToDTO(&groups[i])
	}

	c.JSON(http.StatusOK, dtoGroups)
}

// CreateMultiplierGroup создает группу множителей
// @Summary Создание группы множителей
// @Tags Multipliers
// @Accept json
// @Produce json
// @Security AdminKey
// @Param request body dto.CreateMultiplierGroupRequest true "Данные группы"
// @Success 201 {object} dto.MultiplierGroupResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/admin/multipliers/groups [post]
func (h *APIHandler) CreateMultiplierGroup(c *gin.Context) {
	var req dto.CreateMultiplierGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат данных: "+err.Error())
		return
	}

	group := ds.MultiplierGroup{
		Key:          req.Key,
		DisplayName:  req.DisplayName,
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
	}

	if err := h.Repository.CreateMultiplierGroup(c.Request.Context(), &group); err != nil {
		logrus.Error("Error creating multiplier group: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания группы множителей")
		return
	}

	c.JSON(http.StatusCreated, multiplierGroupToDTO(&group))
}

// UpdateMultiplierGroup изменяет группу множителей
// @Summary Изменение группы множителей
// @Tags Multipliers
// @Accept json
// @Produce json
// @Security AdminKey
// @Param id path int true "ID группы"
// @Param request body dto.UpdateMultiplierGroupRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/multipliers/groups/{id} [put]
func (h *APIHandler) UpdateMultiplierGroup(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID группы")
		return
	}

	var req dto.UpdateMultiplierGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат данных: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
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

	err := h.Repository.UpdateMultiplierGroup(c.Request.Context(), id, updates)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Группа множителей не найдена")
			return
		}
		logrus.Error("Error updating multiplier group: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка изменения группы множителей")
		return
	}

	h.successResponse(c, http.StatusOK, "Группа множителей изменена", nil)
}

// DeleteMultiplierGroup скрывает группу вместе с ее значениями
// @Summary Удаление группы множителей
// @Tags Multipliers
// @Produce json
// @Security AdminKey
// @Param id path int true "ID группы"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/multipliers/groups/{id} [delete]
func (h *APIHandler) DeleteMultiplierGroup(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID группы")
		return
	}

	err := h.Repository.DeleteMultiplierGroup(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Группа множителей не найдена")
			return
		}
		logrus.Error("Error deleting multiplier group: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка удаления группы множителей")
		return
	}

	h.successResponse(c, http.StatusOK, "Группа множителей удалена", nil)
}

// ReorderMultiplierGroups меняет порядок отображения групп
// @Summary Сортировка групп множителей
// @Tags Multipliers
// @Accept json
// @Produce json
// @Security AdminKey
// @Param request body dto.ReorderRequest true "Новый порядок"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/admin/multipliers/groups/reorder [put]
func (h *APIHandler) ReorderMultiplierGroups(c *gin.Context) {
	h.reorderHandler(c, h.Repository.ReorderMultiplierGroups)
}

// GetMultiplierValues возвращает значения множителей, опционально по группе
// @Summary Список значений множителей
// @Tags Multipliers
// @Produce json
// @Security AdminKey
// @Param group query string false "Фильтр по ключу группы"
// @Success 200 {array} dto.MultiplierValueResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/admin/multipliers/values [get]
func (h *APIHandler) GetMultiplierValues(c *gin.Context) {
	groupKey := c.Query("group")

	values, err := h.Repository.GetMultiplierValues(c.Request.Context(), groupKey)
	if err != nil {
		logrus.Error("Error getting multiplier values: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения значений множителей")
		return
	}

	dtoValues := make([]dto.MultiplierValueResponse, len(values))
	for i := range values {
		dtoValues[i] = multiplierValueToDTO(&values[i])
	}

	c.JSON(http.StatusOK, dtoValues)
}

// CreateMultiplierValue создает вариант внутри группы
// @Summary Создание значения множителя
// @Tags Multipliers
// @Accept json
// @Produce json
// @Security AdminKey
// @Param request body dto.CreateMultiplierValueRequest true "Данные значения"
// @Success 201 {object} dto.MultiplierValueResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/admin/multipliers/values [post]
func (h *APIHandler) CreateMultiplierValue(c *gin.Context) {
	var req dto.CreateMultiplierValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат данных: "+err.Error())
		return
	}

	// Значение хранится строкой, но обязано быть числом
	if _, err := strconv.ParseFloat(req.Value, 64); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Значение множителя должно быть числом")
		return
	}

	value := ds.MultiplierValue{
		GroupKey:     req.GroupKey,
		OptionKey:    req.OptionKey,
		Value:        req.Value,
		IsFixed:      req.IsFixed,
		DisplayName:  req.DisplayName,
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
	}

	if err := h.Repository.CreateMultiplierValue(c.Request.Context(), &value); err != nil {
		logrus.Error("Error creating multiplier value: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания значения множителя")
		return
	}

	c.JSON(http.StatusCreated, multiplierValueToDTO(&value))
}

// UpdateMultiplierValue изменяет вариант множителя
// @Summary Изменение значения множителя
// @Tags Multipliers
// @Accept json
// @Produce json
// @Security AdminKey
// @Param id path int true "ID значения"
// @Param request body dto.UpdateMultiplierValueRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/multipliers/values/{id} [put]
func (h *APIHandler) UpdateMultiplierValue(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID значения")
		return
	}

	var req dto.UpdateMultiplierValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат данных: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Value != nil {
		if _, err := strconv.ParseFloat(*req.Value, 64); err != nil {
			h.errorResponse(c, http.StatusBadRequest, "Значение множителя должно быть числом")
			return
		}
		updates["value"] = *req.Value
	}
	if req.IsFixed != nil {
		updates["is_fixed"] = *req.IsFixed
	}
	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
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

	err := h.Repository.UpdateMultiplierValue(c.Request.Context(), id, updates)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Значение множителя не найдено")
			return
		}
		logrus.Error("Error updating multiplier value: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка изменения значения множителя")
		return
	}

	h.successResponse(c, http.StatusOK, "Значение множителя изменено", nil)
}

// DeleteMultiplierValue скрывает вариант множителя
// @Summary Удаление значения множителя
// @Tags Multipliers
// @Produce json
// @Security AdminKey
// @Param id path int true "ID значения"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/multipliers/values/{id} [delete]
func (h *APIHandler) DeleteMultiplierValue(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID значения")
		return
	}

	err := h.Repository.DeleteMultiplierValue(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Значение множителя не найдено")
			return
		}
		logrus.Error("Error deleting multiplier value: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка удаления значения множителя")
		return
	}

	h.successResponse(c, http.StatusOK, "Значение множителя удалено", nil)
}

// ReorderMultiplierValues меняет порядок вариантов внутри групп
// @Summary Сортировка значений множителей
// @Tags Multipliers
// @Accept json
// @Produce json
// @Security AdminKey
// @Param request body dto.ReorderRequest true "Новый порядок"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/admin/multipliers/values/reorder [put]
func (h *APIHandler) ReorderMultiplierValues(c *gin.Context) {
	h.reorderHandler(c, h.Repository.ReorderMultiplierValues)
}
