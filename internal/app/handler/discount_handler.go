package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/ds"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/dto"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН ПРОМОКОДЫ ============

func discountToDTO(d *ds.PricingDiscount) dto.DiscountResponse {
	resp := dto.DiscountResponse{
		ID:           d.ID,
		Code:         d.Code,
		DiscountType: d.DiscountType,
		Amount:       d.Amount,
		Currency:     d.Currency,
		AppliesTo:    json.RawMessage(d.AppliesTo),
		MaxUses:      d.MaxUses,
		UsedCount:    d.UsedCount,
		PerUserLimit: d.PerUserLimit,
		IsActive:     d.IsActive,
	}
	if d.StartsAt != nil {
		s := d.StartsAt.Format(time.RFC3339)
		resp.StartsAt = &s
	}
	if d.EndsAt != nil {
		s := d.EndsAt.Format(time.RFC3339)
		resp.EndsAt = &s
	}
	return resp
}

// parseTimePtr разбирает опциональную метку времени RFC3339
func parseTimePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetDiscountByCode проверяет промокод перед применением
// @Summary Проверка промокода
// @Description Возвращает промокод если он активен и попадает в окно действия.
// @Description Лимит использований на этом шаге не проверяется.
// @Tags Discounts
// @Produce json
// @Param code path string true "Код (без учета регистра)"
// @Success 200 {object} dto.DiscountResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/pricing/discounts/{code} [get]
func (h *APIHandler) GetDiscountByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		h.errorResponse(c, http.StatusBadRequest, "Неверный код промокода")
		return
	}

	discount, err := h.Repository.GetActivePricingDiscountByCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Промокод не найден или не действует")
			return
		}
		logrus.Error("Error getting discount by code: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка проверки промокода")
		return
	}

	c.JSON(http.StatusOK, discountToDTO(discount))
}

// RedeemDiscount списывает одно использование промокода
// @Summary Списание промокода
// @Description Атомарно увеличивает счетчик использований. 409 если лимит исчерпан.
// @Tags Discounts
// @Produce json
// @Param code path string true "Код (без учета регистра)"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/pricing/discounts/{code}/redeem [post]
func (h *APIHandler) RedeemDiscount(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		h.errorResponse(c, http.StatusBadRequest, "Неверный код промокода")
		return
	}

	discount, err := h.Repository.GetActivePricingDiscountByCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Промокод не найден или не действует")
			return
		}
		logrus.Error("Error getting discount by code: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка проверки промокода")
		return
	}

	redeemed, err := h.Repository.TryIncrementDiscountUsage(c.Request.Context(), discount.ID)
	if err != nil {
		logrus.Error("Error redeeming discount: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка списания промокода")
		return
	}
	if !redeemed {
		h.errorResponse(c, http.StatusConflict, "Лимит использований промокода исчерпан")
		return
	}

	h.successResponse(c, http.StatusOK, "Промокод применен", nil)
}

// GetDiscounts возвращает все промокоды для админки
// @Summary Список промокодов
// @Tags Discounts
// @Produce json
// @Security AdminKey
// @Success 200 {object} dto.DiscountListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/admin/discounts [get]
func (h *APIHandler) GetDiscounts(c *gin.Context) {
	discounts, err := h.Repository.GetPricingDiscounts(c.Request.Context())
	if err != nil {
		logrus.Error("Error getting discounts: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения промокодов")
		return
	}

	dtoDiscounts := make([]dto.DiscountResponse, len(discounts))
	for i := range discounts {
		dtoDiscounts[i] = discountToDTO(&discounts[i])
	}

	c.JSON(http.StatusOK, dto.DiscountListResponse{
		Discounts: dtoDiscounts,
		Total:     len(dtoDiscounts),
	})
}

// GetDiscount возвращает один промокод
// @Summary Промокод по ID
// @Tags Discounts
// @Produce json
// @Security AdminKey
// @Param id path int true "ID промокода"
// @Success 200 {object} dto.DiscountResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/discounts/{id} [get]
func (h *APIHandler) GetDiscount(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID промокода")
		return
	}

	discount, err := h.Repository.GetPricingDiscountByID(c.Request.Context(), id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Промокод не найден")
		return
	}

	c.JSON(http.StatusOK, discountToDTO(discount))
}

// CreateDiscount создает промокод
// @Summary Создание промокода
// @Tags Discounts
// @Accept json
// @Produce json
// @Security AdminKey
// @Param request body dto.CreateDiscountRequest true "Данные промокода"
// @Success 201 {object} dto.DiscountResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/admin/discounts [post]
func (h *APIHandler) CreateDiscount(c *gin.Context) {
	var req dto.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат данных: "+err.Error())
		return
	}

	startsAt, err := parseTimePtr(req.StartsAt)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат starts_at (ожидается RFC3339)")
		return
	}
	endsAt, err := parseTimePtr(req.EndsAt)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат ends_at (ожидается RFC3339)")
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = repository.DefaultCurrency
	}

	discount := ds.PricingDiscount{
		Code:         req.Code,
		DiscountType: req.DiscountType,
		Amount:       req.Amount,
		Currency:     currency,
		AppliesTo:    ds.JSON(req.AppliesTo),
		StartsAt:     startsAt,
		EndsAt:       endsAt,
		MaxUses:      req.MaxUses,
		PerUserLimit: req.PerUserLimit,
		IsActive:     true,
	}

	if err := h.Repository.CreatePricingDiscount(c.Request.Context(), &discount); err != nil {
		logrus.Error("Error creating discount: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания промокода")
		return
	}

	c.JSON(http.StatusCreated, discountToDTO(&discount))
}

// UpdateDiscount изменяет промокод
// @Summary Изменение промокода
// @Tags Discounts
// @Accept json
// @Produce json
// @Security AdminKey
// @Param id path int true "ID промокода"
// @Param request body dto.UpdateDiscountRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/discounts/{id} [put]
func (h *APIHandler) UpdateDiscount(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID промокода")
		return
	}

	var req dto.UpdateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат данных: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.DiscountType != nil {
		updates["discount_type"] = *req.DiscountType
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.Currency != nil {
		updates["currency"] = *req.Currency
	}
	if req.AppliesTo != nil {
		updates["applies_to"] = ds.JSON(req.AppliesTo)
	}
	if req.StartsAt != nil {
		startsAt, err := parseTimePtr(req.StartsAt)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "Неверный формат starts_at (ожидается RFC3339)")
			return
		}
		updates["starts_at"] = startsAt
	}
	if req.EndsAt != nil {
		endsAt, err := parseTimePtr(req.EndsAt)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "Неверный формат ends_at (ожидается RFC3339)")
			return
		}
		updates["ends_at"] = endsAt
	}
	if req.MaxUses != nil {
		updates["max_uses"] = *req.MaxUses
	}
	if req.PerUserLimit != nil {
		updates["per_user_limit"] = *req.PerUserLimit
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Нет полей для изменения")
		return
	}

	err := h.Repository.UpdatePricingDiscount(c.Request.Context(), id, updates)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Промокод не найден")
			return
		}
		logrus.Error("Error updating discount: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка изменения промокода")
		return
	}

	h.successResponse(c, http.StatusOK, "Промокод изменен", nil)
}

// DeleteDiscount деактивирует промокод
// @Summary Удаление промокода
// @Tags Discounts
// @Produce json
// @Security AdminKey
// @Param id path int true "ID промокода"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/discounts/{id} [delete]
func (h *APIHandler) DeleteDiscount(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID промокода")
		return
	}

	err := h.Repository.DeletePricingDiscount(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Промокод не найден")
			return
		}
		logrus.Error("Error deleting discount: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка удаления промокода")
		return
	}

	h.successResponse(c, http.StatusOK, "Промокод удален", nil)
}
