package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GetPricingModel возвращает собранную модель ценообразования
// @Summary Модель ценообразования
// @Description Собирает модель из нормализованных таблиц, при их пустоте - из legacy-таблицы
// @Tags Pricing
// @Produce json
// @Success 200 {object} repository.PricingModel
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/pricing/model [get]
func (h *APIHandler) GetPricingModel(c *gin.Context) {
	model, err := h.Repository.ResolvePricingModel(c.Request.Context())
	if err != nil {
		logrus.Error("Error resolving pricing model: ", err)
		h.errorResponse(c, http.StatusServiceUnavailable, "Конфигурация цен временно недоступна")
		return
	}

	c.JSON(http.StatusOK, model)
}
