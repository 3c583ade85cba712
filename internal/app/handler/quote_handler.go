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
	goredis "github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН КОТИРОВКИ ============

// CreateQuote рассчитывает стоимость проекта
// @Summary Расчет стоимости
// @Description Собирает модель ценообразования, считает стоимость и сохраняет
// @Description снапшот котировки с подписанным токеном
// @Tags Calculator
// @Accept json
// @Produce json
// @Param request body dto.QuoteRequest true "Параметры расчета"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/calculator/quote [post]
func (h *APIHandler) CreateQuote(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат данных: "+err.Error())
		return
	}

	model, err := h.Repository.ResolvePricingModel(c.Request.Context())
	if err != nil {
		logrus.Error("Error resolving pricing model: ", err)
		h.errorResponse(c, http.StatusServiceUnavailable, "Конфигурация цен временно недоступна")
		return
	}

	params, err := resolveQuoteParams(model, req)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	// Промокод опционален; недействующий код - ошибка запроса,
	// а не молча проигнорированная скидка
	if req.DiscountCode != "" {
		discount, err := h.Repository.GetActivePricingDiscountByCode(c.Request.Context(), req.DiscountCode)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				h.errorResponse(c, http.StatusBadRequest, "Промокод не найден или не действует")
				return
			}
			logrus.Error("Error getting discount: ", err)
			h.errorResponse(c, http.StatusInternalServerError, "Ошибка проверки промокода")
			return
		}
		params.Discount = discount
	}

	response := ComputeQuote(model, params)
	response.QuoteID = uuid.New().String()

	// Снапшот в Redis и токен - best effort: расчет ценнее, чем ссылка на него
	if h.RedisClient != nil {
		payload, err := json.Marshal(response)
		if err == nil {
			if err := h.RedisClient.WriteQuote(c.Request.Context(), response.QuoteID, payload, h.Config.QuoteTTL); err != nil {
				logrus.Warn("Error writing quote snapshot: ", err)
			} else if token, err := h.signQuoteToken(response.QuoteID); err == nil {
				response.Token = token
			} else {
				logrus.Warn("Error signing quote token: ", err)
			}
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetQuote возвращает сохраненный снапшот котировки.
// Доступ только по подписанному токену из ответа CreateQuote.
// @Summary Сохраненная котировка
// @Tags Calculator
// @Produce json
// @Param id path string true "ID котировки"
// @Param token query string true "Подписанный токен котировки"
// @Success 200 {object} dto.QuoteResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/calculator/quote/{id} [get]
func (h *APIHandler) GetQuote(c *gin.Context) {
	if h.RedisClient == nil {
		h.errorResponse(c, http.StatusServiceUnavailable, "Хранилище котировок недоступно")
		return
	}

	quoteID := c.Param("id")
	if _, err := uuid.Parse(quoteID); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID котировки")
		return
	}

	if !h.verifyQuoteToken(c.Query("token"), quoteID) {
		h.errorResponse(c, http.StatusUnauthorized, "Неверный или истекший токен котировки")
		return
	}

	payload, err := h.RedisClient.ReadQuote(c.Request.Context(), quoteID)
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			h.errorResponse(c, http.StatusNotFound, "Котировка не найдена или истекла")
			return
		}
		logrus.Error("Error reading quote snapshot: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка чтения котировки")
		return
	}

	var response dto.QuoteResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		logrus.Error("Error decoding quote snapshot: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка чтения котировки")
		return
	}

	c.JSON(http.StatusOK, response)
}

// signQuoteToken подписывает ссылку на котировку, чтобы клиент мог
// передать ее дальше (например, в форму заказа) без подмены
func (h *APIHandler) signQuoteToken(quoteID string) (string, error) {
	now := time.Now()
	claims := &ds.QuoteClaims{
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(h.Config.JWT.ExpiresIn).Unix(),
		},
		QuoteID: quoteID,
	}

	token := jwt.NewWithClaims(h.Config.JWT.SigningMethod, claims)
	return token.SignedString([]byte(h.Config.JWT.Token))
}

// verifyQuoteToken проверяет подпись и принадлежность токена котировке
func (h *APIHandler) verifyQuoteToken(tokenStr, quoteID string) bool {
	if tokenStr == "" {
		return false
	}

	token, err := jwt.ParseWithClaims(tokenStr, &ds.QuoteClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.Config.JWT.Token), nil
	})
	if err != nil {
		return false
	}

	claims, ok := token.Claims.(*ds.QuoteClaims)
	return ok && token.Valid && claims.QuoteID == quoteID
}
