package handler

import (
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes регистрирует все REST API маршруты
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine, adminMiddleware *middleware.AdminMiddleware) {
	api := router.Group("/api")

	// ============ Публичные эндпоинты калькулятора ============
	pricing := api.Group("/pricing")
	{
		pricing.GET("/model", h.GetPricingModel)
		pricing.GET("/discounts/:code", h.GetDiscountByCode)
		pricing.POST("/discounts/:code/redeem", h.RedeemDiscount)
	}

	calculator := api.Group("/calculator")
	{
		calculator.POST("/quote", h.CreateQuote) // POST расчет стоимости
		calculator.GET("/quote/:id", h.GetQuote) // GET сохраненная котировка
	}

	// ============ Админка (управление конфигурацией цен) ============
	admin := api.Group("/admin")
	admin.Use(adminMiddleware.WithAdminKey())
	{
		projectTypes := admin.Group("/project-types")
		{
			projectTypes.GET("", h.GetProjectTypes)
			projectTypes.GET("/:id", h.GetProjectType)
			projectTypes.POST("", h.CreateProjectType)
			projectTypes.PUT("/:id", h.UpdateProjectType)
			projectTypes.DELETE("/:id", h.DeleteProjectType)
			projectTypes.PUT("/reorder", h.ReorderProjectTypes)
			projectTypes.POST("/:id/image", h.UploadProjectTypeImage) // POST изображение
			projectTypes.DELETE("/:id/image", h.DeleteProjectTypeImage)
		}

		baseRates := admin.Group("/base-rates")
		{
			baseRates.GET("", h.GetBaseRates)
			baseRates.POST("", h.CreateBaseRate)
			baseRates.PUT("/:id", h.UpdateBaseRate)
			baseRates.DELETE("/:id", h.DeleteBaseRate)
			baseRates.PUT("/reorder", h.ReorderBaseRates)
		}

		features := admin.Group("/features")
		{
			features.GET("", h.GetFeatures)
			features.POST("", h.CreateFeature)
			features.PUT("/:id", h.UpdateFeature)
			features.DELETE("/:id", h.DeleteFeature)
			features.PUT("/reorder", h.ReorderFeatures)
		}

		multipliers := admin.Group("/multipliers")
		{
			multipliers.GET("/groups", h.GetMultiplierGroups)
			multipliers.POST("/groups", h.CreateMultiplierGroup)
			multipliers.PUT("/groups/:id", h.UpdateMultiplierGroup)
			multipliers.DELETE("/groups/:id", h.DeleteMultiplierGroup)
			multipliers.PUT("/groups/reorder", h.ReorderMultiplierGroups)

			multipliers.GET("/values", h.GetMultiplierValues) // ?group=key
			multipliers.POST("/values", h.CreateMultiplierValue)
			multipliers.PUT("/values/:id", h.UpdateMultiplierValue)
			multipliers.DELETE("/values/:id", h.DeleteMultiplierValue)
			multipliers.PUT("/values/reorder", h.ReorderMultiplierValues)
		}

		meta := admin.Group("/meta")
		{
			meta.GET("", h.GetMetaSettings)
			meta.GET("/:key", h.GetMetaSetting)
			meta.PUT("/:key", h.UpsertMetaSetting)
			meta.DELETE("/:key", h.DeleteMetaSetting)
		}

		discounts := admin.Group("/discounts")
		{
			discounts.GET("", h.GetDiscounts)
			discounts.GET("/:id", h.GetDiscount)
			discounts.POST("", h.CreateDiscount)
			discounts.PUT("/:id", h.UpdateDiscount)
			discounts.DELETE("/:id", h.DeleteDiscount)
		}
	}

	// Ping эндпоинт для проверки
	router.GET("/ping", h.Ping)
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *APIHandler) Ping(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "pong"})
}
