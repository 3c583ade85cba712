package middleware

import (
	"crypto/subtle"

	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/config"

	"github.com/gin-gonic/gin"
)

type AdminMiddleware struct {
	Config *config.Config
}

func NewAdminMiddleware(cfg *config.Config) *AdminMiddleware {
	return &AdminMiddleware{Config: cfg}
}

// WithAdminKey middleware для защиты админских маршрутов по статическому ключу
func (am *AdminMiddleware) WithAdminKey() gin.HandlerFunc {
	return gin.HandlerFunc(func(gCtx *gin.Context) {
		key := gCtx.GetHeader("X-Admin-Key")
		if key == "" {
			gCtx.AbortWithStatus(401) // Unauthorized
			return
		}

		if subtle.ConstantTimeCompare([]byte(key), []byte(am.Config.AdminKey)) != 1 {
			gCtx.AbortWithStatus(403) // Forbidden
			return
		}

		gCtx.Next()
	})
}
