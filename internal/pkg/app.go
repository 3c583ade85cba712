package pkg

import (
	"fmt"

	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/config"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/handler"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Application struct {
	Config  *config.Config
	Router  *gin.Engine
	Handler *handler.APIHandler
}

func NewApp(c *config.Config, r *gin.Engine, h *handler.APIHandler) *Application {
	return &Application{
		Config:  c,
		Router:  r,
		Handler: h,
	}
}

func (a *Application) RunApp() {
	logrus.Info("Server start up")

	// CORS для фронтенда калькулятора
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-Admin-Key")
	a.Router.Use(cors.New(corsConfig))

	adminMiddleware := middleware.NewAdminMiddleware(a.Config)
	a.Handler.RegisterAPIRoutes(a.Router, adminMiddleware)

	serverAddress := fmt.Sprintf("%s:%d", a.Config.ServiceHost, a.Config.ServicePort)
	logrus.Infof("Starting server on %s", serverAddress)

	if err := a.Router.Run(serverAddress); err != nil {
		logrus.Fatal(err)
	}

	logrus.Info("Server down")
}
