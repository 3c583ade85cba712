package main

import (
	"context"

	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/config"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/dsn"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/handler"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/redis"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/repository"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/storage"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("failed to parse config: %v", err)
	}

	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		logrus.Fatal("DSN string is empty. Check your .env file")
	}

	repo, err := repository.New(dsnStr)
	if err != nil {
		logrus.Fatalf("failed to init repository: %v", err)
	}

	// Redis и MinIO не критичны для расчета: без них работают
	// только модель и промокоды, снапшоты и картинки отключаются
	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logrus.Warnf("redis unavailable, quote snapshots disabled: %v", err)
		redisClient = nil
	}

	var images handler.ImageStorage
	minioClient, err := storage.NewMinIOClient(
		cfg.Minio.Endpoint,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.Bucket,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		logrus.Warnf("minio unavailable, image upload disabled: %v", err)
	} else {
		images = minioClient
	}

	apiHandler := handler.NewAPIHandler(repo, redisClient, images, cfg)

	router := gin.Default()
	app := pkg.NewApp(cfg, router, apiHandler)
	app.RunApp()
}
