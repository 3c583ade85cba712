package main

import (
	"log"

	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/ds"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/dsn"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Загрузка переменных окружения из .env файла
	_ = godotenv.Load()

	// Получение DSN строки подключения
	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		log.Fatal("DSN string is empty. Check your .env file")
	}

	// Подключение к базе данных
	db, err := gorm.Open(postgres.Open(dsnStr), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Connected to database successfully")

	// Миграция всех моделей
	err = db.AutoMigrate(
		&ds.ProjectType{},
		&ds.BaseRate{},
		&ds.Feature{},
		&ds.MultiplierGroup{},
		&ds.MultiplierValue{},
		&ds.MetaSetting{},
		&ds.CalculatorSetting{},
		&ds.PricingDiscount{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Database migration completed successfully")
}
