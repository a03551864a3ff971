package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Zlobinnn/home-viewer/internal/handler"
	"github.com/Zlobinnn/home-viewer/internal/repository"
	"github.com/Zlobinnn/home-viewer/internal/service"
	"github.com/Zlobinnn/home-viewer/pkg/cleaner"
	"github.com/Zlobinnn/home-viewer/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

func initDailySweep(pool *pgxpool.Pool) {
	c := cron.New()

	_, err := c.AddFunc("0 3 * * *", func() {
		cleaner.Sweep(pool)
	})

	if err != nil {
		log.Fatalf("Failed to schedule sweep job: %v", err)
	}

	go c.Start()
}

func main() {
	config, err := config.NewConfig(".env")
	if err != nil {
		log.Fatalf("%s", err.Error())
	}
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s", config.DbUser, config.DbPassword, config.DbHost, config.DbPort, config.DbName)
	dbconfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		log.Fatalf("%s", err.Error())
	}
	dbconfig.MaxConns = 100
	dbconfig.MinConns = 10
	dbconfig.MaxConnLifetime = 1 * time.Hour
	dbconfig.MaxConnIdleTime = 15 * time.Minute
	pool, err := pgxpool.NewWithConfig(context.Background(), dbconfig)
	if err != nil {
		log.Fatalf("%s", err.Error())
	}
	defer pool.Close()
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("%s", err.Error())
	}

	cityRepository := repository.NewCityRepository(pool, config.WebHost, config.WebPort)
	apartmentRepository := repository.NewApartmentRepository(pool, config.WebHost, config.WebPort)
	ratingRepository := repository.NewRatingRepository(pool, config.WebHost, config.WebPort)

	err = cityRepository.CreateTables(context.Background())
	if err != nil {
		log.Fatal(err.Error())
	}
	err = apartmentRepository.CreateTables(context.Background())
	if err != nil {
		log.Fatal(err.Error())
	}
	err = ratingRepository.CreateTables(context.Background())
	if err != nil {
		log.Fatal(err.Error())
	}

	initDailySweep(pool)

	cityService := service.NewCityService(cityRepository, config.WebHost, config.WebPort)
	apartmentService := service.NewApartmentService(apartmentRepository, config.WebHost, config.WebPort)
	ratingService := service.NewRatingService(ratingRepository, config.WebHost, config.WebPort)

	cityHandler := handler.NewCityHandler(cityService, config.WebHost, config.WebPort)
	apartmentHandler := handler.NewApartmentHandler(apartmentService, config.WebHost, config.WebPort)
	ratingHandler := handler.NewRatingHandler(ratingService, config.WebHost, config.WebPort)

	router := gin.Default()
	api := router.Group("/api")

	cityHandler.RegisterRoutes(api)
	apartmentHandler.RegisterRoutes(api)
	ratingHandler.RegisterRoutes(api)

	router.Run(config.WebHost + ":" + config.WebPort)
}
