package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"webshop/config"
	_ "webshop/docs"
	"webshop/mail"
	"webshop/middleware"
	"webshop/repositories"
	"webshop/routes"
	"webshop/sessions"
	"webshop/tasks"
)

// @title Webshop API
// @version 1.0
// @description Storefront API: product catalog, session-backed cart, orders.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.LoadConfig()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	if err := config.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	config.ConnectDB()
	defer config.CloseDB()

	config.ConnectRedis()
	defer config.CloseRedis()

	var store sessions.Store
	var queue interface {
		tasks.Queue
		tasks.Dequeuer
	}
	if config.Redis != nil {
		store = sessions.NewRedisStore(config.Redis, config.AppConfig.SessionTTL)
		queue = tasks.NewRedisQueue(config.Redis)
	} else {
		log.Println("Redis unavailable: sessions and task queue are in-memory")
		store = sessions.NewMemoryStore()
		queue = tasks.NewMemoryQueue(128)
	}

	var mailer mail.Mailer = mail.LogMailer{}
	if config.AppConfig.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(
			config.AppConfig.SMTPHost,
			config.AppConfig.SMTPPort,
			config.AppConfig.SMTPUser,
			config.AppConfig.SMTPPass,
		)
	}

	worker := tasks.NewWorker(queue)
	worker.Register(tasks.TaskOrderCreated, (&tasks.OrderCreatedHandler{
		Orders: repositories.NewOrderRepository(),
		Mailer: mailer,
		From:   config.AppConfig.MailFrom,
	}).Handle)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go worker.Run(workerCtx)

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	routes.SetupRoutes(router, store, queue)

	port := ":" + config.AppConfig.Port
	log.Printf("Server starting on port %s", port)
	log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", config.AppConfig.Port)

	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
