// Serverless entrypoint. Mirrors main.go wiring without the background
// worker: on this platform the queue is drained by a separately deployed
// consumer.
package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"webshop/config"
	"webshop/middleware"
	"webshop/routes"
	"webshop/sessions"
	"webshop/tasks"
)

var (
	router *gin.Engine
	once   sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		config.LoadConfig()
		config.ConnectDB()
		config.ConnectRedis()

		var store sessions.Store
		var queue tasks.Queue
		if config.Redis != nil {
			store = sessions.NewRedisStore(config.Redis, config.AppConfig.SessionTTL)
			queue = tasks.NewRedisQueue(config.Redis)
		} else {
			store = sessions.NewMemoryStore()
			queue = tasks.NewMemoryQueue(128)
		}

		router = gin.New()
		router.Use(gin.Recovery())
		router.Use(middleware.CORSMiddleware())
		routes.SetupRoutes(router, store, queue)
	})
}

func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	router.ServeHTTP(w, r)
}
