package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"webshop/controllers"
	"webshop/middleware"
	"webshop/repositories"
	"webshop/services"
	"webshop/sessions"
	"webshop/tasks"
)

func SetupRoutes(router *gin.Engine, store sessions.Store, queue tasks.Queue) {
	products := repositories.NewProductRepository()

	authCtrl := controllers.NewAuthController()
	categoryCtrl := controllers.NewCategoryController()
	productCtrl := controllers.NewProductController()
	cartCtrl := controllers.NewCartController(products)
	orderCtrl := controllers.NewOrderController(
		services.NewOrderService(repositories.NewOrderRepository(), queue),
		products,
	)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/auth/register", authCtrl.Register)
	router.POST("/auth/login", authCtrl.Login)
	router.GET("/categories", categoryCtrl.GetAllCategories)
	router.GET("/products", productCtrl.GetAllProducts)
	router.GET("/products/:id/:slug", productCtrl.GetProductDetail)

	// Cart and checkout ride on the visitor session.
	shop := router.Group("/")
	shop.Use(middleware.SessionMiddleware(store))
	{
		shop.GET("/cart", cartCtrl.GetCart)
		shop.POST("/cart/items/:id", cartCtrl.AddItem)
		shop.DELETE("/cart/items/:id", cartCtrl.RemoveItem)
		shop.DELETE("/cart", cartCtrl.ClearCart)
		shop.POST("/orders", orderCtrl.CreateOrder)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.PATCH("/categories/:id", categoryCtrl.UpdateCategory)
		admin.DELETE("/categories/:id", categoryCtrl.DeleteCategory)

		admin.POST("/products", productCtrl.CreateProduct)
		admin.PATCH("/products/:id", productCtrl.UpdateProduct)
		admin.DELETE("/products/:id", productCtrl.DeleteProduct)

		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.GET("/orders/:id", orderCtrl.GetOrderByID)
	}
}
