package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopping-mall/mall-api/controllers"
	"github.com/shopping-mall/mall-api/middlewares"
	"github.com/shopping-mall/mall-api/services"
	"github.com/shopping-mall/mall-api/utils"
)

type Dependencies struct {
	Tokens   *utils.TokenManager
	Users    *services.UserService
	Products *services.ProductService
	Carts    *services.CartService
	Orders   *services.OrderService
	DB       controllers.Pinger
}

// corsConfig allows the listed origins, or reflects any origin when none
// are configured.
func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middlewares.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middlewares.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		cfg.AllowOrigins = allowedOrigins
	} else {
		cfg.AllowOriginFunc = func(string) bool { return true }
	}
	return cfg
}

func NewServer(deps Dependencies, allowedOrigins []string) *gin.Engine {
	controllers.RegisterValidators()

	server := gin.New()
	server.Use(gin.Recovery(), middlewares.RequestLogger(), cors.New(corsConfig(allowedOrigins)))

	defaults := controllers.NewDefaultController(deps.DB)
	DefaultRoutes(server, defaults)

	api := server.Group("/api")
	api.GET("/health", defaults.Health)
	UserRoutes(api, controllers.NewUserController(deps.Users), deps.Tokens)
	AuthRoutes(api, controllers.NewAuthController(deps.Users, deps.Tokens), deps.Tokens)
	ProductRoutes(api, controllers.NewProductController(deps.Products), deps.Tokens)
	CartRoutes(api, controllers.NewCartController(deps.Carts), deps.Tokens)
	OrderRoutes(api, controllers.NewOrderController(deps.Orders), deps.Tokens)
	return server
}

func DefaultRoutes(server *gin.Engine, c *controllers.DefaultController) {
	server.GET("/", c.GetHome)
}

func UserRoutes(api *gin.RouterGroup, c *controllers.UserController, tokens *utils.TokenManager) {
	users := api.Group("/users")
	users.POST("", middlewares.OptionalAuth(tokens), c.Signup)

	authed := users.Group("", middlewares.RequireAuth(tokens))
	{
		authed.GET("/:id", c.Get)
		authed.PUT("/:id", c.Update)
		authed.PATCH("/:id", c.Update)
	}

	admin := users.Group("", middlewares.RequireAuth(tokens), middlewares.RequireAdmin())
	{
		admin.GET("", c.List)
		admin.GET("/email/:email", c.GetByEmail)
		admin.DELETE("/:id", c.Delete)
	}
}

func AuthRoutes(api *gin.RouterGroup, c *controllers.AuthController, tokens *utils.TokenManager) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", c.Login)
		auth.GET("/me", middlewares.RequireAuth(tokens), c.Me)
	}
}

func ProductRoutes(api *gin.RouterGroup, c *controllers.ProductController, tokens *utils.TokenManager) {
	products := api.Group("/products")
	products.GET("", c.List)
	products.GET("/:id", c.Get)

	admin := products.Group("", middlewares.RequireAuth(tokens), middlewares.RequireAdmin())
	{
		admin.POST("", c.Create)
		admin.PUT("/:id", c.Update)
		admin.PATCH("/:id", c.Update)
		admin.DELETE("/:id", c.Delete)
		admin.POST("/:id/image", c.UploadImage)
	}
}

func CartRoutes(api *gin.RouterGroup, c *controllers.CartController, tokens *utils.TokenManager) {
	carts := api.Group("/carts/:userId", middlewares.RequireAuth(tokens), middlewares.AuthorizeUserParam("userId"))
	{
		carts.GET("", c.Get)
		carts.DELETE("", c.Clear)
		carts.POST("/items", c.AddItem)
		carts.PUT("/items/:itemId", c.UpdateItem)
		carts.PATCH("/items/:itemId", c.UpdateItem)
		carts.DELETE("/items/:itemId", c.RemoveItem)
	}
}

func OrderRoutes(api *gin.RouterGroup, c *controllers.OrderController, tokens *utils.TokenManager) {
	orders := api.Group("/orders", middlewares.RequireAuth(tokens))

	admin := orders.Group("", middlewares.RequireAdmin())
	{
		admin.GET("", c.ListAll)
		admin.GET("/export", c.Export)
		admin.PUT("/detail/:orderId/status", c.UpdateStatus)
		admin.PATCH("/detail/:orderId/status", c.UpdateStatus)
		admin.DELETE("/detail/:orderId", c.Delete)
	}

	orders.GET("/detail/:orderId", c.Get)

	own := orders.Group("/:userId", middlewares.AuthorizeUserParam("userId"))
	{
		own.POST("", c.Create)
		own.GET("", c.ListForUser)
	}
}
