package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go-agrilab/config"
	"go-agrilab/controllers"
	"go-agrilab/events"
	"go-agrilab/middleware"
	"go-agrilab/models"
	"go-agrilab/store"
	"go-agrilab/utils"
)

// SetupRouter 配置所有路由
func SetupRouter(cfg *config.Config, s *store.Store, publisher events.Publisher) (*gin.Engine, error) {
	r := gin.Default()
	r.Use(middleware.RequestLogger())
	r.Use(corsMiddleware(cfg.CORSOrigins))
	r.NoRoute(func(c *gin.Context) {
		utils.NotFoundResponse(c, "接口不存在")
	})

	resources := models.Resources()
	validator, err := models.NewValidator(resources...)
	if err != nil {
		return nil, err
	}

	r.GET("/healthz", controllers.Health(s))

	// 数据资源路由
	for _, resource := range resources {
		rc := controllers.NewResourceController(s, resource, validator, publisher)
		group := r.Group("/api/" + resource.Name)
		if cfg.RequireAuth {
			group.Use(middleware.WriteGuard(cfg.JWTSecret))
		}
		mountResource(group, rc)
	}

	// 用户认证相关路由
	authController := controllers.NewAuthController(s,
		controllers.NewPasswordHasher(cfg.PasswordStorage), cfg.JWTSecret, cfg.JWTTTL)
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.GET("/profile", authController.Profile)
	}

	return r, nil
}

// mountResource 挂载一个资源的增删改查接口，集合路径带不带结尾斜杠都可以访问
func mountResource(group *gin.RouterGroup, rc *controllers.ResourceController) {
	for _, root := range []string{"", "/"} {
		group.GET(root, rc.List)
		group.POST(root, rc.Create)
	}
	group.GET("/export", rc.Export)
	group.PUT("/:id", rc.Update)
	group.DELETE("/:id", rc.Delete)
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	conf := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader, "Content-Disposition"},
	}
	conf.AllowAllOrigins = len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			conf.AllowAllOrigins = true
		}
	}
	if !conf.AllowAllOrigins {
		conf.AllowOrigins = origins
	}
	return cors.New(conf)
}
