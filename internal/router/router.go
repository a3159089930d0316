package router

import (
	"net/http"

	"gamelibrary/backend/internal/handler"
	"gamelibrary/backend/internal/middleware"
	"gamelibrary/backend/internal/monitoring"
	"gamelibrary/backend/internal/service"
	"gamelibrary/backend/internal/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	_ "gamelibrary/backend/docs" // registers the swagger document

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Deps are the collaborators the routes need.
type Deps struct {
	DB             *gorm.DB
	Log            *logrus.Logger
	AllowedOrigins []string
}

// New builds the gin engine with every route registered.
func New(deps Deps) (*gin.Engine, error) {
	games := service.NewGameService(deps.DB)
	catalog := service.NewCatalogService(deps.DB)

	pages := handler.NewPageHandler(games, catalog, deps.Log)
	gameAPI := handler.NewGameHandler(games, deps.Log)
	catalogAPI := handler.NewCatalogHandler(catalog, deps.Log)
	health := handler.NewHealthHandler(deps.DB)
	metrics := monitoring.NewMetrics(deps.DB)

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(deps.Log), metrics.Middleware(), corsMiddleware(deps.AllowedOrigins))
	router.SetHTMLTemplate(tmpl)

	// System routes
	router.GET("/healthz", health.CheckHealth)
	router.GET("/metrics", metrics.Handler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// HTML pages
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/games")
	})
	pageRoutes := router.Group("/games")
	{
		pageRoutes.GET("", pages.Index)
		pageRoutes.GET("/newest", pages.Newest)
		pageRoutes.GET("/details/:id", pages.Details)
		pageRoutes.GET("/create", pages.CreateForm)
		pageRoutes.POST("/create", pages.Create)
		pageRoutes.GET("/edit/:id", pages.EditForm)
		pageRoutes.POST("/edit/:id", pages.Edit)
		pageRoutes.GET("/delete/:id", pages.DeleteConfirm)
		pageRoutes.POST("/delete/:id", pages.Delete)
	}

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		gameRoutes := apiV1.Group("/games")
		{
			gameRoutes.GET("", gameAPI.GetGames)
			gameRoutes.GET("/newest", gameAPI.GetNewestGames) // Must be before /:id
			gameRoutes.GET("/:id", gameAPI.GetGameByID)
			gameRoutes.POST("", gameAPI.CreateGame)
			gameRoutes.PUT("/:id", gameAPI.UpdateGame)
			gameRoutes.DELETE("/:id", gameAPI.DeleteGame)
		}

		apiV1.GET("/genres", catalogAPI.GetGenres)
		apiV1.POST("/genres", catalogAPI.CreateGenre)
		apiV1.GET("/platforms", catalogAPI.GetPlatforms)
		apiV1.POST("/platforms", catalogAPI.CreatePlatform)
	}

	return router, nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
