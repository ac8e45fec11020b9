package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "pressfeed/internal/app"
	"pressfeed/internal/bootstrap"
	"pressfeed/internal/imagestore"
	"pressfeed/internal/platform/rabbitmq"
	"pressfeed/internal/repository"
	"pressfeed/internal/transport/http/handler"
	"pressfeed/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.Postgres)
	articleRepo := repository.NewArticleRepository(app.Postgres, app.Config.Search.Language)
	userImages := imagestore.NewStore(app.Redis, "user")
	articleImages := imagestore.NewStore(app.Redis, "article")
	purgePublisher := rabbitmq.NewPurgePublisher(app.MQConn, app.Config.RabbitMQ.ImagePurgeQueue)

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
		app.Config.Auth.BcryptCost,
	)
	feedService := appsvc.NewFeedService(articleRepo, articleImages, purgePublisher, app.Log)
	userService := appsvc.NewUserService(userRepo, userImages)

	authHandler := handler.NewAuthHandler(authService)
	feedHandler := handler.NewFeedHandler(feedService)
	userHandler := handler.NewUserHandler(userService)

	authRequired := middleware.AuthJWT(app.Config.Auth.JWTSecret)

	v1 := router.Group("/api/v1")
	authGroup := v1.Group("/auth")
	authGroup.POST("/sign_up", authHandler.SignUp)
	authGroup.POST("/sign_in", authHandler.SignIn)
	authGroup.POST("/change_password", authRequired, authHandler.ChangePassword)

	feedGroup := v1.Group("/feed")
	feedGroup.Use(authRequired)
	feedGroup.GET("/articles", feedHandler.ListAnnouncements)
	feedGroup.GET("/article", feedHandler.GetArticle)
	feedGroup.GET("/article_full", feedHandler.GetArticleFull)
	feedGroup.POST("/articles", feedHandler.CreateArticle)
	feedGroup.PUT("/article", feedHandler.UpdateArticle)
	feedGroup.DELETE("/article", feedHandler.DeleteArticle)
	feedGroup.GET("/search", feedHandler.Search)
	feedGroup.PUT("/images", feedHandler.AddImages)
	feedGroup.DELETE("/images", feedHandler.RemoveImages)
	feedGroup.GET("/images", feedHandler.ListImages)
	feedGroup.GET("/image", feedHandler.GetImage)

	usersGroup := v1.Group("/users")
	usersGroup.Use(authRequired)
	usersGroup.GET("/author", userHandler.GetAuthor)
	usersGroup.POST("/description", userHandler.UpdateDescription)
	usersGroup.PUT("/images", userHandler.AddImages)
	usersGroup.GET("/images", userHandler.ListImages)
	usersGroup.GET("/image", userHandler.GetImage)
	usersGroup.POST("/image", userHandler.ReplaceImage)

	return router
}
