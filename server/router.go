package server

import (
	"net/http"
	"time"

	"tubenotes/domain/repository"
	"tubenotes/infrastructure/configuration"
	httpHandler "tubenotes/interfaces/http"
	"tubenotes/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitiateRouter(
	bookmarkHandler httpHandler.IBookmarkHandler,
	videoHandler httpHandler.IVideoHandler,
	authHandler httpHandler.IAuthHandler,
	userRepository repository.IUser,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	origins := configuration.C.Cors.Origins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "https://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// OAuth endpoints stay outside the auth gate; they mint the credential.
	if authHandler != nil {
		router.GET("/auth/google", authHandler.GetAuthURL)
		router.GET("/auth/google/callback", authHandler.Callback)
	}

	router.POST("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("api")
	api.Use(middleware.Auth(userRepository, configuration.C.App.SecretKey))

	if authHandler != nil {
		api.GET("/auth/status", authHandler.Status)
	}

	bookmark := api.Group("/bookmark")
	{
		bookmark.POST("", bookmarkHandler.CreateNote)
		bookmark.GET("/:videoId", bookmarkHandler.GetNotes)
		bookmark.PATCH("/:videoId/:noteIdx", bookmarkHandler.EditNote)
		bookmark.PATCH("/:videoId/:noteIdx/like", bookmarkHandler.ToggleLike)
		bookmark.GET("/:videoId/screenshots", bookmarkHandler.GetScreenshots)
		bookmark.DELETE("/:videoId/:noteIdx", bookmarkHandler.DeleteNote)
		// gin cannot mix a literal "screenshots" segment with the :noteIdx
		// wildcard in the DELETE tree; the handler checks the segment value.
		bookmark.DELETE("/:videoId/:noteIdx/:idx", bookmarkHandler.DeleteScreenshot)
	}

	videos := api.Group("/videos")
	{
		videos.GET("", videoHandler.ListVideos)
		videos.PATCH("/:videoId/favorite", videoHandler.ToggleFavorite)
		videos.DELETE("/:videoId", videoHandler.DeleteVideo)
	}

	return router
}
