package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/api/pkg/auth"
)

// NewRouter registers the full API surface. Route paths are the external
// contract; changing them breaks clients.
func NewRouter(authH *AuthHandler, profileH *ProfileHandler, postH *PostHandler, jwtSvc *auth.JWTService) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	authMiddleware := AuthMiddleware(jwtSvc)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		api.POST("/users", authH.Register)

		api.POST("/auth", authH.Login)
		api.GET("/auth", authMiddleware, authH.CurrentUser)

		profileGroup := api.Group("/profile")
		{
			profileGroup.GET("", profileH.GetAll)
			profileGroup.GET("/me", authMiddleware, profileH.GetMine)
			profileGroup.GET("/user/:user_id", profileH.GetByUserID)
			profileGroup.GET("/github/:username", profileH.GithubRepos)
			profileGroup.POST("", authMiddleware, profileH.Upsert)
			profileGroup.DELETE("", authMiddleware, authH.DeleteAccount)
			profileGroup.PUT("/experience", authMiddleware, profileH.AddExperience)
			profileGroup.DELETE("/experience/:exp_id", authMiddleware, profileH.RemoveExperience)
			profileGroup.PUT("/education", authMiddleware, profileH.AddEducation)
			profileGroup.DELETE("/education/:edu_id", authMiddleware, profileH.RemoveEducation)
		}

		postGroup := api.Group("/posts")
		postGroup.Use(authMiddleware)
		{
			postGroup.POST("", postH.Create)
			postGroup.GET("", postH.ListAll)
			postGroup.GET("/:post_id", postH.GetByID)
			postGroup.DELETE("/:post_id", postH.Delete)
			postGroup.PUT("/like/:post_id", postH.Like)
			postGroup.PUT("/unlike/:post_id", postH.Unlike)
			postGroup.POST("/comment/:post_id", postH.AddComment)
			postGroup.DELETE("/comment/:post_id/:comment_id", postH.RemoveComment)
		}
	}

	return router
}
