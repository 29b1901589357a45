package routes

import (
	"civictriage-be/controllers"
	"civictriage-be/middlewares"

	"github.com/gin-gonic/gin"
)

// AuthRoutes sets up the authentication routes
func AuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", controllers.RegisterUser)
		auth.POST("/login", controllers.LoginUser)
		auth.GET("/me", middlewares.AuthMiddleware(), controllers.GetMe)
		auth.POST("/logout", controllers.LogoutUser)
	}
}

// UserRoutes sets up the user directory routes
func UserRoutes(r *gin.Engine) {
	r.GET("/api/users", middlewares.AuthMiddleware(), controllers.GetUsers)
}
