package routes

import (
	"civictriage-be/controllers"
	"civictriage-be/middlewares"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue lifecycle routes
func IssueRoutes(r *gin.Engine, ic *controllers.IssueController) {
	issues := r.Group("/api/issues")
	{
		issues.GET("", ic.GetIssues)
		issues.PUT("", middlewares.AuthMiddleware(), ic.UpdateIssues)
		issues.POST("/triage", ic.TriageIssue)
		issues.GET("/recent", ic.RecentIssues)
		issues.GET("/analytics", ic.GetIssueAnalytics)
		issues.GET("/:id", ic.GetIssue)
		issues.POST("/:id/flags", middlewares.AuthMiddleware(), middlewares.FlagRateLimiter(10), ic.FlagIssue)
	}
}
