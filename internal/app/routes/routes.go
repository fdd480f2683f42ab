package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/gpacalc/internal/app/controllers"
	"github.com/yigit/gpacalc/internal/middleware"
	"github.com/yigit/gpacalc/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	gradingController *controllers.GradingController,
	sessionController *controllers.SessionController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public grading routes ---
	gradingRoutes := v1.Group("/grading")
	{
		gradingRoutes.GET("/scale", gradingController.GetScale)
		gradingRoutes.GET("/resolve", gradingController.Resolve)
		gradingRoutes.POST("/calculate", gradingController.Calculate)
	}

	// Starting a session needs no token; everything under /current does
	v1.POST("/sessions", sessionController.CreateSession)

	current := v1.Group("/sessions/current")
	current.Use(authMiddleware.SessionAuth())
	{
		current.GET("", sessionController.GetSession)
		current.DELETE("", sessionController.EndSession)
		current.PUT("/view", sessionController.SetView)
		current.GET("/result", sessionController.GetResult)
		current.GET("/chart", sessionController.GetChart)
		current.GET("/ws", wsHandler.HandleConnection)

		courses := current.Group("/terms/:term/courses")
		{
			courses.POST("", sessionController.AddCourse)
			courses.PATCH("/:id", sessionController.UpdateCourse)
			courses.DELETE("/:id", sessionController.RemoveCourse)
		}
	}
}
