package routes

import (
	"preptrack/controllers"
	"preptrack/middlewares"
	"preptrack/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(mgr *services.SessionManager, hub *services.RealtimeHub) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsConfig.AllowWebSockets = true
	r.Use(cors.New(corsConfig))

	r.GET("/health", controllers.Health)

	onboarding := controllers.NewOnboardingController(mgr)
	study := controllers.NewStudyController(mgr)
	meals := controllers.NewMealController(mgr)
	dashboard := controllers.NewDashboardController(mgr)
	stats := controllers.NewStatsController(mgr)
	realtime := controllers.NewRealtimeController(hub)

	// Every /api/v1 route runs behind the visitor-cookie identity.
	api := r.Group("/api/v1")
	api.Use(middlewares.SessionMiddleware())
	{
		api.POST("/onboarding", onboarding.Onboard)
		api.POST("/study", study.LogStudy)
		api.GET("/study/today", study.StudyToday)
		api.POST("/meals", meals.LogMeal)
		api.GET("/meals", meals.ListMeals)
		api.GET("/dashboard", dashboard.Dashboard)
		api.GET("/stats/weekly", stats.Weekly)
		api.GET("/events/ws", realtime.EventsWS)
	}

	return r
}
