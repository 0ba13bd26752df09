package controllers

import (
	"time"

	"preptrack/services"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	Mgr *services.SessionManager
}

func NewStatsController(mgr *services.SessionManager) *StatsController {
	return &StatsController{Mgr: mgr}
}

// Weekly returns the last seven days of study minutes, oldest first.
func (tc *StatsController) Weekly(c *gin.Context) {
	eng, ok := attachEngine(c, tc.Mgr)
	if !ok {
		return
	}
	c.JSON(200, gin.H{"days": eng.WeeklyStudyMinutes(time.Now())})
}
