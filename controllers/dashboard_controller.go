// controllers/dashboard_controller.go
package controllers

import (
	"time"

	"preptrack/services"
	"preptrack/utils"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Mgr *services.SessionManager
}

func NewDashboardController(mgr *services.SessionManager) *DashboardController {
	return &DashboardController{Mgr: mgr}
}

// Dashboard bundles the ribbon counters, today's goal progress, the focus
// section of the day and the onboarding echo fields into one response.
func (dc *DashboardController) Dashboard(c *gin.Context) {
	eng, ok := attachEngine(c, dc.Mgr)
	if !ok {
		return
	}

	now := time.Now()
	profile, goal := eng.Snapshot()
	c.JSON(200, gin.H{
		"name":              profile.Name,
		"exam_date":         profile.ExamDate,
		"target_percentile": profile.TargetPercentile,
		"macro_goal":        profile.MacroGoal,
		"ribbon": gin.H{
			"xp":             profile.XP,
			"streak":         profile.Streak,
			"streak_shields": profile.StreakShields,
		},
		"today": gin.H{
			"minutes":        eng.MinutesLoggedOn(now),
			"target_minutes": goal.DailyTargetMinutes,
			"percent":        eng.GoalProgressPercent(now),
			"focus_section":  utils.FocusSection(now),
			"celebrated":     eng.CelebratedToday(now),
		},
	})
}
