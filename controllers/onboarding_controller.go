// controllers/onboarding_controller.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"preptrack/services"

	"github.com/gin-gonic/gin"
)

type OnboardingController struct {
	Mgr *services.SessionManager
}

func NewOnboardingController(mgr *services.SessionManager) *OnboardingController {
	return &OnboardingController{Mgr: mgr}
}

// Onboard creates the visitor's profile and goal config. One profile per
// visitor; a second call answers 409.
func (oc *OnboardingController) Onboard(c *gin.Context) {
	id, ok := visitorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing visitor identity"})
		return
	}

	var req struct {
		Name             string `json:"name" binding:"required"`
		GoalPreset       string `json:"goal_preset" binding:"required,oneof=Light Regular Intense"`
		ExamDate         string `json:"exam_date"`
		TargetPercentile int    `json:"target_percentile" binding:"omitempty,gte=70,lte=100"`
		MacroGoal        string `json:"macro_goal" binding:"omitempty,oneof=Cut Bulk Maintain"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ExamDate != "" {
		if _, err := time.Parse("2006-01-02", req.ExamDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid exam_date format. Use YYYY-MM-DD"})
			return
		}
	}

	eng, err := oc.Mgr.Onboard(id, services.OnboardingInput{
		Name:             req.Name,
		ExamDate:         req.ExamDate,
		TargetPercentile: req.TargetPercentile,
		MacroGoal:        req.MacroGoal,
		GoalPreset:       req.GoalPreset,
	})
	if err != nil {
		if errors.Is(err, services.ErrAlreadyOnboarded) {
			c.JSON(http.StatusConflict, gin.H{"error": "already onboarded"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, goal := eng.Snapshot()
	c.JSON(http.StatusCreated, gin.H{
		"profile":              profile,
		"daily_target_minutes": goal.DailyTargetMinutes,
	})
}
