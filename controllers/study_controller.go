package controllers

import (
	"time"

	"preptrack/services"

	"github.com/gin-gonic/gin"
)

type StudyController struct {
	Mgr *services.SessionManager
}

func NewStudyController(mgr *services.SessionManager) *StudyController {
	return &StudyController{Mgr: mgr}
}

// LogStudy records a block of study minutes, awards XP and reports the
// updated day totals. The celebration flag is true only on the call that
// first completes the daily goal.
func (sc *StudyController) LogStudy(c *gin.Context) {
	eng, ok := attachEngine(c, sc.Mgr)
	if !ok {
		return
	}

	var req struct {
		Minutes int `json:"minutes" binding:"required,gt=0,lte=180"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	entry := eng.RecordStudyMinutes(req.Minutes, now)
	celebrated := eng.CelebrateGoalIfMet(now)

	profile, goal := eng.Snapshot()
	c.JSON(201, gin.H{
		"entry":          entry,
		"today_minutes":  eng.MinutesLoggedOn(now),
		"target_minutes": goal.DailyTargetMinutes,
		"percent":        eng.GoalProgressPercent(now),
		"xp":             profile.XP,
		"streak":         profile.Streak,
		"celebrated":     celebrated,
	})
}

// StudyToday reports progress against the daily goal.
func (sc *StudyController) StudyToday(c *gin.Context) {
	eng, ok := attachEngine(c, sc.Mgr)
	if !ok {
		return
	}

	now := time.Now()
	_, goal := eng.Snapshot()
	c.JSON(200, gin.H{
		"minutes":        eng.MinutesLoggedOn(now),
		"target_minutes": goal.DailyTargetMinutes,
		"percent":        eng.GoalProgressPercent(now),
	})
}

// --- helpers ---

func visitorID(c *gin.Context) (string, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// attachEngine resolves the visitor's engine, answering for the error cases
// so handlers can bail with a plain return.
func attachEngine(c *gin.Context, mgr *services.SessionManager) (*services.ProgressEngine, bool) {
	id, ok := visitorID(c)
	if !ok {
		c.JSON(401, gin.H{"error": "missing visitor identity"})
		return nil, false
	}
	eng, err := mgr.Attach(id)
	if err != nil {
		c.JSON(409, gin.H{"error": "onboarding required"})
		return nil, false
	}
	return eng, true
}
