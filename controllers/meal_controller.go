package controllers

import (
	"time"

	"preptrack/models"
	"preptrack/services"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	Mgr *services.SessionManager
}

func NewMealController(mgr *services.SessionManager) *MealController {
	return &MealController{Mgr: mgr}
}

// LogMeal appends a meal entry and awards the flat bonus.
func (mc *MealController) LogMeal(c *gin.Context) {
	eng, ok := attachEngine(c, mc.Mgr)
	if !ok {
		return
	}

	var body struct {
		Item     string  `json:"item" binding:"required"`
		Calories float64 `json:"calories" binding:"gte=0"`
		Protein  float64 `json:"protein" binding:"gte=0"`
		Carbs    float64 `json:"carbs" binding:"gte=0"`
		Fat      float64 `json:"fat" binding:"gte=0"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	entry := eng.RecordMeal(models.MealEntry{
		Date:     time.Now(),
		Item:     body.Item,
		Calories: body.Calories,
		Protein:  body.Protein,
		Carbs:    body.Carbs,
		Fat:      body.Fat,
	})

	profile, _ := eng.Snapshot()
	c.JSON(201, gin.H{
		"entry":  entry,
		"xp":     profile.XP,
		"streak": profile.Streak,
	})
}

// ListMeals returns the session meal log, newest first.
func (mc *MealController) ListMeals(c *gin.Context) {
	eng, ok := attachEngine(c, mc.Mgr)
	if !ok {
		return
	}
	c.JSON(200, eng.Meals())
}
