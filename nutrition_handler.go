package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DragosStezar/FitTrack/internal/nutrition"
)

// calculate runs the configured calculator and records the derived goal.
func (h *Handler) calculate(p *nutrition.Profile) (nutrition.Result, error) {
	result, err := h.calc.Calculate(p)
	if err != nil {
		return nutrition.Result{}, err
	}
	nutritionCalculations.WithLabelValues(result.Goal.String()).Inc()
	return result, nil
}

// calculateNutrition computes targets for an ad-hoc profile without storing it.
// POST /api/nutrition/calculate. Not gated on premium.
func (h *Handler) calculateNutrition(c *gin.Context) {
	var body profileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	in, err := body.validate()
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.calculate(in)
	if err != nil {
		h.log.WithError(err).Error("[calculateNutrition] calculation failed")
		apiError(c, http.StatusInternalServerError, "failed to calculate nutrition")
		return
	}

	c.JSON(http.StatusOK, calculationResponse{
		DerivedGoal:         result.Goal.String(),
		AdjustmentPercent:   result.AdjustmentPercent,
		CalculatedNutrition: result,
	})
}
