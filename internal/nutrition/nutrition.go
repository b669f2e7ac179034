// Package nutrition computes daily energy and macronutrient targets from a
// body-metrics profile. Everything here is pure arithmetic: no I/O, no shared
// state, safe to call from any number of goroutines.
package nutrition

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	kcalPerProteinGram = 4.0
	kcalPerCarbGram    = 4.0
	kcalPerFatGram     = 9.0

	proteinPerKgWeightLoss  = 1.8
	proteinPerKgMaintenance = 1.6
	proteinPerKgWeightGain  = 2.0

	fatCalorieShare = 0.25

	// Scaled adjustment: a flat 10% up to 5kg of change, then 0.5% per extra kg,
	// never more than 25% either way.
	baseAdjustment      = 0.10
	adjustmentPerKg     = 0.005
	maxAdjustment       = 0.25
	baseAdjustmentLimit = 5.0

	flatLossCalories = -500.0
	flatGainCalories = 300.0
)

// ErrInvalidArgument is returned when Calculate is called without a profile.
var ErrInvalidArgument = errors.New("nutrition: profile is required")

// activityFactors maps each activity level to its TDEE multiplier.
var activityFactors = map[ActivityLevel]float64{
	Sedentary:        1.2,
	LightlyActive:    1.375,
	ModeratelyActive: 1.55,
	VeryActive:       1.725,
	ExtraActive:      1.9,
}

// Profile is the body-metrics input. TargetWeightKg is nil when the user has
// not set a target, which means maintenance.
type Profile struct {
	Gender         Gender
	Age            int
	HeightCm       float64
	WeightKg       float64
	ActivityLevel  ActivityLevel
	TargetWeightKg *float64
}

// Result holds the daily targets. Calorie and gram values are rounded to the
// nearest whole unit, halves to even; Goal and AdjustmentPercent describe how the goal
// calories were derived and are not part of the serialized nutrition block.
type Result struct {
	MaintenanceCalories float64 `json:"maintenanceCalories"`
	GoalCalories        float64 `json:"goalCalories"`
	ProteinGrams        float64 `json:"proteinGrams"`
	CarbGrams           float64 `json:"carbGrams"`
	FatGrams            float64 `json:"fatGrams"`

	Goal              Goal    `json:"-"`
	AdjustmentPercent float64 `json:"-"`
}

// AdjustmentPolicy turns TDEE and the target-minus-current weight delta (kg)
// into goal calories.
type AdjustmentPolicy func(tdee, deltaKg float64) float64

// ScaledAdjustment applies AdjustmentFraction of TDEE.
func ScaledAdjustment(tdee, deltaKg float64) float64 {
	return tdee * (1 + AdjustmentFraction(deltaKg))
}

// FlatAdjustment subtracts 500 kcal for any loss and adds 300 kcal for any
// gain regardless of how far away the target is.
func FlatAdjustment(tdee, deltaKg float64) float64 {
	switch {
	case deltaKg < 0:
		return tdee + flatLossCalories
	case deltaKg > 0:
		return tdee + flatGainCalories
	default:
		return tdee
	}
}

// PolicyByName resolves "scaled" (the default, also for "") or "flat".
func PolicyByName(name string) (AdjustmentPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "scaled":
		return ScaledAdjustment, nil
	case "flat":
		return FlatAdjustment, nil
	default:
		return nil, fmt.Errorf("unknown adjustment policy %q", name)
	}
}

// Calculator evaluates profiles with a fixed adjustment policy.
type Calculator struct {
	adjust AdjustmentPolicy
}

// NewCalculator returns a Calculator using policy, or ScaledAdjustment when
// policy is nil.
func NewCalculator(policy AdjustmentPolicy) *Calculator {
	if policy == nil {
		policy = ScaledAdjustment
	}
	return &Calculator{adjust: policy}
}

var defaultCalculator = NewCalculator(ScaledAdjustment)

// Calculate evaluates p with the scaled adjustment policy.
func Calculate(p *Profile) (Result, error) {
	return defaultCalculator.Calculate(p)
}

// Calculate computes BMR, TDEE, goal calories and the macro split for p.
// Inputs are not range-checked; that is the caller's job.
func (c *Calculator) Calculate(p *Profile) (Result, error) {
	if p == nil {
		return Result{}, ErrInvalidArgument
	}

	tdee := BMR(p.Gender, p.WeightKg, p.HeightCm, p.Age) * ActivityFactor(p.ActivityLevel)

	goal := DeriveGoal(p.WeightKg, p.TargetWeightKg)
	goalCalories := c.adjust(tdee, targetDelta(p.WeightKg, p.TargetWeightKg))

	protein, carbs, fat := macroSplit(goalCalories, p.WeightKg, goal)

	adjustmentPercent := 0.0
	if tdee != 0 {
		adjustmentPercent = math.Round((goalCalories/tdee-1)*1000) / 10
	}

	return Result{
		MaintenanceCalories: math.RoundToEven(tdee),
		GoalCalories:        math.RoundToEven(goalCalories),
		ProteinGrams:        math.RoundToEven(protein),
		CarbGrams:           math.RoundToEven(carbs),
		FatGrams:            math.RoundToEven(fat),
		Goal:                goal,
		AdjustmentPercent:   adjustmentPercent,
	}, nil
}

// BMR is the Mifflin-St Jeor basal metabolic rate in kcal/day.
func BMR(gender Gender, weightKg, heightCm float64, age int) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == Male {
		return bmr + 5
	}
	return bmr - 161
}

// ActivityFactor returns the TDEE multiplier for level. Unknown levels fall
// back to the sedentary factor.
func ActivityFactor(level ActivityLevel) float64 {
	if f, ok := activityFactors[level]; ok {
		return f
	}
	return activityFactors[Sedentary]
}

// DeriveGoal reports the goal implied by a current and optional target weight.
func DeriveGoal(weightKg float64, targetWeightKg *float64) Goal {
	return goalForDelta(targetDelta(weightKg, targetWeightKg))
}

// targetDelta is the signed distance to the target weight, zero without one.
func targetDelta(weightKg float64, targetWeightKg *float64) float64 {
	if targetWeightKg == nil {
		return 0
	}
	return *targetWeightKg - weightKg
}

func goalForDelta(deltaKg float64) Goal {
	switch {
	case deltaKg < 0:
		return WeightLoss
	case deltaKg > 0:
		return WeightGain
	default:
		return Maintenance
	}
}

// AdjustmentFraction is the signed fraction of TDEE added for a weight delta:
// ±10% up to 5kg, then ±0.5% per additional kg, capped at ±25%.
func AdjustmentFraction(deltaKg float64) float64 {
	if deltaKg == 0 {
		return 0
	}
	magnitude := math.Abs(deltaKg)
	fraction := baseAdjustment
	if magnitude > baseAdjustmentLimit {
		fraction += adjustmentPerKg * (magnitude - baseAdjustmentLimit)
	}
	fraction = math.Min(fraction, maxAdjustment)
	if deltaKg < 0 {
		return -fraction
	}
	return fraction
}

// macroSplit returns unrounded protein, carb and fat grams. Carbs take
// whatever protein and fat leave over and are clamped at zero.
func macroSplit(goalCalories, weightKg float64, goal Goal) (protein, carbs, fat float64) {
	protein = weightKg * proteinPerKg(goal)
	fatCalories := goalCalories * fatCalorieShare
	fat = fatCalories / kcalPerFatGram

	carbs = (goalCalories - protein*kcalPerProteinGram - fatCalories) / kcalPerCarbGram
	if carbs < 0 {
		carbs = 0
	}
	return protein, carbs, fat
}

func proteinPerKg(goal Goal) float64 {
	switch goal {
	case WeightLoss:
		return proteinPerKgWeightLoss
	case WeightGain:
		return proteinPerKgWeightGain
	default:
		return proteinPerKgMaintenance
	}
}
