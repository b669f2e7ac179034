package main

import (
	"time"

	"github.com/google/uuid"

	"github.com/DragosStezar/FitTrack/internal/nutrition"
)

/* ─── Domain structs ─────────────────────────────────────────────────── */

const (
	userTypeBasic   = "basic"
	userTypePremium = "premium"
)

// user maps to the users table. Credentials live with the identity provider,
// not here.
type user struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	UserType  string    `json:"user_type" db:"user_type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (u user) isPremium() bool { return u.UserType == userTypePremium }

// userProfile maps to user_profiles (one row per user, keyed by user_id).
// Enums are stored as their integer values.
type userProfile struct {
	UserID         uuid.UUID `db:"user_id"`
	Gender         int       `db:"gender"`
	Age            int       `db:"age"`
	HeightCm       float64   `db:"height_cm"`
	WeightKg       float64   `db:"weight_kg"`
	ActivityLevel  int       `db:"activity_level"`
	TargetWeightKg *float64  `db:"target_weight_kg"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// nutritionProfile converts the stored row into calculator input.
func (p userProfile) nutritionProfile() *nutrition.Profile {
	return &nutrition.Profile{
		Gender:         nutrition.Gender(p.Gender),
		Age:            p.Age,
		HeightCm:       p.HeightCm,
		WeightKg:       p.WeightKg,
		ActivityLevel:  nutrition.ActivityLevel(p.ActivityLevel),
		TargetWeightKg: p.TargetWeightKg,
	}
}

/* ─── Request / response types ───────────────────────────────────────── */

// profileRequest is the body of PUT /api/userprofile/me and
// POST /api/nutrition/calculate. Pointer fields tell "missing" apart from zero;
// everything except targetWeightKg is required.
type profileRequest struct {
	Gender         *nutrition.Gender        `json:"gender"`
	Age            *int                     `json:"age"`
	HeightCm       *float64                 `json:"heightCm"`
	WeightKg       *float64                 `json:"weightKg"`
	ActivityLevel  *nutrition.ActivityLevel `json:"activityLevel"`
	TargetWeightKg *float64                 `json:"targetWeightKg"`
}

// userProfileResponse is returned by GET and PUT /api/userprofile/me.
type userProfileResponse struct {
	UserID              uuid.UUID               `json:"userId"`
	Gender              nutrition.Gender        `json:"gender"`
	Age                 int                     `json:"age"`
	HeightCm            float64                 `json:"heightCm"`
	WeightKg            float64                 `json:"weightKg"`
	ActivityLevel       nutrition.ActivityLevel `json:"activityLevel"`
	TargetWeightKg      *float64                `json:"targetWeightKg"`
	CalculatedNutrition nutrition.Result        `json:"calculatedNutrition"`
}

// calculationResponse is returned by POST /api/nutrition/calculate.
type calculationResponse struct {
	DerivedGoal         string           `json:"derivedGoal"`
	AdjustmentPercent   float64          `json:"adjustmentPercent"`
	CalculatedNutrition nutrition.Result `json:"calculatedNutrition"`
}

func newUserProfileResponse(p userProfile, result nutrition.Result) userProfileResponse {
	return userProfileResponse{
		UserID:              p.UserID,
		Gender:              nutrition.Gender(p.Gender),
		Age:                 p.Age,
		HeightCm:            p.HeightCm,
		WeightKg:            p.WeightKg,
		ActivityLevel:       nutrition.ActivityLevel(p.ActivityLevel),
		TargetWeightKg:      p.TargetWeightKg,
		CalculatedNutrition: result,
	}
}
