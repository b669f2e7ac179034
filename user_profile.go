package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DragosStezar/FitTrack/internal/nutrition"
)

// Accepted ranges for profile fields. The calculator itself does not check
// its inputs, so everything that reaches it goes through validate first.
const (
	minAge, maxAge       = 1, 130
	minHeight, maxHeight = 50.0, 250.0
	minWeight, maxWeight = 20.0, 300.0
)

// validate checks required fields, ranges and enum values and returns the
// calculator input on success.
func (r profileRequest) validate() (*nutrition.Profile, error) {
	switch {
	case r.Gender == nil:
		return nil, errors.New("gender is required")
	case r.Age == nil:
		return nil, errors.New("age is required")
	case r.HeightCm == nil:
		return nil, errors.New("heightCm is required")
	case r.WeightKg == nil:
		return nil, errors.New("weightKg is required")
	case r.ActivityLevel == nil:
		return nil, errors.New("activityLevel is required")
	}

	if !r.Gender.Valid() {
		return nil, errors.New("gender must be Male (0) or Female (1)")
	}
	if !r.ActivityLevel.Valid() {
		return nil, errors.New("activityLevel must be between 0 (Sedentary) and 4 (ExtraActive)")
	}
	if *r.Age < minAge || *r.Age > maxAge {
		return nil, fmt.Errorf("age must be between %d and %d", minAge, maxAge)
	}
	if *r.HeightCm < minHeight || *r.HeightCm > maxHeight {
		return nil, fmt.Errorf("heightCm must be between %g and %g", minHeight, maxHeight)
	}
	if *r.WeightKg < minWeight || *r.WeightKg > maxWeight {
		return nil, fmt.Errorf("weightKg must be between %g and %g", minWeight, maxWeight)
	}
	if r.TargetWeightKg != nil && (*r.TargetWeightKg < minWeight || *r.TargetWeightKg > maxWeight) {
		return nil, fmt.Errorf("targetWeightKg must be between %g and %g", minWeight, maxWeight)
	}

	return &nutrition.Profile{
		Gender:         *r.Gender,
		Age:            *r.Age,
		HeightCm:       *r.HeightCm,
		WeightKg:       *r.WeightKg,
		ActivityLevel:  *r.ActivityLevel,
		TargetWeightKg: r.TargetWeightKg,
	}, nil
}

// getMyProfile returns the stored profile with freshly computed nutrition.
// GET /api/userprofile/me.
func (h *Handler) getMyProfile(c *gin.Context) {
	u, ok := h.loadProfileOwner(c)
	if !ok {
		return
	}

	p, err := h.store.GetProfile(c.Request.Context(), u.ID)
	if errors.Is(err, errNotFound) {
		apiError(c, http.StatusNotFound, "user profile not found, please create one")
		return
	}
	if err != nil {
		h.log.WithError(err).WithField("user_id", u.ID).Error("[getMyProfile] profile lookup failed")
		apiError(c, http.StatusInternalServerError, "failed to load profile")
		return
	}

	result, err := h.calculate(p.nutritionProfile())
	if err != nil {
		h.log.WithError(err).WithField("user_id", u.ID).Error("[getMyProfile] calculation failed")
		apiError(c, http.StatusInternalServerError, "failed to calculate nutrition")
		return
	}

	c.JSON(http.StatusOK, newUserProfileResponse(p, result))
}

// putMyProfile creates or replaces the authenticated user's profile.
// PUT /api/userprofile/me. Responds 201 when the profile was created and 200
// when an existing one was replaced.
func (h *Handler) putMyProfile(c *gin.Context) {
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

	u, ok := h.loadProfileOwner(c)
	if !ok {
		return
	}

	saved, created, err := h.store.UpsertProfile(c.Request.Context(), userProfile{
		UserID:         u.ID,
		Gender:         int(in.Gender),
		Age:            in.Age,
		HeightCm:       in.HeightCm,
		WeightKg:       in.WeightKg,
		ActivityLevel:  int(in.ActivityLevel),
		TargetWeightKg: in.TargetWeightKg,
	})
	if err != nil {
		h.log.WithError(err).WithField("user_id", u.ID).Error("[putMyProfile] save failed")
		apiError(c, http.StatusInternalServerError, "an error occurred while saving the profile")
		return
	}

	result, err := h.calculate(saved.nutritionProfile())
	if err != nil {
		h.log.WithError(err).WithField("user_id", u.ID).Error("[putMyProfile] calculation failed")
		apiError(c, http.StatusInternalServerError, "failed to calculate nutrition")
		return
	}

	h.publishProfileUpdated(c.Request.Context(), saved, result, created)

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		c.Header("Location", "/api/userprofile/me")
	}
	c.JSON(status, newUserProfileResponse(saved, result))
}
