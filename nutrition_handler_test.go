package main

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateNutrition(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantGoal    string
		wantPercent float64
		wantCal     float64
	}{
		{"maintenance", `{"gender":0,"age":30,"heightCm":180,"weightKg":80,"activityLevel":2}`, "Maintenance", 0, 2759},
		{"loss", `{"gender":0,"age":30,"heightCm":180,"weightKg":80,"activityLevel":2,"targetWeightKg":74}`, "WeightLoss", -10.5, 2469},
		{"gain", `{"gender":0,"age":30,"heightCm":180,"weightKg":80,"activityLevel":2,"targetWeightKg":95}`, "WeightGain", 15, 3173},
		{"capped gain", `{"gender":"male","age":30,"heightCm":180,"weightKg":80,"activityLevel":"moderately_active","targetWeightKg":120}`, "WeightGain", 25, 3449},
	}

	// The calculator endpoint does not need a premium account or a profile.
	env := setupTestEnv(t)
	token := signToken(t, testSecret, env.store.addUser(userTypeBasic), nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/api/nutrition/calculate", token, tt.body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var resp calculationResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantGoal, resp.DerivedGoal)
			assert.InDelta(t, tt.wantPercent, resp.AdjustmentPercent, 1e-9)
			assert.Equal(t, tt.wantCal, resp.CalculatedNutrition.GoalCalories)
			assert.Equal(t, 2759.0, resp.CalculatedNutrition.MaintenanceCalories)
		})
	}
	assert.Empty(t, env.store.profiles, "calculation must not persist anything")
	assert.Empty(t, env.events.published())
}

func TestCalculateNutrition_RejectsInvalidProfile(t *testing.T) {
	env := setupTestEnv(t)
	token := signToken(t, testSecret, env.store.addUser(userTypeBasic), nil)

	w := env.do(http.MethodPost, "/api/nutrition/calculate", token,
		`{"gender":0,"age":30,"heightCm":180,"weightKg":10,"activityLevel":2}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"weightKg must be between 20 and 300"}`, w.Body.String())

	w = env.do(http.MethodPost, "/api/nutrition/calculate", "", `{}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
