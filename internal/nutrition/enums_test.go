package nutrition

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActivityLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    ActivityLevel
		wantErr bool
	}{
		{"sedentary", Sedentary, false},
		{"LightlyActive", LightlyActive, false},
		{"moderately_active", ModeratelyActive, false},
		{" VERY_ACTIVE ", VeryActive, false},
		{"extraactive", ExtraActive, false},
		{"couch", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseActivityLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseGender(t *testing.T) {
	g, err := ParseGender("FEMALE")
	require.NoError(t, err)
	assert.Equal(t, Female, g)

	_, err = ParseGender("other")
	assert.Error(t, err)
}

func TestEnumsUnmarshalNumbersAndNames(t *testing.T) {
	var body struct {
		Gender        Gender        `json:"gender"`
		ActivityLevel ActivityLevel `json:"activityLevel"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"gender":1,"activityLevel":3}`), &body))
	assert.Equal(t, Female, body.Gender)
	assert.Equal(t, VeryActive, body.ActivityLevel)

	require.NoError(t, json.Unmarshal([]byte(`{"gender":"male","activityLevel":"lightly_active"}`), &body))
	assert.Equal(t, Male, body.Gender)
	assert.Equal(t, LightlyActive, body.ActivityLevel)

	assert.Error(t, json.Unmarshal([]byte(`{"gender":"robot"}`), &body))
	assert.Error(t, json.Unmarshal([]byte(`{"activityLevel":true}`), &body))
}

func TestValidRejectsOutOfRange(t *testing.T) {
	assert.True(t, Female.Valid())
	assert.False(t, Gender(2).Valid())
	assert.True(t, ExtraActive.Valid())
	assert.False(t, ActivityLevel(5).Valid())
	assert.Equal(t, "WeightGain", WeightGain.String())
	assert.Equal(t, "Goal(9)", Goal(9).String())
}
