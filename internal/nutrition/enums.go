package nutrition

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Gender selects the Mifflin-St Jeor constant.
type Gender int

const (
	Male Gender = iota
	Female
)

// ActivityLevel selects the TDEE multiplier.
type ActivityLevel int

const (
	Sedentary ActivityLevel = iota
	LightlyActive
	ModeratelyActive
	VeryActive
	ExtraActive
)

// Goal is derived from the difference between target and current weight.
// The numeric values match what the web client already sends and stores.
type Goal int

const (
	WeightLoss Goal = iota
	Maintenance
	WeightGain
)

var genderNames = map[Gender]string{
	Male:   "Male",
	Female: "Female",
}

var activityNames = map[ActivityLevel]string{
	Sedentary:        "Sedentary",
	LightlyActive:    "LightlyActive",
	ModeratelyActive: "ModeratelyActive",
	VeryActive:       "VeryActive",
	ExtraActive:      "ExtraActive",
}

var goalNames = map[Goal]string{
	WeightLoss:  "WeightLoss",
	Maintenance: "Maintenance",
	WeightGain:  "WeightGain",
}

func (g Gender) String() string {
	if name, ok := genderNames[g]; ok {
		return name
	}
	return fmt.Sprintf("Gender(%d)", int(g))
}

// Valid reports whether g is one of the known genders.
func (g Gender) Valid() bool {
	_, ok := genderNames[g]
	return ok
}

func (a ActivityLevel) String() string {
	if name, ok := activityNames[a]; ok {
		return name
	}
	return fmt.Sprintf("ActivityLevel(%d)", int(a))
}

// Valid reports whether a has an entry in the activity factor table.
func (a ActivityLevel) Valid() bool {
	_, ok := activityNames[a]
	return ok
}

func (g Goal) String() string {
	if name, ok := goalNames[g]; ok {
		return name
	}
	return fmt.Sprintf("Goal(%d)", int(g))
}

// ParseGender accepts "male"/"female" in any case.
func ParseGender(s string) (Gender, error) {
	for g, name := range genderNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown gender %q", s)
}

// ParseActivityLevel accepts the level names in any case, with or without
// underscores ("moderately_active" and "ModeratelyActive" are equivalent).
func ParseActivityLevel(s string) (ActivityLevel, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	for a, name := range activityNames {
		if strings.EqualFold(name, normalized) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown activity level %q", s)
}

// UnmarshalJSON accepts either the numeric enum value or its name.
func (g *Gender) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*g = Gender(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("gender must be a number or a name: %w", err)
	}
	parsed, err := ParseGender(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// UnmarshalJSON accepts either the numeric enum value or its name.
func (a *ActivityLevel) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*a = ActivityLevel(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("activity level must be a number or a name: %w", err)
	}
	parsed, err := ParseActivityLevel(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
