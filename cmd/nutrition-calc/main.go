// CLI tool to compute daily nutrition targets without a database.
// Usage:
//
//	go run ./cmd/nutrition-calc -gender male -age 30 -height 180 -weight 80 \
//	    -activity moderately_active [-target 74] [-policy scaled|flat]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/DragosStezar/FitTrack/internal/nutrition"
)

type output struct {
	Goal                string           `json:"derivedGoal"`
	AdjustmentPercent   float64          `json:"adjustmentPercent"`
	CalculatedNutrition nutrition.Result `json:"calculatedNutrition"`
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("nutrition-calc", flag.ContinueOnError)
	gender := fs.String("gender", "", "male or female")
	age := fs.Int("age", 0, "age in years")
	height := fs.Float64("height", 0, "height in cm")
	weight := fs.Float64("weight", 0, "current weight in kg")
	activity := fs.String("activity", "sedentary", "sedentary, lightly_active, moderately_active, very_active or extra_active")
	target := fs.Float64("target", 0, "target weight in kg (omit for maintenance)")
	policyName := fs.String("policy", "scaled", "adjustment policy: scaled or flat")
	if err := fs.Parse(args); err != nil {
		return err
	}

	g, err := nutrition.ParseGender(*gender)
	if err != nil {
		return err
	}
	level, err := nutrition.ParseActivityLevel(*activity)
	if err != nil {
		return err
	}
	if *age <= 0 || *height <= 0 || *weight <= 0 {
		return fmt.Errorf("-age, -height and -weight must be positive")
	}
	policy, err := nutrition.PolicyByName(*policyName)
	if err != nil {
		return err
	}

	p := &nutrition.Profile{
		Gender:        g,
		Age:           *age,
		HeightCm:      *height,
		WeightKg:      *weight,
		ActivityLevel: level,
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "target" {
			p.TargetWeightKg = target
		}
	})

	result, err := nutrition.NewCalculator(policy).Calculate(p)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output{
		Goal:                result.Goal.String(),
		AdjustmentPercent:   result.AdjustmentPercent,
		CalculatedNutrition: result,
	})
}
