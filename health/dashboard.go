package health

import (
	"context"
	"sync"

	"github.com/pitchside/pitchside-go/transport"
)

// Biometrics is the player data the dashboard computes from.
type Biometrics struct {
	Age      int
	Gender   string // male | female
	HeightCM float64
	WeightKG float64
	Activity ActivityLevel
	Goal     Goal
}

// Metric is one dashboard value with its provenance. Source is
// "backend" when the ML upstream answered, "estimated" when the value
// was computed locally after a transient failure.
type Metric struct {
	Value  float64
	Source string
}

const (
	SourceBackend   = "backend"
	SourceEstimated = "estimated"
)

// Dashboard is the aggregated health summary shown on the home screen.
type Dashboard struct {
	BMI      Metric
	Calories Metric
	WaterL   Metric
}

// Dashboard fetches BMI, daily calories and water intake concurrently.
// A transient failure on any lookup falls back to the local estimate
// for that metric alone; rejections and auth failures propagate,
// since estimating around those would mask a real problem.
func (c *Client) Dashboard(ctx context.Context, bio Biometrics) (Dashboard, error) {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		dash Dashboard
		errs []error
	)

	fetch := func(dst *Metric, estimate float64, call func() (float64, error)) {
		defer wg.Done()
		value, err := call()
		if err == nil {
			mu.Lock()
			*dst = Metric{Value: value, Source: SourceBackend}
			mu.Unlock()
			return
		}
		if transport.IsTransient(err) {
			mu.Lock()
			*dst = Metric{Value: estimate, Source: SourceEstimated}
			mu.Unlock()
			return
		}
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	wg.Add(3)
	go fetch(&dash.BMI, EstimateBMI(bio.HeightCM, bio.WeightKG), func() (float64, error) {
		return c.BMI(ctx, BMIParams{HeightCM: bio.HeightCM, WeightKG: bio.WeightKG})
	})
	go fetch(&dash.Calories, EstimateCalories(bio), func() (float64, error) {
		return c.Calories(ctx, CalorieParams{
			Age: bio.Age, Gender: bio.Gender,
			HeightCM: bio.HeightCM, WeightKG: bio.WeightKG,
			Activity: bio.Activity, Goal: bio.Goal,
		})
	})
	go fetch(&dash.WaterL, EstimateWater(bio.WeightKG, bio.Activity), func() (float64, error) {
		return c.Water(ctx, WaterParams{WeightKG: bio.WeightKG, Activity: bio.Activity})
	})
	wg.Wait()

	if len(errs) > 0 {
		return Dashboard{}, errs[0]
	}
	return dash, nil
}

// EstimateBMI is the local fallback: weight over height squared.
func EstimateBMI(heightCM, weightKG float64) float64 {
	if heightCM <= 0 {
		return 0
	}
	m := heightCM / 100
	return weightKG / (m * m)
}

// EstimateCalories is the local fallback: Mifflin-St Jeor basal rate,
// scaled by activity, shifted by goal.
func EstimateCalories(bio Biometrics) float64 {
	bmr := 10*bio.WeightKG + 6.25*bio.HeightCM - 5*float64(bio.Age)
	if bio.Gender == "female" {
		bmr -= 161
	} else {
		bmr += 5
	}

	multiplier := 1.2
	switch bio.Activity {
	case ActivityModerate:
		multiplier = 1.55
	case ActivityHigh:
		multiplier = 1.725
	}

	total := bmr * multiplier
	switch bio.Goal {
	case GoalLose:
		total -= 300
	case GoalGain:
		total += 300
	}
	return total
}

// EstimateWater is the local fallback: 33ml per kilogram, plus a
// training bonus.
func EstimateWater(weightKG float64, activity ActivityLevel) float64 {
	liters := 0.033 * weightKG
	switch activity {
	case ActivityModerate:
		liters += 0.5
	case ActivityHigh:
		liters += 1.0
	}
	return liters
}
