package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pitchside/pitchside-go/health"
	"github.com/pitchside/pitchside-go/wellness"
)

func wellnessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wellness",
		Short: "Wellness tracking commands",
	}

	var water, calories int
	var sleep float64
	log := &cobra.Command{
		Use:   "log",
		Short: "Log today's wellness values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := sdk.Wellness.Log(cmd.Context(), wellness.LogParams{
				WaterML: water, SleepHrs: sleep, Calories: calories,
			})
			if err != nil {
				return err
			}
			color.Green("Logged")
			return nil
		},
	}
	log.Flags().IntVar(&water, "water", 0, "water intake in ml")
	log.Flags().Float64Var(&sleep, "sleep", 0, "sleep in hours")
	log.Flags().IntVar(&calories, "calories", 0, "calories eaten")

	today := &cobra.Command{
		Use:   "today",
		Short: "Show today's entry and streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := sdk.Wellness.Today(cmd.Context())
			if err != nil {
				return err
			}
			streak, err := sdk.Wellness.Streak(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d ml water, %.1f h sleep, %d kcal\n",
				entry.Date, entry.WaterML, entry.SleepHrs, entry.Calories)
			color.Cyan("Streak: %d days", streak)
			return nil
		},
	}

	cmd.AddCommand(log, today)
	return cmd
}

func dashboardCmd() *cobra.Command {
	var (
		age            int
		gender         string
		heightCM       float64
		weightKG       float64
		activity, goal string
	)
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the health dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dash, err := sdk.Health.Dashboard(cmd.Context(), health.Biometrics{
				Age: age, Gender: gender,
				HeightCM: heightCM, WeightKG: weightKG,
				Activity: health.ActivityLevel(activity), Goal: health.Goal(goal),
			})
			if err != nil {
				return err
			}
			printMetric("BMI", dash.BMI, "%.1f")
			printMetric("Calories", dash.Calories, "%.0f kcal")
			printMetric("Water", dash.WaterL, "%.1f L")
			return nil
		},
	}
	cmd.Flags().IntVar(&age, "age", 25, "age in years")
	cmd.Flags().StringVar(&gender, "gender", "male", "male|female")
	cmd.Flags().Float64Var(&heightCM, "height", 175, "height in cm")
	cmd.Flags().Float64Var(&weightKG, "weight", 70, "weight in kg")
	cmd.Flags().StringVar(&activity, "activity", "moderate", "low|moderate|high")
	cmd.Flags().StringVar(&goal, "goal", "maintain", "lose|maintain|gain")
	return cmd
}

func printMetric(name string, m health.Metric, format string) {
	value := fmt.Sprintf(format, m.Value)
	if m.Source == health.SourceEstimated {
		color.Yellow("%-10s %s (estimated)", name, value)
		return
	}
	fmt.Printf("%-10s %s\n", name, value)
}
