package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Video analyzer commands",
	}

	var wait bool
	upload := &cobra.Command{
		Use:   "upload <video-file>",
		Short: "Upload footage to the analyzer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			job, err := sdk.Analyzer.Upload(cmd.Context(), filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			color.Green("Job %s (%s)", job.ID, job.Status)

			if !wait {
				return nil
			}
			for job.Status != "done" && job.Status != "failed" {
				time.Sleep(2 * time.Second)
				if job, err = sdk.Analyzer.Status(cmd.Context(), job.ID); err != nil {
					return err
				}
				fmt.Printf("  %s\n", job.Status)
			}
			return nil
		},
	}
	upload.Flags().BoolVar(&wait, "wait", false, "poll until the job finishes")

	status := &cobra.Command{
		Use:   "status <job-id>",
		Short: "Show analyzer job status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := sdk.Analyzer.Status(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s\n", job.ID, job.Status)
			return nil
		},
	}

	heatmap := &cobra.Command{
		Use:   "heatmap <job-id> <out-file>",
		Short: "Download the position heatmap",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := sdk.Analyzer.Heatmap(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[1], img, 0o644); err != nil {
				return err
			}
			color.Green("Wrote %s (%d bytes)", args[1], len(img))
			return nil
		},
	}

	cmd.AddCommand(upload, status, heatmap)
	return cmd
}
