package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pitchside/pitchside-go/matches"
)

func feedCmd() *cobra.Command {
	var limit, page int
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Show the social feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := sdk.Posts.Feed(cmd.Context(), limit, page)
			if err != nil {
				return err
			}
			for _, post := range items {
				color.Cyan("@%s", post.Owner.Username)
				fmt.Printf("  %s\n", post.Content)
				fmt.Printf("  %d likes · %s\n\n", len(post.Likes), post.CreatedAt)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "posts per page")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

func matchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matches",
		Short: "Match commands",
	}

	var filter string
	list := &cobra.Command{
		Use:   "list",
		Short: "List matches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := sdk.Matches.List(cmd.Context(), matches.Filter(filter), 20, 1)
			if err != nil {
				return err
			}
			for _, m := range items {
				color.Cyan("%s vs %s", m.ID, m.Opponent)
				fmt.Printf("  %s %s at %s (%s, %d joined)\n",
					m.Date, m.Time, m.Location, m.Status, m.ParticipantCount)
			}
			return nil
		},
	}
	list.Flags().StringVar(&filter, "filter", "upcoming", "all|upcoming|completed|mine")

	join := &cobra.Command{
		Use:   "join <match-id>",
		Short: "Join a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sdk.Matches.Join(cmd.Context(), args[0]); err != nil {
				return err
			}
			color.Green("Joined match %s", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, join)
	return cmd
}
