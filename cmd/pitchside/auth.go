package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pitchside/pitchside-go/session"
)

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Log in and persist the session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			banner()

			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}

			sess, err := sdk.Session.Login(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}

			color.Green("Logged in as %s", sess.User.Username)
			if !sess.ExpiresAt.IsZero() {
				fmt.Printf("Session expires %s\n", sess.ExpiresAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sdk.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			color.Yellow("Logged out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := sdk.Session.Snapshot()
			if snap.State != session.StateAuthenticated {
				color.Red("Not logged in")
				return nil
			}

			profile, err := sdk.Users.Me(cmd.Context())
			if err != nil {
				return err
			}
			color.Green("%s (%s)", profile.Username, profile.Email)
			fmt.Printf("  %s, %d matches, %d goals, %d assists\n",
				profile.Position, profile.MatchesPlayed, profile.Goals, profile.Assists)
			return nil
		},
	}
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}
