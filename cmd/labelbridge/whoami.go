package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// whoamiCmd shows the profile behind the configured token
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the annotator the API token authenticates as",
	RunE: func(cmd *cobra.Command, args []string) error {
		ann, err := newAnnotator(cmd)
		if err != nil {
			return err
		}
		user, err := ann.CurrentUser(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch profile: %w", err)
		}
		fmt.Printf("Backend: %s\n", ann.Backend())
		fmt.Printf("ID:      %d\n", user.ID)
		fmt.Printf("Name:    %s\n", user.Name)
		if user.Email != "" {
			fmt.Printf("Email:   %s\n", user.Email)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
