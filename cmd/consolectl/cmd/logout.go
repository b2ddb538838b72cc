package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Lock the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager.Logout(cmd.Context())
		pterm.Success.Println("Logged out successfully")
		return nil
	},
}
