package cmd

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display the terminal session",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := manager.Session()

		pterm.DefaultSection.Println("Terminal Session")
		pterm.Info.Printf("Store: %s\n", store.Name)
		pterm.Info.Printf("Terminal: %s\n", cfg.Session.TerminalID)

		if !s.IsAuthenticated() {
			pterm.Warning.Println("Not logged in")
			return nil
		}

		pterm.Info.Printf("Subject: %s\n", s.Identity.Subject)
		pterm.Info.Printf("Role: %s\n", s.Identity.Role)
		pterm.Info.Printf("Expires at: %s (in %s)\n",
			s.ExpiresAt.Local().Format(time.RFC1123),
			time.Until(s.ExpiresAt).Truncate(time.Second))
		return nil
	},
}
