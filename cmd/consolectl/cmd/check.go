package cmd

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	httptransport "github.com/spec-kit/restaurant-console/internal/api/http"
	"github.com/spec-kit/restaurant-console/internal/auth"
)

var checkMethod string

var checkCmd = &cobra.Command{
	Use:   "check <path>",
	Short: "Show where the console would send this terminal for a path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := httptransport.ConsoleRoutes(cfg.Routes)
		decision := table.Resolve(manager.Session(), strings.ToUpper(checkMethod), args[0])

		switch decision.Kind {
		case auth.DecisionAllow:
			pterm.Success.Printf("%s %s: allowed\n", strings.ToUpper(checkMethod), args[0])
		case auth.DecisionRedirect:
			pterm.Warning.Printf("%s %s: redirect to %s\n", strings.ToUpper(checkMethod), args[0], decision.Location)
		default:
			pterm.Info.Printf("%s %s: %s\n", strings.ToUpper(checkMethod), args[0], decision)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkMethod, "method", "X", "GET", "HTTP method")
}
