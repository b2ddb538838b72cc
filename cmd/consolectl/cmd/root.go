package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-console/internal/auth"
	"github.com/spec-kit/restaurant-console/internal/backend"
	"github.com/spec-kit/restaurant-console/internal/config"
	"github.com/spec-kit/restaurant-console/internal/session"
)

var (
	apiURL  string
	verbose bool

	cfg     *config.Config
	store   *session.Backend
	manager *session.Manager
)

var rootCmd = &cobra.Command{
	Use:   "consolectl",
	Short: "Restaurant console terminal administration",
	Long: `consolectl manages the credential of a console terminal. It shares the
credential store with the console server, so logging in here unlocks the
terminal and logging out locks it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if apiURL != "" {
			loaded.Backend.BaseURL = apiURL
		}
		cfg = loaded

		logger := zap.NewNop()
		if verbose {
			if logger, err = zap.NewDevelopment(); err != nil {
				return err
			}
		}

		store, err = session.OpenBackend(cmd.Context(), cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to open credential store: %w", err)
		}

		manager = session.NewManager(session.Dependencies{
			Store:         store.Store,
			Decoder:       auth.NewDecoder(),
			Authenticator: backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout(), nil),
			Logger:        logger,
		})
		manager.Hydrate(cmd.Context())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		store.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Restaurant API base URL (defaults to API_BASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log session transitions")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(checkCmd)
}
