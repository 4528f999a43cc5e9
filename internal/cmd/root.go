package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobmeet/jobmeet/internal/api"
	"github.com/jobmeet/jobmeet/internal/auth"
	"github.com/jobmeet/jobmeet/internal/config"
	"github.com/jobmeet/jobmeet/internal/google"
	"github.com/jobmeet/jobmeet/internal/log"
	"github.com/jobmeet/jobmeet/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "jobmeet",
	Short: "Terminal client for the JobMeet interview platform",
	Long: `jobmeet is a terminal client for the JobMeet interview-scheduling platform.

Run it without arguments to open the interactive interface, or use the
subcommands for scripted access to your account.

Configuration lives in ~/.jobmeet/config.yaml and can be overridden with
JOBMEET_* environment variables or the --server flag.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI(cmd, args)
	},
}

var (
	flagServer  string
	flagConfig  string
	flagVerbose bool
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command under the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "JobMeet server URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default is $HOME/.jobmeet/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// loadConfig resolves the effective configuration from file, environment
// and flags, in that order of precedence.
func loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if flagConfig != "" {
		cfg, err = config.LoadFileStrict(flagConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return config.Config{}, err
	}

	if flagServer != "" {
		cfg.ServerURL = flagServer
	}
	return cfg, nil
}

func setupLogger(cfg config.Config) *log.Logger {
	logCfg := log.DefaultConfig()
	if flagVerbose {
		logCfg = log.DebugConfig()
	} else if cfg.LogLevel != "" {
		logCfg.Level = log.ParseLevel(cfg.LogLevel)
	}

	logger := log.New(logCfg)
	log.SetDefaultLogger(logger)
	return logger
}

// printNotifier writes store outcomes to the terminal for the
// non-interactive subcommands
type printNotifier struct{}

func (printNotifier) Success(msg string) { fmt.Println(msg) }
func (printNotifier) Error(msg string)   { fmt.Println("Error:", msg) }

// clientDeps bundles what every subcommand needs against one backend
type clientDeps struct {
	cfg    config.Config
	logger *log.Logger
	auth   *auth.Service
	store  *session.Store
	google *google.Flow
}

func newClientDeps() (*clientDeps, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := setupLogger(cfg)

	client, err := api.New(cfg.ServerURL, api.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	svc := auth.NewService(client)
	store := session.NewStore(svc,
		session.WithNotifier(printNotifier{}),
		session.WithLogger(logger),
	)

	flow := google.NewFlow(cfg.GoogleClientID, google.WithLogger(logger))

	return &clientDeps{
		cfg:    cfg,
		logger: logger,
		auth:   svc,
		store:  store,
		google: flow,
	}, nil
}

// interactiveStore rebuilds the session store with a different notification
// sink, sharing the same backend client and cookie jar
func (d *clientDeps) interactiveStore(n session.Notifier) *session.Store {
	return session.NewStore(d.auth,
		session.WithNotifier(n),
		session.WithLogger(d.logger),
	)
}
