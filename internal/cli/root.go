package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"forumcli/pkg/client"
	"forumcli/pkg/config"
	"forumcli/pkg/logger"
	"forumcli/pkg/session"
)

var (
	version = "dev"
	commit  = "unknown"
)

var (
	cfgFile string
	verbose bool
	skipAsk bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "forumcli",
	Short: "Terminal client for the forum API",
	Long: `forumcli is a terminal client for a forum backend: browse topics,
read and write posts and comments, and like what you enjoy. Lists support
searching and sorting (alphabetic, recent, liked).`,
	Version: fmt.Sprintf("%s (commit: %s)", version, commit),
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default is $HOME/.forumcli/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&skipAsk, "yes", "y", false, "skip confirmation prompts")
}

// app bundles the wired pieces every command needs. Callers must close()
// when done so the session db releases its lock.
type app struct {
	cfg   *config.Config
	store *session.Store
	api   *client.Client
}

func newApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	logger.Init(level)

	store, err := session.Open(cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}
	api, err := client.New(cfg, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return &app{cfg: cfg, store: store, api: api}, nil
}

func (a *app) close() {
	if a.store != nil {
		_ = a.store.Close()
	}
}
