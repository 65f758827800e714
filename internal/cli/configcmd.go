package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"forumcli/internal/prompt"
	"forumcli/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the client configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the current effective settings",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		if !skipAsk && !prompt.Confirm(fmt.Sprintf("Overwrite existing config at %s?", path)) {
			fmt.Println("Cancelled.")
			return nil
		}
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := config.Save(cfg, path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	fmt.Printf("backend:\n  base_url: %s\n  transport: %s\n  timeout: %s\n", cfg.Backend.BaseURL, cfg.Backend.Transport, cfg.Backend.Timeout.Duration())
	if cfg.Backend.RateLimit.RPS > 0 {
		fmt.Printf("  rate_limit: %g rps (burst %d)\n", cfg.Backend.RateLimit.RPS, cfg.Backend.RateLimit.Burst)
	}
	fmt.Printf("storage:\n  data_dir: %s\n", cfg.Storage.DataDir)
	fmt.Printf("logging:\n  level: %s\n", cfg.Logging.Level)
	fmt.Printf("watch:\n  cron: %q\n", cfg.Watch.Cron)
	return nil
}
