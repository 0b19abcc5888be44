// Command cookbook drives the recipe publish workflow from the terminal:
// title conflict checks, connectivity-aware submission, and stored-draft
// management against a remote recipe service.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cookbook/application/ports"
	"cookbook/domain/connectivity"
	"cookbook/infrastructure/config"
	infraconn "cookbook/infrastructure/connectivity"
	"cookbook/infrastructure/di"
	"cookbook/pkg/auth"
)

var rootCmd = &cobra.Command{
	Use:   "cookbook",
	Short: "Publish and manage cooking recipes",
	Long: `cookbook submits recipes to the remote recipe service, stores them as
local drafts when the network is unavailable or cellular data is declined,
and retries stored drafts on demand.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("api-url", "", "recipe service base URL")
	flags.String("token", "", "bearer auth token")
	flags.String("author", "", "author alias (default: extracted from the auth token)")
	flags.String("draft-db", "", "path to the local draft database")
	flags.String("network", "", "force a network state: wifi, cellular, or offline")
	flags.String("connectivity-file", "", "JSON file describing the current network state")

	viper.SetEnvPrefix("COOKBOOK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.BindPFlag("api-url", flags.Lookup("api-url"))
	viper.BindPFlag("token", flags.Lookup("token"))
	viper.BindPFlag("author", flags.Lookup("author"))
	viper.BindPFlag("draft-db", flags.Lookup("draft-db"))
	viper.BindPFlag("network", flags.Lookup("network"))
	viper.BindPFlag("connectivity-file", flags.Lookup("connectivity-file"))
}

// loadConfig merges the environment-derived config with CLI overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if v := viper.GetString("api-url"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := viper.GetString("token"); v != "" {
		cfg.AuthToken = v
	}
	if v := viper.GetString("draft-db"); v != "" {
		cfg.DraftDBPath = v
	}
	if v := viper.GetString("connectivity-file"); v != "" {
		cfg.ConnectivityFile = v
	}
	return cfg, nil
}

// forcedMonitor maps the --network flag onto a static monitor. Returns nil
// when the flag is unset, letting the container pick the configured source.
func forcedMonitor() (ports.ConnectivityMonitor, error) {
	switch viper.GetString("network") {
	case "":
		return nil, nil
	case "wifi":
		return infraconn.NewStatic(connectivity.Wifi()), nil
	case "cellular":
		return infraconn.NewStatic(connectivity.Cellular()), nil
	case "offline", "none":
		return infraconn.NewStatic(connectivity.Offline()), nil
	default:
		return nil, fmt.Errorf("unknown network state %q (want wifi, cellular, or offline)", viper.GetString("network"))
	}
}

// resolveAuthor sources the author alias once: the explicit flag wins,
// otherwise it comes out of the auth token's claims.
func resolveAuthor(cfg *config.Config) (string, error) {
	if alias := viper.GetString("author"); alias != "" {
		return alias, nil
	}
	if cfg.AuthToken == "" {
		return "", fmt.Errorf("author alias unknown: pass --author or set COOKBOOK_AUTH_TOKEN")
	}
	return auth.AliasFromToken(cfg.AuthToken)
}

// withContainer runs fn against a fully wired container and releases it.
func withContainer(fn func(ctx context.Context, c *di.Container) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	monitor, err := forcedMonitor()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	container, err := di.InitializeContainer(ctx, cfg, monitor)
	if err != nil {
		return err
	}
	defer container.Close()

	return fn(ctx, container)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
