package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/tiwe/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "tiwe",
	Short: "Tilt-to-wake clock face that assembles from scattered dots",
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (default: tiwe.toml in . or $HOME/.config/tiwe)")
	config.RegisterFlags(flags)
}

// loadConfig resolves settings for cmd, flags included
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return config.Config{}, err
	}
	cmd.SilenceUsage = true
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
