package main

import (
	"github.com/spf13/cobra"

	"github.com/zromick/SpikeGame/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game configuration",
	Long: `Print the configuration the game would run with, as YAML.

Sources, first match wins:
  --config <path>
  ~/.spikegame/configs/spikes.yaml
  ./configs/spikes.yaml
  built-in defaults

Examples:
  spikegame config
  spikegame config > ~/.spikegame/configs/spikes.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
