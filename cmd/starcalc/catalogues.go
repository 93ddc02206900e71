package main

import (
	"github.com/spf13/cobra"
)

var cataloguesCmd = &cobra.Command{
	Use:   "catalogues",
	Short: "List the configured catalogues",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig()
		if err != nil {
			return err
		}
		config, err := catalogueConfig(cfg)
		if err != nil {
			return err
		}

		renderCatalogues(cmd.OutOrStdout(), config)
		return nil
	},
}
