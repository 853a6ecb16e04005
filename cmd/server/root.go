package main

import (
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// configFile is the optional YAML file shared by all subcommands.
var configFile string

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "dentalcare",
		Short:        "Dental clinic backend",
		Long:         `Dental clinic backend: patients, doctors, appointments, oral-care tracking and reports over a JSON API.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewCreateAdminCmd())

	return cmd
}

func loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	return config.Load(configFile, flags)
}
