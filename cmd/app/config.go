// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"

	"github.com/sierrasoftworks/docsite/pkg/site"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newConfigCmd(vip *viper.Viper) *cobra.Command {
	var output string
	command := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved site configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := loadSite(vip)
			if err != nil {
				return err
			}
			data, err := site.Marshal(cfg, output)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	command.Flags().StringVarP(&output, "output", "o", "yaml",
		"Output format. Must be one of: `yaml` or `json`.")
	command.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate the site configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := loadSite(vip)
			if err != nil {
				return err
			}
			if err = site.Validate(cfg); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "site configuration is valid")
			return err
		},
	})
	return command
}

func loadSite(vip *viper.Viper) (*site.Config, error) {
	o, err := getOptions(vip)
	if err != nil {
		return nil, err
	}
	return site.Load(o.ConfigPath)
}
