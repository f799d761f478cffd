// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sierrasoftworks/docsite/cmd/gendocs"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

// EnvPrefix prefixes the environment variables read in place of flags
const EnvPrefix = "DOCSITE"

// NewCommand creates a new root command and propagates
// the context to its Run callback closures
func NewCommand(ctx context.Context) *cobra.Command {
	vip := newViper()
	cmd := &cobra.Command{
		Use:   "docsite",
		Short: "Build the data of a documentation site",
		Long: `Builds the site data of a documentation site from a tree of markdown pages:
one data file per page with its headers and navigation, the resolved site
configuration and the rendered head tags.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnvFile(vip)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			o, err := getOptions(vip)
			if err != nil {
				return err
			}
			_, err = runBuild(ctx, o, cmd.OutOrStdout())
			return err
		},
	}
	configureFlags(cmd, vip)

	cmd.AddCommand(newBuildCmd(ctx, vip))
	cmd.AddCommand(newDevCmd(ctx, vip))
	cmd.AddCommand(newConfigCmd(vip))
	cmd.AddCommand(newSearchCmd(vip))
	cmd.AddCommand(NewVersionCmd())
	cmd.AddCommand(newCompletionCmd())
	cmd.AddCommand(gendocs.NewGenCmdDocs())

	if flag.CommandLine.Lookup("v") == nil {
		klog.InitFlags(nil)
	}
	AddFlags(cmd)

	return cmd
}

func newBuildCmd(ctx context.Context, vip *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the site data (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			o, err := getOptions(vip)
			if err != nil {
				return err
			}
			_, err = runBuild(ctx, o, cmd.OutOrStdout())
			return err
		},
	}
}

// AddFlags adds go flags to rootCmd
func AddFlags(rootCmd *cobra.Command) {
	flag.CommandLine.VisitAll(func(gf *flag.Flag) {
		if rootCmd.PersistentFlags().Lookup(gf.Name) == nil {
			rootCmd.PersistentFlags().AddGoFlag(gf)
		}
	})
}

func newViper() *viper.Viper {
	vip := viper.New()
	vip.SetEnvPrefix(EnvPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vip.AutomaticEnv()
	return vip
}

// loadEnvFile reads the prefixed variables of the env file as defaults.
// Flags and the process environment take precedence.
func loadEnvFile(vip *viper.Viper) error {
	path := vip.GetString("env-file")
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	env, err := godotenv.Read(path)
	if err != nil {
		return err
	}
	prefix := EnvPrefix + "_"
	for k, v := range env {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		key := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, prefix)), "_", "-")
		klog.V(4).Infof("%s set from %s", key, path)
		vip.SetDefault(key, v)
	}
	return nil
}
