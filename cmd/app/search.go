// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/sierrasoftworks/docsite/pkg/plugins"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newSearchCmd(vip *viper.Viper) *cobra.Command {
	var (
		index string
		size  int
	)
	command := &cobra.Command{
		Use:   "search QUERY",
		Short: "Query the search index of a built site",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if index == "" {
				o, err := getOptions(vip)
				if err != nil {
					return err
				}
				index = filepath.Join(o.DestinationPath, plugins.DefaultIndexName)
			}
			hits, err := plugins.Query(index, strings.Join(args, " "), size)
			if err != nil {
				return err
			}
			if len(hits) == 0 {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "no results")
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, h := range hits {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", h.Route, h.Kind, h.Title)
			}
			return tw.Flush()
		},
	}
	command.Flags().StringVar(&index, "index", "",
		"Search index path. Defaults to the index in the destination directory.")
	command.Flags().IntVar(&size, "size", 10,
		"Maximum number of results.")
	return command
}
