// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sierrasoftworks/docsite/pkg/metrics"
	"github.com/sierrasoftworks/docsite/pkg/watch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

func newDevCmd(ctx context.Context, vip *viper.Viper) *cobra.Command {
	var (
		metricsAddr string
		debounce    time.Duration
	)
	command := &cobra.Command{
		Use:   "dev",
		Short: "Build the site data and rebuild it on changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			o, err := getOptions(vip)
			if err != nil {
				return err
			}
			if metricsAddr != "" {
				reg := prometheus.NewRegistry()
				metrics.RegisterAll(reg)
				stop := serveMetrics(metricsAddr, metrics.HandlerFor(reg))
				defer stop()
			}
			return dev(ctx, o, debounce, cmd)
		},
	}
	command.Flags().StringVar(&metricsAddr, "metrics-addr", "",
		"Address serving the build metrics on /metrics, disabled when empty.")
	command.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce,
		"Quiet period after the last change before rebuilding.")
	return command
}

func dev(ctx context.Context, o *options, debounce time.Duration, cmd *cobra.Command) error {
	rebuild := func(ctx context.Context) error {
		_, err := runBuild(ctx, o, cmd.OutOrStdout())
		return err
	}
	if err := rebuild(ctx); err != nil {
		// keep watching, the next change may fix the build
		klog.Errorf("initial build failed: %v", err)
	}
	w := &watch.Watcher{
		Dirs:     []string{o.SourceDir},
		Ignore:   []string{o.DestinationPath},
		Debounce: debounce,
		OnChange: rebuild,
	}
	if o.ConfigPath != "" {
		w.Files = []string{o.ConfigPath}
	}
	klog.Infof("Watching %s for changes", o.SourceDir)
	return w.Run(ctx)
}

func serveMetrics(addr string, handler http.Handler) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		klog.Infof("Serving metrics on %s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			klog.Errorf("metrics server: %v", err)
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
