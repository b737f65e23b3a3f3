package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"smtresolve/internal/app"
)

type resolveOptions struct {
	Manifest         string
	Graph            string
	GraphToken       string
	Catalog          string
	Output           string
	PreferNewest     bool
	MinimizePackages bool
	DumpFormula      bool
	TimeoutSeconds   int
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a manifest against a knowledge graph and pin an interpreter",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "Manifest file path")
	cmd.Flags().StringVar(&opts.Graph, "graph", "", "Knowledge graph file path or http(s) URL")
	cmd.Flags().StringVar(&opts.GraphToken, "graph-token", "", "Bearer token for an http(s) knowledge graph")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "Interpreter catalog file path")
	cmd.Flags().StringVar(&opts.Output, "output", "install_script.txt", "Install script output path")
	cmd.Flags().BoolVar(&opts.PreferNewest, "prefer-newest", false, "Weight the solver toward newer versions")
	cmd.Flags().BoolVar(&opts.MinimizePackages, "minimize-packages", false, "Weight the solver toward fewer selected packages")
	cmd.Flags().BoolVar(&opts.DumpFormula, "dump-formula", false, "Write the encoded SMT formula alongside the output")
	cmd.Flags().IntVar(&opts.TimeoutSeconds, "timeout", 0, "Solver wall-clock budget in seconds (0 = no deadline)")

	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("graph", cmd.Flags().Lookup("graph"))
	_ = viper.BindPFlag("graph_token", cmd.Flags().Lookup("graph-token"))
	_ = viper.BindPFlag("catalog", cmd.Flags().Lookup("catalog"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("prefer_newest", cmd.Flags().Lookup("prefer-newest"))
	_ = viper.BindPFlag("minimize_packages", cmd.Flags().Lookup("minimize-packages"))
	_ = viper.BindPFlag("dump_formula", cmd.Flags().Lookup("dump-formula"))
	_ = viper.BindPFlag("timeout", cmd.Flags().Lookup("timeout"))

	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts resolveOptions) error {
	service := app.NewService()
	ctx = log.Logger.WithContext(ctx)
	timeoutSeconds := opts.TimeoutSeconds
	if !flagChanged(cmd, "timeout") {
		timeoutSeconds = viper.GetInt("timeout")
	}
	result, err := service.Resolve(ctx, app.ResolveRequest{
		ManifestPath:     resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		GraphPath:        resolveString(cmd, opts.Graph, "graph", "graph"),
		GraphToken:       resolveString(cmd, opts.GraphToken, "graph_token", "graph-token"),
		CatalogPath:      resolveString(cmd, opts.Catalog, "catalog", "catalog"),
		OutputPath:       resolveString(cmd, opts.Output, "output", "output"),
		PreferNewest:     resolveBool(cmd, opts.PreferNewest, "prefer_newest", "prefer-newest"),
		MinimizePackages: resolveBool(cmd, opts.MinimizePackages, "minimize_packages", "minimize-packages"),
		DumpFormula:      resolveBool(cmd, opts.DumpFormula, "dump_formula", "dump-formula"),
		Timeout:          time.Duration(timeoutSeconds) * time.Second,
	})
	if err != nil {
		return err
	}
	fmt.Printf("resolved %d package(s), interpreter %s, written to %s\n", len(result.Model), result.Interpreter, result.OutputPath)
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
