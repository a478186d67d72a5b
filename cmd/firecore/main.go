// Package main provides the firecore binary entry point.
// Firecore is the core engine of the BuildSafe fire safety platform:
// AI floor-plan analysis, A3 plan document rendering and golden thread
// compliance package generation.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	// Register LLM providers via init()
	_ "github.com/buildsafe/firecore/llm/providers"

	"github.com/buildsafe/firecore/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "firecore"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Fire safety plan engine",
		Long: `Firecore is the BuildSafe fire safety plan engine.

It provides:
- AI floor-plan analysis (fire safety element detection)
- A3 plan document rendering with symbols and annotations
- Golden thread compliance package compilation and export`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	loadCfg := func() (*config.Config, error) {
		configureLogging(logLevel)
		if configPath != "" {
			cfg, err := config.LoadFromFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("load config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("invalid configuration: %w", err)
			}
			return cfg, nil
		}
		return config.NewLoader(slog.Default()).Load()
	}

	cmd.AddCommand(newAnalyzeCmd(loadCfg))
	cmd.AddCommand(newRenderCmd(loadCfg))
	cmd.AddCommand(newCompileCmd(loadCfg))

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func configureLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
