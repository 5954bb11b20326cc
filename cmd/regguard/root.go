package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ochairo/regguard/internal/config"
	"github.com/ochairo/regguard/internal/domain/interfaces"
	"github.com/ochairo/regguard/internal/external-adapters/zaplog"
)

// app carries what every subcommand needs once flags are parsed
type app struct {
	cfg    *config.Config
	logger *zaplog.Logger
	stdout io.Writer
	stderr io.Writer
}

func (a *app) log() interfaces.Logger {
	return a.logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:   "regguard",
		Short: "Validate registry configuration and detect changed artifacts",
		Long: `regguard checks a configuration-as-code registry before promotion and
tracks which artifacts changed since the last promotion.

Validation failures exit with code 10; any other error exits with code 1.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(v, cfgFile)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: .regguard.yaml, then ~/.config/regguard/config.yaml)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: console or json")
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("log.format", flags.Lookup("log-format"))

	root.AddCommand(
		newValidateCmd(a),
		newChecksumCmd(a, checksumPlan),
		newChecksumCmd(a, checksumSave),
	)
	return root
}

func (a *app) init(v *viper.Viper, cfgFile string) error {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	if !zaplog.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("unknown log level %q", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.cfg = cfg
	a.logger = zaplog.New(cfg.Log.Level, cfg.Log.Format, a.stderr)
	a.logger.Debug("configuration loaded", interfaces.F("file", v.ConfigFileUsed()))
	return nil
}
