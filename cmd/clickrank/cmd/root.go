package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xh3b4sd/tracer"

	"github.com/xh3b4sd/clickrank/metrics"
)

var (
	cfgFile string
	logger  = slog.Default()
	rec     = metrics.New()
)

var rootCmd = &cobra.Command{
	Use:           "clickrank",
	Short:         "Click prediction ranking toolkit",
	Long:          `Scores, blends and submits ranked ad click predictions, and drives the external learners producing them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		err := initConfig()
		if err != nil {
			return tracer.Mask(err)
		}

		logger, err = newLogger(viper.GetString("log.level"), viper.GetString("log.format"))
		if err != nil {
			return tracer.Mask(err)
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		pat := viper.GetString("metrics.file")
		if pat == "" {
			return nil
		}

		err := rec.WriteFile(pat)
		if err != nil {
			return tracer.Mask(err)
		}

		logger.Debug("wrote metrics", "path", pat)

		return nil
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	setDefaults(viper.GetViper())

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./clickrank.yaml or $HOME/.clickrank/clickrank.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level, one of debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format, one of text, json")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write run metrics in Prometheus text format to this file")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("metrics.file", rootCmd.PersistentFlags().Lookup("metrics-file"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("split.threshold", 950400000)
	v.SetDefault("split.modulo", 6)
	v.SetDefault("split.remainder", 5)
	v.SetDefault("submission.top", 12)
	v.SetDefault("admean.reg", 10.0)
	v.SetDefault("paths.preds", "preds")
	v.SetDefault("paths.subm", "subm")
	v.SetDefault("paths.cache", "cache")
	v.SetDefault("paths.bin", "bin")
	v.SetDefault("paths.tmp", os.TempDir())
	v.SetDefault("paths.profiles", "profiles.yaml")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("clickrank")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		hom, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(hom, ".clickrank"))
		}
	}

	viper.SetEnvPrefix("CLICKRANK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return nil
		}

		return tracer.Mask(err)
	}

	return nil
}

func newLogger(lev string, frm string) (*slog.Logger, error) {
	var l slog.Level
	{
		err := l.UnmarshalText([]byte(lev))
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	opt := &slog.HandlerOptions{Level: l}

	switch frm {
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opt)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opt)), nil
	}

	return nil, tracer.Mask(fmt.Errorf("unknown log format %q", frm))
}
