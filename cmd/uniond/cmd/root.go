// Package cmd defines the commands of the union daemon.
package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cometbft/cometbft/libs/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/uniongov/union-core/config"
)

// AppName is the name of the daemon
const AppName = "uniond"

// flags shared by all commands
const (
	FlagHome      = "home"
	FlagLogLevel  = "log_level"
	FlagLogFormat = "log_format"
)

// DefaultHome is the default home directory of the daemon
var DefaultHome = defaultHome()

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".union"
	}

	return filepath.Join(home, ".union")
}

type contextKey struct{}

// ServerContext holds the configuration every command runs with
type ServerContext struct {
	Home   string
	Viper  *viper.Viper
	Config config.Config
	Logger log.Logger
}

// GetServerContext returns the server context set up by the root command
func GetServerContext(cmd *cobra.Command) *ServerContext {
	if serverCtx, ok := cmd.Context().Value(contextKey{}).(*ServerContext); ok {
		return serverCtx
	}

	panic("server context is not set")
}

// NewRootCmd creates the root command of the union daemon
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           AppName,
		Short:         "Union governance daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return interceptConfigs(cmd)
		},
	}

	rootCmd.PersistentFlags().String(FlagHome, DefaultHome, "directory for config and data")
	rootCmd.PersistentFlags().String(FlagLogLevel, "", "log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().String(FlagLogFormat, "", "log format (plain|json)")

	rootCmd.AddCommand(
		InitCmd(),
		GenesisCmd(),
		QueryCmd(),
		CallCmd(),
		StartCmd(),
	)

	return rootCmd
}

// interceptConfigs reads the config of the home directory, applies flag and environment overrides and sets up the logger
func interceptConfigs(cmd *cobra.Command) error {
	home, err := cmd.Flags().GetString(FlagHome)
	if err != nil {
		return err
	}

	v := config.NewViper(home)
	for key, flag := range map[string]string{"log.level": FlagLogLevel, "log.format": FlagLogFormat} {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			v.Set(key, f.Value.String())
		}
	}

	conf, err := config.ReadConfig(v)
	if err != nil {
		return errors.Wrap(err, "failed to read config")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cmd.SetContext(context.WithValue(ctx, contextKey{}, &ServerContext{
		Home:   home,
		Viper:  v,
		Config: conf,
		Logger: newStderrLogger(conf.Log),
	}))

	return nil
}
