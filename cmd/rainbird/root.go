package main

import (
	"encoding/json"

	"github.com/arloliu/go-rainbird/rainbird"
	"github.com/spf13/cobra"
)

// app carries the state shared by the subcommands.
type app struct {
	configPath string
	flags      settings
	client     *rainbird.Client
}

func newRootCommand() *cobra.Command {
	a := &app{flags: defaultSettings()}

	root := &cobra.Command{
		Use:               "rainbird",
		Short:             "Query and control a Rain Bird irrigation controller",
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.connect,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "TOML config file")
	f.StringVar(&a.flags.Host, "host", "", "controller address, an IP or host name with optional port")
	f.StringVar(&a.flags.Password, "password", "", "controller password")
	f.DurationVar(&a.flags.Timeout, "timeout", rainbird.DefaultTimeout, "per-attempt request timeout")
	f.IntVar(&a.flags.RetryCount, "retries", rainbird.DefaultRetryCount, "maximum number of attempts")
	f.DurationVar(&a.flags.RetryDelay, "retry-delay", rainbird.DefaultRetryDelay, "delay between attempts")
	f.BoolVar(&a.flags.Debug, "debug", false, "log requests and responses")

	root.AddCommand(
		a.infoCommand(),
		a.statusCommand(),
		a.zonesCommand(),
		a.timeCommand(),
		a.startZoneCommand(),
		a.startAllCommand(),
		a.startProgramCommand(),
		a.stopCommand(),
		a.rainDelayCommand(),
		a.advanceCommand(),
		a.scanCommand(),
	)

	return root
}

// connect resolves the settings from the config file and the flags, then creates the client.
// Flags take precedence over the file.
func (a *app) connect(cmd *cobra.Command, _ []string) error {
	s := defaultSettings()
	if a.configPath != "" {
		var err error
		if s, err = loadSettings(a.configPath, s); err != nil {
			return err
		}
	}

	f := cmd.Flags()
	if f.Changed("host") {
		s.Host = a.flags.Host
	}
	if f.Changed("password") {
		s.Password = a.flags.Password
	}
	if f.Changed("timeout") {
		s.Timeout = a.flags.Timeout
	}
	if f.Changed("retries") {
		s.RetryCount = a.flags.RetryCount
	}
	if f.Changed("retry-delay") {
		s.RetryDelay = a.flags.RetryDelay
	}
	if f.Changed("debug") {
		s.Debug = a.flags.Debug
	}

	cfg, err := s.clientConfig()
	if err != nil {
		return err
	}

	a.client, err = rainbird.NewClient(cfg)

	return err
}

func (a *app) close() error {
	if a.client == nil {
		return nil
	}

	return a.client.Close()
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
