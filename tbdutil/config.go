/*
Copyright © 2026 the FireSTARR/TBD authors.
This file is part of FireSTARR/TBD.

FireSTARR/TBD is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

FireSTARR/TBD is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with FireSTARR/TBD.  If not, see <http://www.gnu.org/licenses/>.
*/

package tbdutil

import (
	"fmt"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Cfg holds the simulate/test subcommands and their layered
// config-file/flag/env-var settings.
type Cfg struct {
	*viper.Viper

	Root        *cobra.Command
	simulateCmd *cobra.Command
	testCmd     *cobra.Command

	log *logrus.Logger
}

// InitializeConfig builds the tbd root command and its simulate/test
// subcommands, wiring each one's PersistentPreRunE to read an optional
// config file and set up logging.
func InitializeConfig() *Cfg {
	cfg := &Cfg{
		Viper: viper.New(),
		log:   logrus.StandardLogger(),
	}

	cfg.Root = &cobra.Command{
		Use:   "tbd",
		Short: "A probabilistic wildland-fire growth simulator.",
		Long: `FireSTARR/TBD runs many stochastic cellular fire-spread scenarios from an
ignition point, a gridded fuel/terrain landscape, and an hourly fire-weather
stream, and reports per-cell burn probability, intensity class, and arrival
time until statistical confidence or a wall-clock budget is reached.

Configuration can be set with command-line flags, environment variables in
the form TBD_var, or a config file named with --config.`,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return setConfig(cfg)
		},
	}
	addGlobalFlags(cfg)

	cfg.simulateCmd = newSimulateCmd(cfg)
	cfg.testCmd = newTestCmd(cfg)
	cfg.Root.AddCommand(cfg.simulateCmd, cfg.testCmd)

	return cfg
}

// addGlobalFlags registers the -v/-q logging flags and --config shared by
// every subcommand.
func addGlobalFlags(cfg *Cfg) {
	cfg.Root.PersistentFlags().StringP("config", "", "", "path to a configuration file")
	cfg.Root.PersistentFlags().BoolP("verbose", "v", false, "enable debug-level logging")
	cfg.Root.PersistentFlags().BoolP("quiet", "q", false, "only log warnings and errors")
	cfg.BindPFlags(cfg.Root.PersistentFlags())
}

// setConfig reads the configuration file (if given) and sets the logging
// level/formatter from the -v/-q flags.
func setConfig(cfg *Cfg) error {
	if cfgPath := cfg.GetString("config"); cfgPath != "" {
		cfg.SetConfigFile(cfgPath)
		if err := cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("tbd: problem reading configuration file: %v", err)
		}
	}

	level := logrus.InfoLevel
	switch {
	case cfg.GetBool("verbose"):
		level = logrus.DebugLevel
	case cfg.GetBool("quiet"):
		level = logrus.WarnLevel
	}
	cfg.log.SetLevel(level)
	cfg.log.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})
	return nil
}

// Logger returns the configured logger for use by subcommand handlers.
func (cfg *Cfg) Logger() *logrus.Logger { return cfg.log }
