package cmd

import (
	"fmt"
	"os"

	"github.com/Manu343726/nesview/cmd/tools"
	"github.com/Manu343726/nesview/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "nesview",
	Short: "A front-end for a 6502 emulator debugger",
	Long: `nesview shows the state of a running 6502 emulator: the disassembled
instructions around the program counter, the CPU registers and flags, and
the zero page and stack memory regions. It can also step the emulator one
instruction at a time.

All data comes from the emulator backend HTTP API (see "nesview tools docs api").`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.AddCommand(tools.ToolsCmd)
	cobra.OnInitialize(initConfig)

	flags := RootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.nesview.yaml)")
	flags.StringP(config.KeyBackend, "b", config.DefaultBackend, "Emulator backend base URL")
	flags.StringP(config.KeyMode, "m", "full", "What a step refreshes: full or instructions")
	flags.Duration(config.KeyTimeout, 0, "Timeout of each backend request (0 = no timeout)")
	flags.Duration(config.KeyRefreshInterval, 0, "Refresh every panel periodically (0 = disabled)")
	flags.IntP(config.KeyWindow, "w", 0, "Instruction lines printed by console commands (0 = fit the terminal)")
	flags.Bool(config.KeyNoColor, false, "Disable colored output")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("log-file", "", "Append JSON logs to this file")

	for key, flag := range map[string]string{
		config.KeyBackend:         config.KeyBackend,
		config.KeyMode:            config.KeyMode,
		config.KeyTimeout:         config.KeyTimeout,
		config.KeyRefreshInterval: config.KeyRefreshInterval,
		config.KeyWindow:          config.KeyWindow,
		config.KeyNoColor:         config.KeyNoColor,
		config.KeyLogLevel:        "log-level",
		config.KeyLogFile:         "log-file",
	} {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(flag)))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".nesview" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".nesview")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
