package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/alex-pricope/hackathon-judging/api"
	"github.com/alex-pricope/hackathon-judging/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFile string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:           "judging",
	Short:         "Hackathon judging backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./config.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env.local", "dotenv file loaded before reading the environment")

	rootCmd.AddCommand(serveCmd, schemaCmd, leaderboardCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logging.Log.Errorf("%v", err)
		os.Exit(1)
	}
}

// loadConfig reads dotenv, config file and environment, in that order of
// precedence from lowest to highest, and bootstraps the logger.
func loadConfig() (*api.Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	v := viper.New()
	api.SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	logging.BootstrapLogger(v.GetString("server.logLevel"))
	return api.ReadConfig(v), nil
}
