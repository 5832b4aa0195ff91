package main

import (
	"os"

	"github.com/Yunpeng-J/zipf/pkg/client"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	logger  = log.New()
	config  client.Config
	rootCmd = &cobra.Command{
		Use:   "benchmark",
		Short: "A closed loop key-access generator",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "write the keyspace and trace files",
		Run: func(cmd *cobra.Command, args []string) {
			if err := client.RunTraceCmd(config, logger); err != nil {
				logger.Fatalf("init failed: %v", err)
			}
		},
	}
	loadCmd = &cobra.Command{
		Use:   "load",
		Short: "issue accesses for the configured interval",
		Run: func(cmd *cobra.Command, args []string) {
			report, err := client.RunLoadCmd(config, viper.GetBool("capped"), logger)
			if err != nil {
				logger.Fatalf("load failed: %v", err)
			}
			report.Log(logger)
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringP("config", "", "config.yaml", "config file")
	rootCmd.PersistentFlags().StringP("sampler", "", "table", "the type of sampler [table, rejection, uniform]")
	rootCmd.PersistentFlags().IntP("interval", "", 10, "benchmark time in seconds, default 10s")
	rootCmd.PersistentFlags().IntP("clients", "", 16, "the number of clients")
	rootCmd.PersistentFlags().StringP("loglevel", "", "info", "log level")
	loadCmd.Flags().BoolP("capped", "", false, "stop after number accesses")
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("workload.sampler", rootCmd.PersistentFlags().Lookup("sampler"))
	viper.BindPFlag("interval", rootCmd.PersistentFlags().Lookup("interval"))
	viper.BindPFlag("clients", rootCmd.PersistentFlags().Lookup("clients"))
	viper.BindPFlag("loglevel", rootCmd.PersistentFlags().Lookup("loglevel"))
	viper.BindPFlag("capped", loadCmd.Flags().Lookup("capped"))
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(loadCmd)
}

func initConfig() {
	conf := viper.GetString("config")
	viper.SetConfigFile(conf)
	viper.SetEnvPrefix("zipf")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		logger.Fatalf("loading config file %s failed: %v", conf, err)
	}
	if lvl, err := log.ParseLevel(viper.GetString("loglevel")); err == nil {
		logger.SetLevel(lvl)
	}
	var err error
	config, err = client.FromSettings(viper.AllSettings())
	if err != nil {
		logger.Fatalf("loading config file %s failed: %v", conf, err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
