package cmd

import (
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"
)

var RootCmd = &cobra.Command{
	Use:   "tacandle",
	Short: "candle aggregation and technical indicators",
	Long:  "tacandle resamples OHLCV candles and evaluates indicator strategies over them",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadDotenv(viper.GetString("dotenv")); err != nil {
			return err
		}

		setupLogging(log.StandardLogger())

		if bind := viper.GetString("metrics-bind"); viper.GetBool("metrics") && bind != "" {
			go serveMetrics(bind)
		}
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	PersistentFlags(RootCmd.PersistentFlags())
}

// PersistentFlags defines the flags shared by every command.
func PersistentFlags(flags *pflag.FlagSet) {
	flags.Bool("debug", false, "debug flag")
	flags.String("config", "tacandle.yaml", "strategy config file")
	flags.String("candles", "", "candles json file, an array of {timestamp, open, high, low, close, volume}")
	flags.String("dotenv", ".env.local", "dotenv file loaded before the flags are read")
	flags.String("log-file", "", "also write json logs to this file, rotated by size")
	flags.Bool("metrics", false, "enable prometheus metrics")
	flags.String("metrics-bind", "", "serve /metrics on this address, e.g. :9090")
}

func loadDotenv(dotenvFile string) error {
	if dotenvFile == "" {
		return nil
	}

	if _, err := os.Stat(dotenvFile); err != nil {
		return nil
	}

	if err := godotenv.Load(dotenvFile); err != nil {
		log.WithError(err).Errorf("error loading dotenv file %s", dotenvFile)
		return err
	}
	return nil
}

func setupLogging(logger *log.Logger) {
	logger.SetFormatter(&prefixed.TextFormatter{})

	if viper.GetBool("debug") {
		logger.SetLevel(log.DebugLevel)
	}

	logFile := viper.GetString("log-file")
	if logFile == "" {
		return
	}

	writer := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100, // megabytes
		MaxBackups: 7,
		MaxAge:     28, // days
	}

	logger.AddHook(
		lfshook.NewHook(
			lfshook.WriterMap{
				log.DebugLevel: writer,
				log.InfoLevel:  writer,
				log.WarnLevel:  writer,
				log.ErrorLevel: writer,
				log.FatalLevel: writer,
			},
			&log.JSONFormatter{},
		),
	)
}

func serveMetrics(bind string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	log.Infof("serving metrics on %s", bind)
	if err := http.ListenAndServe(bind, mux); err != nil {
		log.WithError(err).Error("metrics server stopped")
	}
}

func Execute() {
	viper.SetEnvPrefix("tacandle")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// Enable environment variable binding, the env vars are not overloaded yet.
	viper.AutomaticEnv()

	// Once the flags are defined, we can bind config keys with flags.
	if err := viper.BindPFlags(RootCmd.PersistentFlags()); err != nil {
		log.WithError(err).Errorf("failed to bind persistent flags. please check the flag settings.")
	}

	if err := viper.BindPFlags(RootCmd.Flags()); err != nil {
		log.WithError(err).Errorf("failed to bind local flags. please check the flag settings.")
	}

	if err := RootCmd.Execute(); err != nil {
		log.WithError(err).Fatalf("cannot execute command")
	}
}
