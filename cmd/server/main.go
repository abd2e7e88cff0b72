// Command server runs the vitamine game server: it loads configuration,
// wires up GlobalState, and serves protocol-498 connections until an
// interrupt or terminate signal arrives.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mgrech/vitamine/pkg/config"
	"github.com/mgrech/vitamine/pkg/logging"
	"github.com/mgrech/vitamine/pkg/server"
	"github.com/mgrech/vitamine/pkg/tick"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "vitamine-server",
	Short: "vitamine is a protocol-498 voxel world server",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path (YAML)")
	rootCmd.Flags().String("listen-address", "", "address to listen on, e.g. :25565")
	rootCmd.Flags().Int("max-view-distance", 0, "hard cap on a client's requested view distance")
	rootCmd.Flags().String("server-brand", "", "brand string reported to clients")
	rootCmd.Flags().String("log-level", "", "logrus level: trace, debug, info, warn, error")

	_ = viper.BindPFlag("listen_address", rootCmd.Flags().Lookup("listen-address"))
	_ = viper.BindPFlag("max_view_distance", rootCmd.Flags().Lookup("max-view-distance"))
	_ = viper.BindPFlag("server_brand", rootCmd.Flags().Lookup("server-brand"))
	_ = viper.BindPFlag("log_level", rootCmd.Flags().Lookup("log-level"))
}

func run(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(configFile)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	level, err := settings.ParsedLogLevel()
	if err != nil {
		logrus.WithError(err).Fatal("invalid log level")
	}
	logging.Init(level)
	log := logging.For("main")

	global := server.NewGlobalState(settings, tick.SystemClock{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.WithField("signal", sig.String()).Info("shutting down")
		cancel()
	}()

	go func() {
		if err := global.RunTickLoop(ctx); err != nil {
			log.WithError(err).Error("tick loop exited with error")
		}
	}()

	log.WithFields(logrus.Fields{
		"address": settings.ListenAddress,
		"brand":   settings.ServerBrand,
	}).Info("starting server")

	if err := server.ListenAndServe(ctx, global, settings.ListenAddress); err != nil {
		log.WithError(err).Fatal("listener failed")
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Fatal("server exited with error")
	}
}
