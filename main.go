package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/client"
	"github.com/pocketledger/backend/internal/config"
	"github.com/pocketledger/backend/internal/currency"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/notify"
	"github.com/pocketledger/backend/internal/router"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "pocketledger",
		Short:             "Envelope budgeting ledger",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initConfig,
		RunE:              serve,
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional, the environment takes precedence)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE:  serve,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate an amount expression",
		Args:  cobra.MinimumNArgs(1),
		// eval works without API_URL
		PersistentPreRunE: initCurrency,
		RunE:              eval,
	})

	importCmd := &cobra.Command{
		Use:   "import <statement.csv>",
		Short: "Import a CSV statement into an account through the API at API_URL",
		Args:  cobra.ExactArgs(1),
		RunE:  importStatement,
	}
	importCmd.Flags().String("account", "", "ID of the account to import into")
	_ = importCmd.MarkFlagRequired("account")
	rootCmd.AddCommand(importCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.GinMode)
	setupLogging(cfg.LogFormat)

	return currency.Configure(cfg.CurrencyLocale, cfg.CurrencySymbol)
}

func initCurrency(_ *cobra.Command, _ []string) error {
	v := config.New()
	return currency.Configure(v.GetString("currency_locale"), v.GetString("currency_symbol"))
}

// setupLogging configures the global logger. The format can be explicitly
// set. If it is not set, it defaults to human readable for development
// and JSON for release.
func setupLogging(format string) {
	output := io.Writer(os.Stdout)
	if (format == "" && gin.IsDebugging()) || format == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()
}

func serve(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	err := os.MkdirAll(cfg.DataDir, os.ModePerm)
	if err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	err = models.Connect(cfg.DBPath)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.DBPath).Msg("database")
		return err
	}

	if cfg.AMQPURL != "" {
		publisher, err := notify.Dial(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Error().Err(err).Msg("amqp")
			return err
		}
		defer publisher.Close()

		notify.Register(publisher)
		log.Info().Str("exchange", cfg.AMQPExchange).Msg("publishing invalidations")
	}

	r, teardown, err := router.Config(cfg.APIURL, router.WithCORS(cfg.CorsAllowOrigins), router.WithPprof(cfg.EnablePprof))
	defer teardown()
	if err != nil {
		log.Error().Err(err).Msg("router")
		return err
	}
	router.AttachRoutes(r.Group("/"))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		log.Info().Msg("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("addr", srv.Addr).Str("api_url", cfg.APIURL.String()).Msg("listening")
	err = srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server")
		return err
	}

	return nil
}

func importStatement(cmd *cobra.Command, args []string) error {
	flag, _ := cmd.Flags().GetString("account")
	accountID, err := uuid.Parse(flag)
	if err != nil {
		return fmt.Errorf("invalid account ID: %w", err)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	c := client.New(cfg.APIURL.String())
	result, err := c.ImportStatement(cmd.Context(), accountID, filepath.Base(args[0]), f)
	if err != nil {
		return err
	}

	for _, e := range result.Errors {
		log.Warn().Msg(e)
	}
	log.Info().Int("created", len(result.Created)).Int("duplicates", result.Duplicates).Int("failed", len(result.Errors)).Msg("import finished")

	return nil
}

func eval(cmd *cobra.Command, args []string) error {
	value, err := ledger.Evaluate(strings.Join(args, " "))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", value.String(), currency.Default.FormatDecimal(value))
	return nil
}
