package main

import (
	"context"
	"flag"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/ksuid"

	"github.com/timotheicorneille/grocy-products/env"
	"github.com/timotheicorneille/grocy-products/importer"
)

// Runs one import from the input file into the Grocy server.
// This function blocks until the run finishes or a termination
// signal cancels it.
func main() {
	envPath := flag.String("env", "", "path to .env file")
	logFormat := flag.String("log-format", "console", "log format (one of 'json', 'console')")
	filePath := flag.String("file", "", "path to the input file (overrides IMPORT_FILE)")
	flag.Parse()

	// Set up structured logging
	zerolog.TimeFieldFormat = time.RFC3339Nano
	var logger zerolog.Logger
	switch *logFormat {
	case "console":
		output := zerolog.ConsoleWriter{Out: os.Stdout}
		logger = zerolog.New(output).With().Timestamp().Logger()
	case "json":
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	default:
		log.Fatal().Str("log_format", *logFormat).Msg("unknown log format given")
	}
	stdlog.SetFlags(0)
	stdlog.SetOutput(logger)

	// Tag every event of this run with a unique identifier
	logger = logger.With().Str("run_id", ksuid.New().String()).Logger()

	// Load the .env file if it is specified
	if envPath != nil && *envPath != "" {
		err := godotenv.Load(*envPath)
		if err != nil {
			logger.Fatal().Err(err).Str("env_path", *envPath).Msg("error loading .env file")
		} else {
			logger.Info().Str("env_path", *envPath).Msg("loaded environment variables from file")
		}
	}

	path := *filePath
	if path == "" {
		var err error
		path, err = env.GetEnv("import file path", "IMPORT_FILE")
		if err != nil {
			logger.Fatal().Err(err).Msg("no input file given")
		}
	}

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	// Propagate termination signals to the cancellation of the run context
	go func() {
		<-done
		cancel()
	}()

	// Initialize the importer object
	imp, err := importer.NewImporter(logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not initialize importer")
	}

	err = imp.ImportFromFile(runCtx, path)
	if err != nil {
		logger.Fatal().Err(err).Msg("import failed")
	}
}
