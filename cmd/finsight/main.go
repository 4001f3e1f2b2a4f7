// -----------------------------------------------------------------------
// Finsight - financial statement analysis pipeline
// -----------------------------------------------------------------------

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/finsight/internal/common"
	"github.com/ternarybob/finsight/internal/models"
	"github.com/ternarybob/finsight/internal/services/extraction"
	"github.com/ternarybob/finsight/internal/services/news"
	"github.com/ternarybob/finsight/internal/services/pipeline"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	// Command-line flags
	configFiles  configPaths // Multiple -config flags supported
	mimeType     = flag.String("mime", "", "Document media type (detected from content when omitted)")
	outputPath   = flag.String("o", "", "Write result JSON to file instead of stdout")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")

	// Global state
	config *common.Config
	logger arbor.ILogger
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	if *showVersion || *showVersionV {
		fmt.Printf("Finsight version %s\n", common.GetVersion())
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: finsight [flags] <financial-statement-file>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	documentPath := flag.Arg(0)

	// Startup sequence (REQUIRED ORDER):
	// 1. Load config (defaults -> file1 -> file2 -> ... -> env)
	// 2. Initialize logger
	// 3. Print banner

	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, err := os.Stat("finsight.toml"); err == nil {
			configFiles = append(configFiles, "finsight.toml")
		}
	}

	var err error
	config, err = common.LoadFromFiles(configFiles...)
	if err != nil {
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration files")
		os.Exit(1)
	}

	logger = common.InitLogger(config)

	common.PrintBanner(common.GetVersion())

	common.SetDefaultExchange(config.Markets.DefaultExchange)

	for _, warning := range config.Warnings() {
		logger.Warn().Msg(warning)
	}

	logger.Info().
		Strs("config_files", configFiles).
		Str("model", config.Gemini.Model).
		Str("log_level", config.Logging.Level).
		Msg("Application configuration loaded")

	// Cancel the run on SIGINT/SIGTERM; both external calls honor ctx.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	extractor, err := extraction.NewService(ctx, &config.Gemini, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize extraction service")
	}

	newsService := news.NewService(&config.AlphaVantage, logger)

	pipelineService := pipeline.NewService(extractor, newsService, logger)

	file, err := os.Open(documentPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", documentPath).Msg("Failed to open document")
	}
	defer file.Close()

	sink := progressLogger{logger: logger}

	result, err := pipelineService.Run(ctx, pipeline.Input{
		Name:     documentPath,
		MIMEType: *mimeType,
		Reader:   file,
	}, sink)
	if err != nil {
		logger.Fatal().Err(err).Msg("Analysis failed")
	}

	if err := writeResult(result, *outputPath); err != nil {
		logger.Fatal().Err(err).Msg("Failed to write result")
	}
}

// progressLogger reports pipeline progress to the application log.
type progressLogger struct {
	logger arbor.ILogger
}

func (p progressLogger) Progress(event models.ProgressEvent) {
	p.logger.Info().
		Int("percent", event.Percent).
		Msg(event.Stage)
}

// writeResult renders the pipeline result as indented JSON to stdout or
// the requested file.
func writeResult(result *pipeline.Result, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
