package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/headline/internal/assets"
	"github.com/nao1215/headline/internal/config"
	"github.com/nao1215/headline/internal/crawler"
	"github.com/nao1215/headline/internal/database"
	"github.com/nao1215/headline/internal/extract"
	"github.com/nao1215/headline/internal/fetch"
	"github.com/nao1215/headline/internal/frequency"
	"github.com/nao1215/headline/internal/log"
	"github.com/nao1215/headline/internal/model"
	"github.com/nao1215/headline/internal/pipeline"
	"github.com/nao1215/headline/internal/report"
	"github.com/nao1215/headline/internal/translate"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <section-url>",
		Short: "Sample a news section and analyze its headlines",
		Long: `Run samples the latest articles linked from a news section page.

For each article it extracts the title, a body excerpt, and the cover
image, translates the title into the target language, and finally
reports word frequencies across all translated titles.

A failing article or title never stops the run: per-article failures are
recorded in the report. The run aborts only when the section page itself
cannot be listed.

Examples:
  # Sample five articles from a section
  headline run https://elpais.com/internacional/

  # Sample ten articles, translating French titles to English
  headline run -n 10 -s fr https://www.lemonde.fr/international/

  # Output JSON report to a file
  headline run --json -o report.json https://elpais.com/internacional/

Profile file (.headline) example:
  sections:
    elpais.com:
      source_lang: es
      article_count: 8
    lemonde.fr:
      source_lang: fr`,
		Args: cobra.ExactArgs(1),
		RunE: runRunCmd,
	}

	// Sampling flags
	cmd.Flags().IntP("count", "n", config.DefaultArticleCount,
		"Number of articles to sample from the section page")
	cmd.Flags().Int("excerpt-length", config.DefaultExcerptLength,
		"Excerpt length in characters")
	cmd.Flags().String("pattern", "",
		"Regular expression an article URL path must match (default: dated paths)")

	// Language flags
	cmd.Flags().StringP("source-lang", "s", config.DefaultSourceLang,
		"Language the section's articles are written in")
	cmd.Flags().StringP("target-lang", "l", config.DefaultTargetLang,
		"Language titles are translated into")

	// Frequency analysis flags
	cmd.Flags().StringSlice("stop-words", nil,
		"Replace the default stop-word set (comma separated)")
	cmd.Flags().Int("min-word-length", config.DefaultMinWordLength,
		"Minimum word length counted by the frequency analysis")
	cmd.Flags().Int("min-repeat-count", config.DefaultMinRepeatCount,
		"Lowest occurrence count shown in the frequency table")

	// Network behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each network request")
	cmd.Flags().Int("max-retries", config.DefaultMaxRetries,
		"Retry attempts for transient failures")
	cmd.Flags().Duration("retry-backoff", config.DefaultRetryBackoff,
		"Initial wait between retries (doubles each attempt)")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Number of articles extracted in parallel")
	cmd.Flags().Int("translate-concurrency", config.DefaultTranslateConcurrency,
		"Number of outstanding translation requests")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent with every request")

	// Storage flags
	cmd.Flags().String("images-dir", "",
		"Directory for downloaded cover images (default: XDG data directory)")
	cmd.Flags().Bool("no-images", false,
		"Skip downloading cover images")
	cmd.Flags().Bool("no-db", false,
		"Do not record this run in the history database")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Profile file path (default: .headline in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runRunCmd executes the run command.
func runRunCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewTrimLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runPipeline(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags and the profile
// file. Profile values apply first, then flags the user set explicitly
// override them.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.SectionURL = args[0]

	var err error

	cfg.ArticleCount, err = cmd.Flags().GetInt("count")
	if err != nil {
		return nil, err
	}
	cfg.ExcerptLength, err = cmd.Flags().GetInt("excerpt-length")
	if err != nil {
		return nil, err
	}
	cfg.ArticlePattern, err = cmd.Flags().GetString("pattern")
	if err != nil {
		return nil, err
	}
	cfg.SourceLang, err = cmd.Flags().GetString("source-lang")
	if err != nil {
		return nil, err
	}
	cfg.TargetLang, err = cmd.Flags().GetString("target-lang")
	if err != nil {
		return nil, err
	}

	stopWords, err := cmd.Flags().GetStringSlice("stop-words")
	if err != nil {
		return nil, err
	}
	if len(stopWords) > 0 {
		cfg.StopWords = stopWords
	}

	cfg.MinWordLength, err = cmd.Flags().GetInt("min-word-length")
	if err != nil {
		return nil, err
	}
	cfg.MinRepeatCount, err = cmd.Flags().GetInt("min-repeat-count")
	if err != nil {
		return nil, err
	}
	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}
	cfg.MaxRetries, err = cmd.Flags().GetInt("max-retries")
	if err != nil {
		return nil, err
	}
	cfg.RetryBackoff, err = cmd.Flags().GetDuration("retry-backoff")
	if err != nil {
		return nil, err
	}
	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}
	cfg.TranslateConcurrency, err = cmd.Flags().GetInt("translate-concurrency")
	if err != nil {
		return nil, err
	}
	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}
	cfg.ImagesDir, err = cmd.Flags().GetString("images-dir")
	if err != nil {
		return nil, err
	}

	noImages, err := cmd.Flags().GetBool("no-images")
	if err != nil {
		return nil, err
	}
	cfg.SaveImages = !noImages

	noDB, err := cmd.Flags().GetBool("no-db")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noDB
	cfg.DBDir = config.XDGDataDir()

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}
	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	if err := applyProfile(cmd, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyProfile loads the profile file and applies the section's merged
// profile to the config. Flag values the user set explicitly win over
// the profile.
func applyProfile(cmd *cobra.Command, cfg *config.Config) error {
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath == "" {
		if explicitConfigPath {
			return fmt.Errorf("profile file not found: %s", cfg.ConfigFilePath)
		}
		cfg.Profiles = &config.File{Sections: make(map[string]config.SectionProfile)}
		return nil
	}

	profiles, err := config.LoadConfigFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load profile file %s: %w", configPath, err)
	}
	cfg.Profiles = profiles

	section, err := url.Parse(cfg.SectionURL)
	if err != nil {
		return nil
	}

	flagValues := *cfg
	cfg.Apply(profiles.GetSectionProfile(section.Hostname()))

	// Restore explicitly set flags over profile values.
	if cmd.Flags().Changed("count") {
		cfg.ArticleCount = flagValues.ArticleCount
	}
	if cmd.Flags().Changed("excerpt-length") {
		cfg.ExcerptLength = flagValues.ExcerptLength
	}
	if cmd.Flags().Changed("source-lang") {
		cfg.SourceLang = flagValues.SourceLang
	}
	if cmd.Flags().Changed("target-lang") {
		cfg.TargetLang = flagValues.TargetLang
	}
	if cmd.Flags().Changed("stop-words") {
		cfg.StopWords = flagValues.StopWords
	}
	if cmd.Flags().Changed("min-word-length") {
		cfg.MinWordLength = flagValues.MinWordLength
	}
	if cmd.Flags().Changed("pattern") {
		cfg.ArticlePattern = flagValues.ArticlePattern
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = flagValues.Timeout
	}

	return nil
}

// runPipeline wires the pipeline from the config and executes one run.
func runPipeline(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting run",
		"section", cfg.SectionURL,
		"count", cfg.ArticleCount,
		"languages", cfg.SourceLang+" -> "+cfg.TargetLang,
		"saveToDB", cfg.SaveToDB,
	)

	var db *database.RunDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Debug("database opened", "dir", cfg.DBDir)
	}

	p := createPipeline(cfg, logger)
	runReport := model.NewRunReport(cfg.SectionURL, cfg.ArticleCount, cfg.SourceLang, cfg.TargetLang)

	fmt.Printf("Sampling %s...\n", cfg.SectionURL)
	startTime := time.Now()

	runErr := p.Execute(ctx, runReport)
	if runErr != nil {
		logger.Error("run aborted", "section", cfg.SectionURL, "error", runErr)
	} else {
		fmt.Printf("Run completed in %s\n\n", time.Since(startTime).Round(time.Millisecond))
	}

	if err := outputReport(cfg, runReport); err != nil {
		logger.Error("report output failed", "error", err)
	}

	if db != nil {
		id, err := db.SaveRun(ctx, runReport)
		if err != nil {
			logger.Error("failed to save run", "error", err)
		} else {
			logger.Debug("run saved", "id", id)
		}
	}

	return runErr
}

// createPipeline builds the four pipeline steps from the config.
func createPipeline(cfg *config.Config, logger *slog.Logger) *pipeline.Pipeline {
	pageClient := fetch.NewClient(cfg.Timeout,
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
		fetch.WithMaxRetries(cfg.MaxRetries),
		fetch.WithRetryBackoff(cfg.RetryBackoff),
		fetch.WithLogger(logger),
	)

	lister := crawler.NewLister(pageClient,
		crawler.WithArticlePattern(cfg.ArticlePattern),
		crawler.WithListerLogger(logger),
	)

	extractor := extract.NewExtractor(pageClient,
		extract.WithExcerptLength(cfg.ExcerptLength),
		extract.WithLogger(logger),
	)

	var assetFetcher *assets.Fetcher
	if cfg.SaveImages {
		// Cover images are cosmetic: a single retry keeps slow image
		// CDNs from stretching the run.
		binaryClient := fetch.NewClient(cfg.Timeout,
			fetch.WithUserAgent(cfg.UserAgent),
			fetch.WithMaxBodySize(cfg.MaxBodySize),
			fetch.WithMaxRetries(1),
			fetch.WithRetryBackoff(cfg.RetryBackoff),
			fetch.WithLogger(logger),
		)
		assetFetcher = assets.NewFetcher(
			binaryClient,
			assets.NewDirStore(cfg.ImagesDirOrDefault()),
			assets.WithFetcherLogger(logger),
		)
	}

	translator := translate.NewRetryingTranslator(
		translate.NewGoogleTranslator(cfg.Timeout,
			translate.WithUserAgent(cfg.UserAgent),
			translate.WithLogger(logger),
		),
		translate.WithMaxRetries(cfg.MaxRetries),
		translate.WithBackoff(cfg.RetryBackoff),
		translate.WithRetryLogger(logger),
	)

	analyzer := frequency.NewAnalyzer(
		frequency.WithStopWords(cfg.StopWords),
		frequency.WithMinWordLength(cfg.MinWordLength),
	)

	steps := []pipeline.Step{
		pipeline.NewListStep(lister),
		pipeline.NewExtractStep(extractor, assetFetcher, cfg.Concurrency),
		pipeline.NewTranslateStep(translator, cfg.TranslateConcurrency),
		pipeline.NewAnalyzeStep(analyzer),
	}

	return pipeline.NewPipeline(steps, pipeline.WithLogger(logger))
}

// outputReport renders the run report per the configured format and
// destination.
func outputReport(cfg *config.Config, runReport *model.RunReport) error {
	output := os.Stdout
	if cfg.ReportFile != "" {
		if dir := filepath.Dir(cfg.ReportFile); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create report directory: %w", err)
			}
		}
		f, err := os.Create(cfg.ReportFile)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output,
			report.WithMarkdownMinRepeatCount(cfg.MinRepeatCount))
	default:
		writer = report.NewSimpleWriter(output,
			report.WithMinRepeatCount(cfg.MinRepeatCount),
			report.WithVerbose(cfg.Verbose))
	}

	if _, err := writer.Write(runReport); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
