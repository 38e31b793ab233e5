package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/wikibot/internal/config"
	logpkg "github.com/kailas-cloud/wikibot/internal/logger"
	"github.com/kailas-cloud/wikibot/internal/metrics"
	"github.com/kailas-cloud/wikibot/internal/transport/azsearch"
	openaiChat "github.com/kailas-cloud/wikibot/internal/transport/openai"
	answeruc "github.com/kailas-cloud/wikibot/internal/usecase/answer"
	chatuc "github.com/kailas-cloud/wikibot/internal/usecase/chat"
	healthuc "github.com/kailas-cloud/wikibot/internal/usecase/health"
	qauc "github.com/kailas-cloud/wikibot/internal/usecase/qa"
	searchuc "github.com/kailas-cloud/wikibot/internal/usecase/search"
)

// app is the composition root shared by every subcommand.
type app struct {
	env    string
	cfg    config.Config
	logger *zap.Logger
	qa     *qauc.Service
	health *healthuc.Service
}

// loadApp builds the app. Replaced in tests.
var loadApp = newApp

// newApp loads configuration and wires long-lived clients into services.
// Missing credentials do not fail startup: the pipeline is built disabled.
// logToFile sends log lines to logging.file (TUI mode).
func newApp(logToFile bool) (*app, error) {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	opts := logpkg.Options{Level: cfg.Logging.Level}
	if logToFile {
		opts.File = cfg.Logging.File
		if opts.File == "" {
			opts.File = "wikibot.log"
		}
	}
	logger, err := logpkg.NewLogger(env, opts)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	metrics.RegisterServiceMetrics()

	a := &app{env: env, cfg: cfg, logger: logger}

	if missing := cfg.Missing(); len(missing) > 0 {
		logger.Warn("wikibot is not configured, service-backed actions are disabled",
			zap.Strings("missing", missing))
		a.qa = qauc.Disabled(missing)
		a.health = healthuc.New(nil, nil, missing)
		return a, nil
	}

	index := azsearch.NewClient(&azsearch.Config{
		Endpoint:   cfg.Search.Endpoint,
		APIKey:     cfg.Search.APIKey,
		Index:      cfg.Search.Index,
		APIVersion: cfg.Search.APIVersion,
		Timeout:    time.Duration(cfg.Search.TimeoutSec) * time.Second,
		Logger:     logger,
	})

	// Base provider (with transport metrics built-in)
	chat := openaiChat.NewChat(&openaiChat.Config{
		Provider:    cfg.Chat.Provider,
		APIKey:      cfg.Chat.APIKey,
		BaseURL:     cfg.Chat.Endpoint,
		APIVersion:  cfg.Chat.APIVersion,
		Model:       cfg.Chat.Deployment,
		Temperature: cfg.Chat.Temp,
		Timeout:     time.Duration(cfg.Chat.TimeoutSec) * time.Second,
		Logger:      logger,
	})
	// Instrumented (usage + logging)
	instrumented := chatuc.NewInstrumentedChat(chat, cfg.Chat.Provider, cfg.Chat.Deployment, logger)

	searchSvc := searchuc.New(index, searchuc.Options{
		Highlight:             cfg.Search.Highlight,
		Semantic:              cfg.Search.Semantic,
		SemanticConfiguration: cfg.Search.SemanticConfiguration,
	}, logger)
	answerSvc := answeruc.New(instrumented, cfg.Answer.ContextBudget, cfg.Answer.Language, logger)

	a.qa = qauc.New(searchSvc, answerSvc)
	a.health = healthuc.New(index, chat, nil)

	logger.Info("Clients created",
		zap.String("search_index", cfg.Search.Index),
		zap.Bool("highlight", cfg.Search.Highlight),
		zap.Bool("semantic", cfg.Search.Semantic),
		zap.String("chat_provider", cfg.Chat.Provider),
		zap.String("deployment", cfg.Chat.Deployment),
	)
	return a, nil
}

func (a *app) close() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}
