package cmd

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/abhisek/interviewer/internal/config"
	"github.com/abhisek/interviewer/internal/embedding"
	"github.com/abhisek/interviewer/internal/feedback"
	"github.com/abhisek/interviewer/internal/judge"
	"github.com/abhisek/interviewer/internal/knowledge"
	"github.com/abhisek/interviewer/internal/llm"
	"github.com/abhisek/interviewer/internal/logger"
	"github.com/abhisek/interviewer/internal/question"
	"github.com/abhisek/interviewer/internal/session"
	"github.com/abhisek/interviewer/internal/sessionlog"
	"github.com/abhisek/interviewer/internal/store"
)

// runtime holds the long-lived dependencies of an interview run.
type runtime struct {
	cfg      config.Config
	logger   *zap.Logger
	store    *store.Store
	provider llm.Provider // nil when no provider is configured
	kb       *knowledge.Store
}

// openRuntime builds every dependency from cfg. Console logging is off
// when a full-screen TUI will own the terminal.
func openRuntime(ctx context.Context, cfg config.Config, console bool) (*runtime, error) {
	log := logger.New(logger.Options{
		File:    cfg.Paths.LogFile,
		Verbose: cfg.Verbose,
		Console: console,
	})

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	rt := &runtime{cfg: cfg, logger: log, store: st}

	// The interview works without a model, on deterministic fallbacks.
	if !cfg.LLMConfigured() {
		fmt.Fprintln(os.Stderr, "No LLM provider configured; using built-in questions and rule-based assessment.")
	} else if err := cfg.LLM.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not usable:", err)
		fmt.Fprintln(os.Stderr, "Using built-in questions and rule-based assessment.")
	} else {
		provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), log)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider unavailable:", err)
		} else {
			rt.provider = provider
		}
	}

	kb, err := loadKnowledge(ctx, cfg, log)
	if err != nil {
		log.Warn("knowledge store unavailable", zap.Error(err))
	} else {
		rt.kb = kb
	}
	return rt, nil
}

// loadKnowledge embeds the configured catalogue into a new store.
func loadKnowledge(ctx context.Context, cfg config.Config, log *zap.Logger) (*knowledge.Store, error) {
	catalogue := knowledge.DefaultCatalogue()
	if cfg.Knowledge.CataloguePath != "" {
		var err error
		catalogue, err = knowledge.LoadCatalogueFile(cfg.Knowledge.CataloguePath)
		if err != nil {
			return nil, err
		}
	}

	emb, err := embedding.New(ctx, cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}
	kb := knowledge.NewStore(emb,
		knowledge.WithOverfetch(cfg.Knowledge.Overfetch),
		knowledge.WithBatchOptions(cfg.Embedding.BatchOptions()),
		knowledge.WithLogger(log),
	)
	if err := kb.Load(ctx, catalogue); err != nil {
		return nil, err
	}
	return kb, nil
}

// newController assembles a controller for one interview.
func (r *runtime) newController() *session.Controller {
	deps := session.Deps{
		Judge:     judge.New(r.provider, judge.DefaultConfig(), r.logger),
		Questions: question.NewGenerator(r.provider, question.DefaultConfig()),
		Sink: session.MultiSink{
			sessionlog.NewFileSink(r.cfg.Paths.SessionsDir),
			sessionlog.NewDBSink(r.store.SessionRepo()),
		},
		Logger: r.logger,
	}
	// Interfaces must stay nil rather than hold a nil *knowledge.Store.
	var fkb feedback.Knowledge
	if r.kb != nil {
		deps.Knowledge = r.kb
		fkb = r.kb
	}
	deps.Feedback = feedback.NewAggregator(r.provider, feedback.DefaultConfig(), fkb, r.logger)
	return session.New(r.cfg.Interview, deps)
}

func (r *runtime) Close() {
	_ = r.logger.Sync()
	if err := r.store.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "close store:", err)
	}
}
