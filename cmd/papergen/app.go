package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mind-engage/mindengage-papergen/internal/config"
	"github.com/mind-engage/mindengage-papergen/internal/db"
	"github.com/mind-engage/mindengage-papergen/internal/exam"
	"github.com/mind-engage/mindengage-papergen/internal/generation"
	plog "github.com/mind-engage/mindengage-papergen/internal/log"
	"github.com/mind-engage/mindengage-papergen/internal/paper"
	"github.com/mind-engage/mindengage-papergen/internal/storage"
)

// app holds the wired components shared by serve and generate.
type app struct {
	cfg      config.Config
	log      *zap.SugaredLogger
	db       *sql.DB
	subjects *storage.SQLSubjectStore
	blobs    *storage.FSStore
	papers   *paper.Service
}

func newLogger(cfg config.Config) (*zap.SugaredLogger, error) {
	conf := plog.Defaults()
	if cfg.LogOutput != "" {
		conf.Output = cfg.LogOutput
	}
	if cfg.LogPath != "" {
		conf.Path = cfg.LogPath
	}
	if cfg.LogLevel != "" {
		conf.Level = cfg.LogLevel
	}
	return plog.New(conf)
}

// newGenerator picks the Gemini client when a key is configured, otherwise
// the local generator.
func newGenerator(cfg config.Config, offline bool, log *zap.SugaredLogger) generation.Generator {
	if offline || cfg.GeminiAPIKey == "" {
		log.Infow("using local question generator", "offline", offline)
		return generation.Static{}
	}
	gem := generation.NewGeminiClient(generation.GeminiOptions{
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
		Timeout: cfg.GenerationTimeout,
	})
	return generation.NewFallback(gem, cfg.GenerationRetries+1, cfg.GenerationBackoff, log)
}

func newApp(ctx context.Context, cfg config.Config, offline bool) (*app, error) {
	log, err := newLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	dbh, err := db.Open(openCtx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("db open failed: %w", err)
	}

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		dbh.Close()
		return nil, fmt.Errorf("blob store: %w", err)
	}

	subjects := storage.NewSQLSubjectStore(dbh)
	papers := paper.NewService(subjects, newGenerator(cfg, offline, log),
		paper.WithLogger(log),
		paper.WithBlobStore(bs),
	)
	return &app{cfg: cfg, log: log, db: dbh, subjects: subjects, blobs: bs, papers: papers}, nil
}

// importSubjects replaces the stored subjects with the JSON list in path.
func (a *app) importSubjects(ctx context.Context, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var in []exam.Subject
	if err := json.Unmarshal(raw, &in); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	saved, err := a.subjects.SaveSubjects(ctx, in)
	if err != nil {
		return err
	}
	a.log.Infow("subjects imported", "file", path, "count", len(saved))
	return nil
}

func (a *app) Close() {
	_ = a.log.Sync()
	_ = a.db.Close()
}
