// Package db2django converts the schema of a legacy desktop database
// file (or a live MySQL/PostgreSQL database) into Django source files:
// models.py, admin.py, and optionally a JSON data fixture and a
// PostgreSQL data dump.
package db2django

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/db2django/db2django/cache"
	"github.com/db2django/db2django/django"
	"github.com/db2django/db2django/emit"
	"github.com/db2django/db2django/logger"
	"github.com/db2django/db2django/reader"
	"github.com/db2django/db2django/schema"
)

// Re-export the pieces callers normally need.
type Options = django.Options
type App = django.App
type Reader = reader.Reader

var (
	OpenReader = reader.Open
	NewApp     = django.NewApp
)

// Config describes one conversion run. Output paths left empty are
// skipped; "-" sends the artifact to stdout behind a banner.
type Config struct {
	Driver string
	DSN    string

	ModelsFile  string
	AdminFile   string
	FixtureFile string
	PGFile      string

	App    django.Options
	Cache  cache.Cache
	Logger logger.Logger
}

// Run executes the Reader -> Mapper -> Emitter pipeline once.
func Run(ctx context.Context, cfg Config) error {
	log := cfg.Logger
	if log == nil {
		log = logger.NewStdLogger()
	}

	r, err := reader.Open(cfg.Driver, cfg.DSN, log)
	if err != nil {
		return err
	}
	defer r.Close()

	app, err := Introspect(ctx, r, cfg)
	if err != nil {
		return err
	}

	outputs := map[string]struct {
		path string
		emit func(w io.Writer) error
	}{
		"models":  {cfg.ModelsFile, func(w io.Writer) error { return emit.Models(app, w) }},
		"admin":   {cfg.AdminFile, func(w io.Writer) error { return emit.Admin(app, w) }},
		"fixture": {cfg.FixtureFile, func(w io.Writer) error { return emit.Fixture(ctx, app, r, w) }},
		"pg":      {cfg.PGFile, func(w io.Writer) error { return emit.PGDump(ctx, app, r, w) }},
	}

	for _, out := range emit.Outputs {
		o := outputs[out.Name]
		if o.path == "" {
			continue
		}
		log.Info("generating %s", out.Title)
		if err := emit.Write(o.path, out, o.emit); err != nil {
			return err
		}
	}
	return nil
}

// Introspect reads the source schema, through the snapshot cache when
// one is configured, and builds the model graph.
func Introspect(ctx context.Context, r reader.Reader, cfg Config) (*django.App, error) {
	log := cfg.Logger
	if log == nil {
		log = logger.NewStdLogger()
	}

	tables, rels, err := Snapshot(ctx, r, cfg)
	if err != nil {
		return nil, err
	}

	app, err := django.NewApp(tables, rels, cfg.App, log)
	if err != nil {
		return nil, err
	}
	log.Info("converted %d tables into %d models", len(tables), len(app.Models()))
	return app, nil
}

// Snapshot returns the introspected tables and relationships, consulting
// the cache first.
func Snapshot(ctx context.Context, r reader.Reader, cfg Config) ([]*schema.Table, []*schema.Relationship, error) {
	log := cfg.Logger
	if log == nil {
		log = logger.NewStdLogger()
	}

	key := cache.Key(cfg.Driver, cfg.DSN)
	if cfg.Cache != nil {
		if snap, ok := cfg.Cache.Get(ctx, key); ok {
			log.Info("using cached schema snapshot from %s", snap.TakenAt.Format("2006-01-02 15:04:05"))
			return snap.Tables, snap.Relationships, nil
		}
	}

	tables, err := r.Tables(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("read schema: %w", err)
	}
	rels, err := r.Relationships(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("read relationships: %w", err)
	}

	if cfg.Cache != nil {
		snap := &cache.Snapshot{Tables: tables, Relationships: rels, TakenAt: time.Now()}
		if err := cfg.Cache.Set(ctx, key, snap); err != nil {
			log.Warn("schema snapshot not cached: %v", err)
		}
	}
	return tables, rels, nil
}
