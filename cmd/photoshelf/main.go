// Package main provides the entry point for Photoshelf, a local photo
// browsing and tagging tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	photoshelf "github.com/ramon-reichert/photoshelf/internal"
	"github.com/ramon-reichert/photoshelf/internal/analyze"
	"github.com/ramon-reichert/photoshelf/internal/analyze/gemini"
	"github.com/ramon-reichert/photoshelf/internal/analyze/local"
	"github.com/ramon-reichert/photoshelf/internal/filter"
	"github.com/ramon-reichert/photoshelf/internal/library"
	"github.com/ramon-reichert/photoshelf/internal/platform/config"
	"github.com/ramon-reichert/photoshelf/internal/platform/kronk"
	"github.com/ramon-reichert/photoshelf/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("\nERROR: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		dir       = flag.String("dir", "", "folder of images to import (required)")
		folder    = flag.String("folder", "", "restrict to paths starting with this prefix")
		tags      = flag.String("tags", "", "comma-separated tags a photo must all carry")
		minRating = flag.Int("min-rating", 0, "minimum rating, 0 means no restriction")
		query     = flag.String("query", "", "text search over filenames and tags")
		order     = flag.String("sort", "", "sort order: date-desc, date-asc, rating-desc, name-asc")
		doAnalyze = flag.Bool("analyze", false, "run vision analysis on every imported photo")
	)
	flag.Parse()

	if *dir == "" {
		flag.Usage()
		return fmt.Errorf("missing -dir")
	}

	// A .env file is optional; the environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()
	log := logger.New()

	analyzer, cleanup, err := buildAnalyzer(ctx, log, cfg, *doAnalyze)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	svc := photoshelf.New(photoshelf.Config{
		Log:             log,
		Analyzer:        analyzer,
		AnalysisTimeout: cfg.Analysis.Timeout,
		MaxSide:         cfg.Imaging.MaxSide,
		Quality:         cfg.Imaging.Quality,
	})

	count, err := svc.ImportFolder(ctx, *dir)
	if err != nil {
		return fmt.Errorf("import folder: %w", err)
	}
	if count == 0 {
		return nil
	}

	if *doAnalyze {
		if !svc.AnalysisConfigured() {
			log(ctx, "analysis disabled", "reason", "no credential configured")
		} else {
			analyzeAll(ctx, log, svc)
		}
	}

	criteria := filter.Criteria{
		FolderPrefix: *folder,
		MinRating:    *minRating,
		SearchText:   *query,
	}
	if *tags != "" {
		criteria.RequiredTags = strings.Split(*tags, ",")
	}

	photos := svc.Filter(criteria)
	if *order != "" {
		photos = filter.Sort(photos, filter.Order(*order))
	}

	printFacets(svc)
	printPhotos(photos, svc.Store.Len())

	return nil
}

func buildAnalyzer(ctx context.Context, log logger.Logger, cfg *config.AppConfig, wanted bool) (analyze.Analyzer, func(), error) {
	if !wanted || !cfg.Analyzable() {
		return nil, nil, nil
	}

	if cfg.Analysis.Local {
		if err := kronk.InstallDependencies(ctx, log); err != nil {
			return nil, nil, fmt.Errorf("install dependencies: %w", err)
		}

		paths, err := kronk.DownloadVisionModel(ctx, log)
		if err != nil {
			return nil, nil, fmt.Errorf("download vision model: %w", err)
		}

		if err := kronk.Init(); err != nil {
			return nil, nil, fmt.Errorf("kronk init: %w", err)
		}

		backend := local.New(local.Config{Log: log, Paths: paths})
		if err := backend.Load(ctx); err != nil {
			return nil, nil, fmt.Errorf("load vision model: %w", err)
		}

		cleanup := func() {
			if err := backend.Unload(context.Background()); err != nil {
				log(ctx, "unload vision model", "error", err)
			}
		}
		return backend, cleanup, nil
	}

	client, err := gemini.New(ctx, cfg.Analysis.APIKey, cfg.Analysis.Model)
	if err != nil {
		return nil, nil, fmt.Errorf("new gemini client: %w", err)
	}
	return client, nil, nil
}

func analyzeAll(ctx context.Context, log logger.Logger, svc *photoshelf.Service) {
	for _, p := range svc.Photos() {
		if err := svc.Analyze(ctx, p.ID); err != nil {
			log(ctx, "analysis failed", "path", p.Metadata.Path, "error", err)
		}
	}
}

func printFacets(svc *photoshelf.Service) {
	facets := svc.Facets()

	fmt.Println("\nFolders:")
	if len(facets.Folders) == 0 {
		fmt.Println("  (none)")
	}
	for _, f := range facets.Folders {
		fmt.Printf("  /%s\n", f)
	}

	fmt.Println("\nTags:")
	if len(facets.TagCounts) == 0 {
		fmt.Println("  (none)")
	}
	for _, tc := range facets.TagsByCount() {
		fmt.Printf("  %s (%d)\n", tc.Tag, tc.Count)
	}
}

func printPhotos(photos []library.Photo, total int) {
	fmt.Printf("\nShowing %d of %d photos:\n", len(photos), total)

	for _, p := range photos {
		line := fmt.Sprintf("  %-40s %8s  %s", p.Metadata.Path, humanize.Bytes(uint64(p.Metadata.SizeBytes)), stars(p.Rating))
		if len(p.Tags) > 0 {
			line += "  [" + strings.Join(p.Tags, ", ") + "]"
		}
		fmt.Println(line)
		if p.AIDescription != "" {
			fmt.Printf("      %s\n", p.AIDescription)
		}
	}
}

func stars(rating int) string {
	return strings.Repeat("*", rating) + strings.Repeat(".", 5-rating)
}
