// cmd/tools/requirement-extractor/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/sana-bil/Smart-Scholar/internal/common/config"
	"github.com/sana-bil/Smart-Scholar/internal/common/database"
	"github.com/sana-bil/Smart-Scholar/internal/common/logger"
	"github.com/sana-bil/Smart-Scholar/internal/extract"
	"github.com/sana-bil/Smart-Scholar/internal/storage"
)

// The extractor runs offline over the full catalog: it reads every
// program's raw requirement text, parses it into structured records and
// replaces the requirement table in one transaction.
func main() {
	strategy := flag.String("strategy", "rules", "extraction strategy: rules or entity")
	timeout := flag.Duration("timeout", 10*time.Minute, "overall run timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	var extractor extract.Extractor
	switch *strategy {
	case "rules":
		extractor = extract.NewRuleExtractor()
	case "entity":
		extractor = extract.NewEntityExtractor()
	default:
		fmt.Fprintf(os.Stderr, "unknown strategy %q (want rules or entity)\n", *strategy)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		zapLog.Fatal("postgres connection failed", zap.Error(err))
	}
	defer pg.Close()
	if err := pg.Ping(ctx); err != nil {
		zapLog.Fatal("postgres ping failed", zap.Error(err))
	}

	programs, err := storage.NewProgramRepository(pg.DB, log).ListPrograms(ctx)
	if err != nil {
		zapLog.Fatal("catalog read failed", zap.Error(err))
	}
	zapLog.Info("catalog loaded",
		zap.Int("programs", len(programs)),
		zap.String("strategy", *strategy),
	)

	writer := storage.NewRequirementRepository(pg.DB, log)
	summary, err := extract.NewRunner(extractor, writer, log).Run(ctx, programs)
	if err != nil {
		zapLog.Fatal("extraction run failed", zap.Error(err))
	}

	zapLog.Info("extraction complete",
		zap.String("batch_id", summary.BatchID),
		zap.Int("total", summary.Total),
		zap.Int("parsed", summary.Parsed),
		zap.Int("skipped", summary.Skipped),
		zap.Duration("duration", summary.Duration),
	)
}
