// Command housight runs the full housing-market analysis pipeline:
// generate a synthetic dataset, explore it, engineer features, train a
// linear model and a random forest, evaluate both on a held-out split, and
// print the insight report to stdout. Charts land as PNG files under the
// figures directory; logs go to stderr as JSON.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/housight/housight/dataset"
	"github.com/housight/housight/eda"
	"github.com/housight/housight/evaluation"
	"github.com/housight/housight/insight"
	"github.com/housight/housight/pkg/log"
	"github.com/housight/housight/training"
)

// Run parameters. The pipeline is a single deterministic run; everything
// that shapes it lives here.
const (
	seed           = 42
	sampleCount    = 2000
	testFraction   = 0.2
	numTrees       = 100
	topImportances = 10

	figuresDir = "figures"
	logLevel   = "info"
)

func main() {
	log.Setup(logLevel)

	if err := run(); err != nil {
		slog.Error("pipeline failed", log.ErrAttr(err))
		os.Exit(1)
	}
}

func run() error {
	start := time.Now()

	table, err := dataset.NewGenerator(seed).Generate(sampleCount)
	if err != nil {
		return err
	}
	slog.Info("dataset generated",
		log.StageKey, "generate",
		log.SamplesKey, table.NumRows(),
		log.FeaturesKey, table.NumColumns())

	if err := dataset.EngineerFeatures(table); err != nil {
		return err
	}
	slog.Info("features engineered",
		log.StageKey, "engineer",
		log.FeaturesKey, table.NumColumns())

	summary, err := eda.Summarize(table)
	if err != nil {
		return err
	}
	edaFigures, err := eda.RenderPlots(table, summary, figuresDir)
	if err != nil {
		return err
	}
	slog.Info("exploratory analysis done",
		log.StageKey, "eda",
		"mean_value", summary.MeanValue,
		"median_value", summary.MedianValue,
		"top_proximity", string(summary.ValueByProximity[0].Proximity),
		"top_correlate", summary.TopCorrelated.Column,
		"figures", len(edaFigures))

	result, err := training.Run(table, training.Config{
		Seed:         seed,
		TestFraction: testFraction,
		NumTrees:     numTrees,
	})
	if err != nil {
		return err
	}

	importances, err := evaluation.TopImportances(result.FeatureNames, result.ForestImportances, topImportances)
	if err != nil {
		return err
	}
	evalFigures, err := evaluation.RenderPlots(result.Models, result.YTest, importances, figuresDir)
	if err != nil {
		return err
	}
	slog.Info("evaluation done",
		log.StageKey, "evaluate",
		"figures", len(evalFigures))

	report, err := insight.Build(result.Models, summary, importances)
	if err != nil {
		return err
	}
	if err := report.Render(os.Stdout); err != nil {
		return err
	}
	fmt.Printf("\nFigures written to %s/ (%d files)\n", figuresDir, len(edaFigures)+len(evalFigures))

	slog.Info("pipeline finished",
		log.StageKey, "done",
		log.DurationMsKey, time.Since(start).Milliseconds())
	return nil
}
