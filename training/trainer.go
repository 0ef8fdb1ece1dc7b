package training

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/housight/housight/dataset"
	"github.com/housight/housight/ensemble"
	"github.com/housight/housight/evaluation"
	"github.com/housight/housight/linear"
	"github.com/housight/housight/pkg/errors"
	"github.com/housight/housight/pkg/log"
	"github.com/housight/housight/preprocessing"
)

// Model names used as keys in the results map.
const (
	ModelLinear = "LinearRegression"
	ModelForest = "RandomForest"
)

// Config holds the training run parameters.
type Config struct {
	// Seed drives the train/test shuffle and the forest.
	Seed int64

	// TestFraction is the share of rows held out for evaluation.
	TestFraction float64

	// NumTrees is the forest ensemble size.
	NumTrees int
}

// Result is the outcome of one training run.
type Result struct {
	// Models maps model name to its held-out evaluation.
	Models map[string]*evaluation.ModelResult

	// YTest holds the true target values of the held-out rows.
	YTest *mat.VecDense

	// FeatureNames lists the encoded feature columns in matrix order.
	FeatureNames []string

	// ForestImportances are the forest's normalized feature importances,
	// aligned with FeatureNames.
	ForestImportances []float64

	Split *dataset.Split
}

// Run encodes the table, splits it, and trains both models: ordinary least
// squares on standardized features and a random forest on the raw ones.
// The scaler is fitted on the training rows only.
func Run(t *dataset.Table, cfg Config) (*Result, error) {
	encoded, err := BuildEncodedMatrix(t)
	if err != nil {
		return nil, err
	}

	rows, cols := encoded.X.Dims()
	slog.Info("feature matrix built",
		log.StageKey, "train",
		log.SamplesKey, rows,
		log.FeaturesKey, cols)

	split, err := dataset.SplitTrainTest(rows, cfg.TestFraction, cfg.Seed)
	if err != nil {
		return nil, err
	}
	XTrain, yTrain := encoded.Subset(split.TrainIndices)
	XTest, yTest := encoded.Subset(split.TestIndices)

	slog.Info("train/test split",
		log.StageKey, "train",
		log.TrainSamplesKey, len(split.TrainIndices),
		log.TestSamplesKey, len(split.TestIndices))

	results := make(map[string]*evaluation.ModelResult, 2)

	linearResult, err := trainLinear(XTrain, yTrain, XTest, yTest)
	if err != nil {
		return nil, err
	}
	results[ModelLinear] = linearResult

	forestResult, importances, err := trainForest(XTrain, yTrain, XTest, yTest, cfg)
	if err != nil {
		return nil, err
	}
	results[ModelForest] = forestResult

	return &Result{
		Models:            results,
		YTest:             yTest,
		FeatureNames:      encoded.FeatureNames,
		ForestImportances: importances,
		Split:             split,
	}, nil
}

func trainLinear(XTrain *mat.Dense, yTrain *mat.VecDense, XTest *mat.Dense, yTest *mat.VecDense) (*evaluation.ModelResult, error) {
	scaler := preprocessing.NewStandardScaler()
	XTrainScaled, err := scaler.FitTransform(XTrain)
	if err != nil {
		return nil, errors.Wrap(err, "training: scale train features")
	}
	XTestScaled, err := scaler.Transform(XTest)
	if err != nil {
		return nil, errors.Wrap(err, "training: scale test features")
	}

	start := time.Now()
	lr := linear.NewRegression()
	if err := lr.Fit(XTrainScaled, yTrain); err != nil {
		return nil, errors.Wrap(err, "training: fit linear model")
	}
	slog.Info("model fitted",
		log.StageKey, "train",
		log.ModelNameKey, ModelLinear,
		log.OperationKey, "fit",
		log.DurationMsKey, time.Since(start).Milliseconds())

	pred, err := lr.Predict(XTestScaled)
	if err != nil {
		return nil, errors.Wrap(err, "training: linear predictions")
	}
	return evaluation.Evaluate(ModelLinear, yTest, pred)
}

func trainForest(XTrain *mat.Dense, yTrain *mat.VecDense, XTest *mat.Dense, yTest *mat.VecDense, cfg Config) (*evaluation.ModelResult, []float64, error) {
	forest := ensemble.NewForestRegressor()
	forest.Seed = cfg.Seed
	if cfg.NumTrees > 0 {
		forest.NumTrees = cfg.NumTrees
	}

	start := time.Now()
	if err := forest.Fit(XTrain, yTrain); err != nil {
		return nil, nil, errors.Wrap(err, "training: fit forest")
	}
	slog.Info("model fitted",
		log.StageKey, "train",
		log.ModelNameKey, ModelForest,
		log.OperationKey, "fit",
		log.DurationMsKey, time.Since(start).Milliseconds())

	pred, err := forest.Predict(XTest)
	if err != nil {
		return nil, nil, errors.Wrap(err, "training: forest predictions")
	}

	importances, err := forest.FeatureImportances()
	if err != nil {
		return nil, nil, errors.Wrap(err, "training: forest importances")
	}

	result, err := evaluation.Evaluate(ModelForest, yTest, pred)
	if err != nil {
		return nil, nil, err
	}
	return result, importances, nil
}
