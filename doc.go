// Package housight is a self-contained housing-market analysis pipeline.
//
// One run of the housight binary synthesizes a California-style housing
// dataset, explores it, engineers ratio features, trains a linear
// regression and a random forest on a held-out split, and prints a ranked
// insight report. Charts are written as PNG files.
//
// # Packages
//
//   - dataset: synthetic data generation, feature engineering, train/test split
//   - eda: summary statistics and exploratory charts
//   - preprocessing: standard scaling and one-hot encoding
//   - linear: ordinary least squares regression
//   - ensemble: random forest regression
//   - metrics: MSE, RMSE, MAE and R²
//   - evaluation: held-out model scoring and comparison charts
//   - insight: the final textual report
//   - training: the end-to-end encode/split/fit/score orchestration
//
// Shared plumbing lives under core/ (estimator state, parallel loops) and
// pkg/ (typed errors, structured logging).
//
// # Quick start
//
//	go run ./cmd/housight
//
// The report is printed to stdout, logs go to stderr as JSON, and figures
// land under ./figures.
package housight
