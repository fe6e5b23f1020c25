// Package housepricer documents the house price regression pipeline.
//
// The module trains a random-forest regressor on tabular housing sales
// data and serves single-row price predictions through a web dashboard.
//
// Package layout:
//
//   - internal/dataset: CSV loading, price outlier filtering, derived
//     feature columns and matrix conversion
//   - ensemble: the random-forest regressor
//   - modelselection: train/test splitting, k-fold cross-validation and
//     grid search
//   - preprocessing, pipeline: imputation and transformer chaining
//   - metrics: regression evaluation (MAE, MSE, RMSE, R²)
//   - internal/server: the gin prediction dashboard
//   - internal/report: exploratory plots and data summary
//   - cmd/housepricer: the train / serve / report CLI
//
// Basic usage:
//
//	housepricer train --grid-search --model-out model.gob
//	housepricer serve --addr :8080
package housepricer
