// Package dataset loads the raw housing CSV, filters price outliers,
// derives the engineered feature columns and converts the prepared table
// into the matrices the estimators consume. Training and serving share
// this package so the feature schema cannot drift between the two.
package dataset

// Raw CSV column names, in file order.
var rawColumns = []string{
	"date", "price", "bedrooms", "bathrooms", "sqft_living", "sqft_lot",
	"floors", "waterfront", "view", "condition", "sqft_above",
	"sqft_basement", "yr_built", "yr_renovated", "street", "city",
	"statezip", "country",
}

// TargetColumn is the regression target.
const TargetColumn = "price"

// Derived column names.
const (
	RatioColumn       = "bedrooms_to_bathrooms_ratio"
	PricePerSqftCol   = "price_per_sqft"
	InteractionColumn = "bedrooms_bathrooms_interaction"
)

// featureColumns is the model feature schema, in training order. It
// deliberately excludes price_per_sqft: the true price is unknown at
// prediction time, so a model trained on it could never be served the
// same inputs it was trained on. The column still appears in the
// prepared table for analysis.
var featureColumns = []string{
	"bedrooms", "bathrooms", "sqft_living", "floors", "waterfront", "view",
	RatioColumn, InteractionColumn,
}

// preparedColumns is the full column set of the prepared table.
var preparedColumns = []string{
	TargetColumn,
	"bedrooms", "bathrooms", "sqft_living", "floors", "waterfront", "view",
	RatioColumn, PricePerSqftCol, InteractionColumn,
}

// RawColumns returns the expected raw CSV schema.
func RawColumns() []string {
	out := make([]string, len(rawColumns))
	copy(out, rawColumns)
	return out
}

// FeatureColumns returns the model feature schema in training order.
func FeatureColumns() []string {
	out := make([]string, len(featureColumns))
	copy(out, featureColumns)
	return out
}

// PreparedColumns returns the column set of the prepared table.
func PreparedColumns() []string {
	out := make([]string, len(preparedColumns))
	copy(out, preparedColumns)
	return out
}
