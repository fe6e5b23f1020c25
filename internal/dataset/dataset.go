package dataset

import (
	"io"
	"os"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/stat"

	"github.com/UZRashid/MLG382-Project2/pkg/errors"
	"github.com/UZRashid/MLG382-Project2/pkg/log"
)

// Quantile bounds of the price outlier filter.
const (
	lowerQuantile = 0.10
	upperQuantile = 0.90
)

// Load reads the raw housing CSV from path and validates that every
// expected column is present.
func Load(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "dataset: open %s", path)
	}
	defer f.Close()

	return Read(f)
}

// Read parses the raw housing CSV from r.
func Read(r io.Reader) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(r)
	if df.Error() != nil {
		return dataframe.DataFrame{}, errors.Wrap(df.Error(), "dataset: parse CSV")
	}
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, errors.Wrap(errors.ErrEmptyData, "dataset: read")
	}

	present := make(map[string]bool, len(df.Names()))
	for _, name := range df.Names() {
		present[name] = true
	}
	for _, name := range rawColumns {
		if !present[name] {
			return dataframe.DataFrame{}, errors.Wrapf(errors.ErrMissingColumn, "dataset: column %q", name)
		}
	}

	log.GetLoggerWithName("dataset").Info("raw data loaded",
		log.SamplesKey, df.Nrow(),
		log.FeaturesKey, len(df.Names()))
	return df, nil
}

// PriceBounds computes the inclusive [10th, 90th] percentile bounds of the
// price column. The bounds are recomputed from the frame on every call, so
// they track whatever data is passed in.
func PriceBounds(df dataframe.DataFrame) (lo, hi float64, err error) {
	prices := df.Col(TargetColumn).Float()
	if len(prices) == 0 {
		return 0, 0, errors.Wrap(errors.ErrEmptyData, "dataset: price bounds")
	}

	sorted := make([]float64, len(prices))
	copy(sorted, prices)
	sort.Float64s(sorted)

	lo = stat.Quantile(lowerQuantile, stat.LinInterp, sorted, nil)
	hi = stat.Quantile(upperQuantile, stat.LinInterp, sorted, nil)
	return lo, hi, nil
}

// DerivedFeatures computes the engineered features for one row. When
// bathrooms is zero the ratio is undefined; it is reported as 0 and the
// undefined flag is set so callers can raise a warning.
func DerivedFeatures(bedrooms, bathrooms float64) (ratio, interaction float64, undefined bool) {
	undefined = bathrooms == 0
	ratio = errors.SafeDivide(bedrooms, bathrooms)
	interaction = bedrooms * bathrooms
	return ratio, interaction, undefined
}

// Prepare filters price outliers, appends the derived columns and trims the
// frame down to the prepared schema.
func Prepare(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	logger := log.GetLoggerWithName("dataset")

	lo, hi, err := PriceBounds(df)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	// Subset on an index mask rather than a chained Filter: the price
	// column may parse as integers, and comparing those against float
	// bounds through gota would truncate the bounds.
	allPrices := df.Col(TargetColumn).Float()
	keep := make([]int, 0, len(allPrices))
	for i, p := range allPrices {
		if p >= lo && p <= hi {
			keep = append(keep, i)
		}
	}

	filtered := df.Subset(keep)
	if filtered.Error() != nil {
		return dataframe.DataFrame{}, errors.Wrap(filtered.Error(), "dataset: price filter")
	}
	if filtered.Nrow() == 0 {
		return dataframe.DataFrame{}, errors.Wrap(errors.ErrEmptyData, "dataset: all rows filtered out")
	}

	bedrooms := filtered.Col("bedrooms").Float()
	bathrooms := filtered.Col("bathrooms").Float()
	prices := filtered.Col(TargetColumn).Float()
	sqft := filtered.Col("sqft_living").Float()

	n := filtered.Nrow()
	ratio := make([]float64, n)
	interaction := make([]float64, n)
	pricePerSqft := make([]float64, n)
	undefinedRatios := 0
	undefinedPrices := 0

	for i := 0; i < n; i++ {
		var undefined bool
		ratio[i], interaction[i], undefined = DerivedFeatures(bedrooms[i], bathrooms[i])
		if undefined {
			undefinedRatios++
		}
		if sqft[i] == 0 {
			undefinedPrices++
		}
		pricePerSqft[i] = errors.SafeDivide(prices[i], sqft[i])
	}

	if undefinedRatios > 0 {
		errors.Warn(errors.NewUndefinedFeatureWarning(RatioColumn, "bathrooms = 0", undefinedRatios, 0))
	}
	if undefinedPrices > 0 {
		errors.Warn(errors.NewUndefinedFeatureWarning(PricePerSqftCol, "sqft_living = 0", undefinedPrices, 0))
	}

	prepared := filtered.
		Mutate(series.New(ratio, series.Float, RatioColumn)).
		Mutate(series.New(pricePerSqft, series.Float, PricePerSqftCol)).
		Mutate(series.New(interaction, series.Float, InteractionColumn)).
		Select(preparedColumns)
	if prepared.Error() != nil {
		return dataframe.DataFrame{}, errors.Wrap(prepared.Error(), "dataset: prepare")
	}

	logger.Info("data prepared",
		log.SamplesKey, prepared.Nrow(),
		log.RowsDroppedKey, df.Nrow()-prepared.Nrow(),
		"price_lo", lo,
		"price_hi", hi)
	return prepared, nil
}
