package dataset

import (
	"fmt"
	"math"
	"strings"
	"testing"

	scierrors "github.com/UZRashid/MLG382-Project2/pkg/errors"
)

type rawRow struct {
	price      float64
	bedrooms   float64
	bathrooms  float64
	sqftLiving float64
	floors     float64
	waterfront int
	view       int
}

func buildCSV(rows []rawRow) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(RawColumns(), ","))
	sb.WriteByte('\n')
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf(
			"2014-05-02,%g,%g,%g,%g,5000,%g,%d,%d,3,1000,0,1990,0,1 Main St,Seattle,WA 98101,USA\n",
			r.price, r.bedrooms, r.bathrooms, r.sqftLiving, r.floors, r.waterfront, r.view))
	}
	return sb.String()
}

func spreadRows(n int) []rawRow {
	rows := make([]rawRow, n)
	for i := range rows {
		rows[i] = rawRow{
			price:      100000 * float64(i+1),
			bedrooms:   float64(2 + i%4),
			bathrooms:  float64(1 + i%3),
			sqftLiving: float64(900 + 150*i),
			floors:     1,
		}
	}
	return rows
}

func TestRead_SchemaValidation(t *testing.T) {
	if _, err := Read(strings.NewReader("price,bedrooms\n100,2\n")); !scierrors.Is(err, scierrors.ErrMissingColumn) {
		t.Errorf("expected ErrMissingColumn, got %v", err)
	}

	if _, err := Read(strings.NewReader(buildCSV(spreadRows(5)))); err != nil {
		t.Errorf("valid CSV should load, got %v", err)
	}
}

func TestPrepare_QuantileFilter(t *testing.T) {
	rows := spreadRows(20)
	df, err := Read(strings.NewReader(buildCSV(rows)))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	lo, hi, err := PriceBounds(df)
	if err != nil {
		t.Fatalf("PriceBounds() error = %v", err)
	}
	if lo >= hi {
		t.Fatalf("degenerate bounds [%v, %v]", lo, hi)
	}

	prepared, err := Prepare(df)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	// Exactly the original rows with price inside the inclusive bounds
	// survive, in order.
	var want []float64
	for _, r := range rows {
		if r.price >= lo && r.price <= hi {
			want = append(want, r.price)
		}
	}
	got := prepared.Col(TargetColumn).Float()
	if len(got) != len(want) {
		t.Fatalf("retained %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d: price %v, want %v", i, got[i], want[i])
		}
	}
	if len(got) == len(rows) {
		t.Error("expected the outlier filter to drop some rows")
	}
}

func TestPrepare_DerivedColumns(t *testing.T) {
	rows := spreadRows(20)
	df, err := Read(strings.NewReader(buildCSV(rows)))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	prepared, err := Prepare(df)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	beds := prepared.Col("bedrooms").Float()
	baths := prepared.Col("bathrooms").Float()
	prices := prepared.Col(TargetColumn).Float()
	sqft := prepared.Col("sqft_living").Float()
	ratio := prepared.Col(RatioColumn).Float()
	pps := prepared.Col(PricePerSqftCol).Float()
	interaction := prepared.Col(InteractionColumn).Float()

	for i := range beds {
		if baths[i] != 0 && ratio[i] != beds[i]/baths[i] {
			t.Errorf("row %d: ratio = %v, want %v", i, ratio[i], beds[i]/baths[i])
		}
		if pps[i] != prices[i]/sqft[i] {
			t.Errorf("row %d: price_per_sqft = %v, want %v", i, pps[i], prices[i]/sqft[i])
		}
		if interaction[i] != beds[i]*baths[i] {
			t.Errorf("row %d: interaction = %v, want %v", i, interaction[i], beds[i]*baths[i])
		}
	}
}

func TestPrepare_ZeroBathroomsGuard(t *testing.T) {
	var warnings []error
	scierrors.SetZerologWarnFunc(func(w error) { warnings = append(warnings, w) })
	defer scierrors.SetZerologWarnFunc(nil)

	rows := spreadRows(20)
	rows[10].bathrooms = 0 // mid-range price, survives the filter

	df, err := Read(strings.NewReader(buildCSV(rows)))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	prepared, err := Prepare(df)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	baths := prepared.Col("bathrooms").Float()
	ratio := prepared.Col(RatioColumn).Float()
	found := false
	for i := range baths {
		if baths[i] == 0 {
			found = true
			if ratio[i] != 0 {
				t.Errorf("row %d: undefined ratio should be 0, got %v", i, ratio[i])
			}
			if math.IsInf(ratio[i], 0) || math.IsNaN(ratio[i]) {
				t.Errorf("row %d: non-finite ratio leaked through", i)
			}
		}
	}
	if !found {
		t.Fatal("test row with zero bathrooms did not survive the filter")
	}

	var ufw *scierrors.UndefinedFeatureWarning
	for _, w := range warnings {
		if scierrors.As(w, &ufw) {
			break
		}
	}
	if ufw == nil {
		t.Fatal("expected an UndefinedFeatureWarning")
	}
	if ufw.Rows != 1 || ufw.Feature != RatioColumn {
		t.Errorf("unexpected warning payload: %+v", ufw)
	}
}

func TestPrepare_ZeroSqftGuard(t *testing.T) {
	var warnings []error
	scierrors.SetZerologWarnFunc(func(w error) { warnings = append(warnings, w) })
	defer scierrors.SetZerologWarnFunc(nil)

	rows := spreadRows(20)
	rows[9].sqftLiving = 0 // mid-range price, survives the filter

	df, err := Read(strings.NewReader(buildCSV(rows)))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	prepared, err := Prepare(df)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	sqft := prepared.Col("sqft_living").Float()
	pps := prepared.Col(PricePerSqftCol).Float()
	found := false
	for i := range sqft {
		if sqft[i] == 0 {
			found = true
			if pps[i] != 0 {
				t.Errorf("row %d: undefined price_per_sqft should be 0, got %v", i, pps[i])
			}
		}
	}
	if !found {
		t.Fatal("test row with zero sqft_living did not survive the filter")
	}

	var got *scierrors.UndefinedFeatureWarning
	for _, w := range warnings {
		var ufw *scierrors.UndefinedFeatureWarning
		if scierrors.As(w, &ufw) && ufw.Feature == PricePerSqftCol {
			got = ufw
			break
		}
	}
	if got == nil {
		t.Fatal("expected an UndefinedFeatureWarning for price_per_sqft")
	}
	if got.Rows != 1 || got.Condition != "sqft_living = 0" {
		t.Errorf("unexpected warning payload: %+v", got)
	}
}

func TestMatrices(t *testing.T) {
	df, err := Read(strings.NewReader(buildCSV(spreadRows(20))))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	prepared, err := Prepare(df)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	X, y, err := Matrices(prepared)
	if err != nil {
		t.Fatalf("Matrices() error = %v", err)
	}

	rows, cols := X.Dims()
	if rows != prepared.Nrow() || cols != len(FeatureColumns()) {
		t.Fatalf("X is (%d, %d), want (%d, %d)", rows, cols, prepared.Nrow(), len(FeatureColumns()))
	}
	yRows, yCols := y.Dims()
	if yRows != rows || yCols != 1 {
		t.Fatalf("y is (%d, %d), want (%d, 1)", yRows, yCols, rows)
	}

	// Columns line up with the schema order.
	beds := prepared.Col("bedrooms").Float()
	prices := prepared.Col(TargetColumn).Float()
	for i := 0; i < rows; i++ {
		if X.At(i, 0) != beds[i] {
			t.Errorf("row %d: X[,0] = %v, want bedrooms %v", i, X.At(i, 0), beds[i])
		}
		if y.At(i, 0) != prices[i] {
			t.Errorf("row %d: y = %v, want price %v", i, y.At(i, 0), prices[i])
		}
	}
}

func TestMatrices_WarnsOnIntegerColumns(t *testing.T) {
	var warnings []error
	scierrors.SetZerologWarnFunc(func(w error) { warnings = append(warnings, w) })
	defer scierrors.SetZerologWarnFunc(nil)

	// Whole-number CSV values parse as integer series.
	df, err := Read(strings.NewReader(buildCSV(spreadRows(20))))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	prepared, err := Prepare(df)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	warnings = warnings[:0]
	if _, _, err := Matrices(prepared); err != nil {
		t.Fatalf("Matrices() error = %v", err)
	}

	var dcw *scierrors.DataConversionWarning
	for _, w := range warnings {
		if scierrors.As(w, &dcw) {
			break
		}
	}
	if dcw == nil {
		t.Fatal("expected a DataConversionWarning for integer columns")
	}
	if dcw.FromType != "int" || dcw.ToType != "float64" {
		t.Errorf("unexpected warning payload: %+v", dcw)
	}
}

func TestMatrices_RejectsWrongSchema(t *testing.T) {
	df, err := Read(strings.NewReader(buildCSV(spreadRows(5))))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	// The raw frame lacks the derived columns.
	_, _, err = Matrices(df)
	var se *scierrors.SchemaError
	if !scierrors.As(err, &se) {
		t.Errorf("expected SchemaError, got %v", err)
	}
}

func TestFeatureRow_MatchesTrainingSchema(t *testing.T) {
	row := FeatureRow(3, 2, 1500, 1, 0, 0)

	rows, cols := row.Dims()
	if rows != 1 || cols != len(FeatureColumns()) {
		t.Fatalf("row is (%d, %d), want (1, %d)", rows, cols, len(FeatureColumns()))
	}

	want := []float64{3, 2, 1500, 1, 0, 0, 1.5, 6}
	for j, w := range want {
		if row.At(0, j) != w {
			t.Errorf("column %d (%s) = %v, want %v", j, FeatureColumns()[j], row.At(0, j), w)
		}
	}
}

func TestFeatureRow_ZeroBathrooms(t *testing.T) {
	scierrors.SetZerologWarnFunc(func(error) {})
	defer scierrors.SetZerologWarnFunc(nil)

	row := FeatureRow(3, 0, 1500, 1, 0, 0)
	if got := row.At(0, 6); got != 0 {
		t.Errorf("undefined ratio should be 0, got %v", got)
	}
	if got := row.At(0, 7); got != 0 {
		t.Errorf("interaction with zero bathrooms should be 0, got %v", got)
	}
}
