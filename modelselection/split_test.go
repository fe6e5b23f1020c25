package modelselection

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func sequentialData(n int) (*mat.Dense, *mat.Dense) {
	X := mat.NewDense(n, 2, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, float64(i))
		X.Set(i, 1, float64(i)*10)
		y.Set(i, 0, float64(i)*100)
	}
	return X, y
}

func TestTrainTestSplit_Partitions(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		testSize  float64
		wantTest  int
		wantTrain int
	}{
		{name: "80/20 split", n: 100, testSize: 0.2, wantTest: 20, wantTrain: 80},
		{name: "70/30 split", n: 100, testSize: 0.3, wantTest: 30, wantTrain: 70},
		{name: "uneven rows", n: 33, testSize: 0.2, wantTest: 6, wantTrain: 27},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			X, y := sequentialData(tt.n)
			XTrain, XTest, yTrain, yTest, err := TrainTestSplit(X, y, tt.testSize, 42)
			if err != nil {
				t.Fatalf("TrainTestSplit() error = %v", err)
			}

			trainRows, _ := XTrain.Dims()
			testRows, _ := XTest.Dims()
			if trainRows != tt.wantTrain || testRows != tt.wantTest {
				t.Fatalf("got %d/%d rows, want %d/%d", trainRows, testRows, tt.wantTrain, tt.wantTest)
			}

			yTrainRows, _ := yTrain.Dims()
			yTestRows, _ := yTest.Dims()
			if yTrainRows != trainRows || yTestRows != testRows {
				t.Errorf("y partitions out of step with X: %d/%d", yTrainRows, yTestRows)
			}

			// Every original row appears exactly once across partitions,
			// and features stay aligned with targets.
			seen := make(map[float64]bool, tt.n)
			check := func(X, y *mat.Dense) {
				rows, _ := X.Dims()
				for i := 0; i < rows; i++ {
					id := X.At(i, 0)
					if seen[id] {
						t.Fatalf("row %v appears twice", id)
					}
					seen[id] = true
					if y.At(i, 0) != id*100 {
						t.Fatalf("row %v no longer aligned with its target", id)
					}
				}
			}
			check(XTrain, yTrain)
			check(XTest, yTest)
			if len(seen) != tt.n {
				t.Errorf("expected %d distinct rows, got %d", tt.n, len(seen))
			}
		})
	}
}

func TestTrainTestSplit_DeterministicWithSeed(t *testing.T) {
	X, y := sequentialData(50)

	_, XTest1, _, _, err := TrainTestSplit(X, y, 0.2, 7)
	if err != nil {
		t.Fatalf("TrainTestSplit() error = %v", err)
	}
	_, XTest2, _, _, err := TrainTestSplit(X, y, 0.2, 7)
	if err != nil {
		t.Fatalf("TrainTestSplit() error = %v", err)
	}

	if !mat.Equal(XTest1, XTest2) {
		t.Error("same seed should produce the same split")
	}
}

func TestTrainTestSplit_Validation(t *testing.T) {
	X, y := sequentialData(10)

	if _, _, _, _, err := TrainTestSplit(X, y, 0.0, 1); err == nil {
		t.Error("testSize 0 should fail")
	}
	if _, _, _, _, err := TrainTestSplit(X, y, 1.0, 1); err == nil {
		t.Error("testSize 1 should fail")
	}
	if _, _, _, _, err := TrainTestSplit(X, mat.NewDense(5, 1, nil), 0.2, 1); err == nil {
		t.Error("mismatched row counts should fail")
	}
	if _, _, _, _, err := TrainTestSplit(mat.NewDense(3, 1, nil), mat.NewDense(3, 1, nil), 0.05, 1); err == nil {
		t.Error("split leaving an empty partition should fail")
	}
}
