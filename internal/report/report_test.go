package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/UZRashid/MLG382-Project2/internal/dataset"
)

func housingCSV(n int) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(dataset.RawColumns(), ","))
	sb.WriteByte('\n')
	for i := 0; i < n; i++ {
		sb.WriteString(fmt.Sprintf(
			"2014-05-02,%d,%d,%d,%d,5000,1,0,0,3,1000,0,1990,0,1 Main St,Seattle,WA 98101,USA\n",
			100000*(i+1), 2+i%4, 1+i%3, 900+150*i))
	}
	return sb.String()
}

func TestGenerate(t *testing.T) {
	raw, err := dataset.Read(strings.NewReader(housingCSV(25)))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	prepared, err := dataset.Prepare(raw)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	dir := t.TempDir()
	if err := Generate(raw, prepared, dir); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	for _, name := range []string{HistogramFile, ScatterFile, SummaryFile} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing report artifact %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("report artifact %s is empty", name)
		}
	}

	summary, err := os.ReadFile(filepath.Join(dir, SummaryFile))
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	text := string(summary)
	if !strings.Contains(text, fmt.Sprintf("rows_raw: %d", raw.Nrow())) {
		t.Error("summary is missing the raw row count")
	}
	if !strings.Contains(text, fmt.Sprintf("rows_prepared: %d", prepared.Nrow())) {
		t.Error("summary is missing the prepared row count")
	}
	if !strings.Contains(text, dataset.RatioColumn) {
		t.Error("summary is missing the derived ratio column")
	}
}

func TestGenerate_CreatesDirectory(t *testing.T) {
	raw, err := dataset.Read(strings.NewReader(housingCSV(25)))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	prepared, err := dataset.Prepare(raw)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	dir := filepath.Join(t.TempDir(), "nested", "out")
	if err := Generate(raw, prepared, dir); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, SummaryFile)); err != nil {
		t.Errorf("expected summary inside created directory: %v", err)
	}
}
