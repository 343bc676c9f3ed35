package windows

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/dayweave/internal/models"
)

func TestLoadConfigYAML(t *testing.T) {
	doc := `
windows:
  - id: deep
    label: Deep work
    start: "09:00"
    end: "11:30"
    days: mon,wed,fri
    energy: high
  - id: errands
    start: "15:00"
    end: "16:00"
    location: town
day_types:
  - id: rest
    windows:
      - id: walk
        start: "10:00"
        end: "11:00"
        energy: low
assignments:
  "2024-06-08": rest
`
	cfg, err := LoadConfigYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadConfigYAML() error = %v", err)
	}

	if len(cfg.Windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(cfg.Windows))
	}
	deep := cfg.Windows[0]
	if deep.Start != models.MustClock("09:00") || deep.End != models.MustClock("11:30") {
		t.Errorf("deep span = %v-%v", deep.Start, deep.End)
	}
	if deep.EnergyCap != models.EnergyHigh {
		t.Errorf("deep energy = %v, want high", deep.EnergyCap)
	}
	if len(deep.Days) != 3 || deep.Days[0] != time.Monday {
		t.Errorf("deep days = %v", deep.Days)
	}

	errands := cfg.Windows[1]
	if errands.EnergyCap != models.EnergyExtreme {
		t.Errorf("missing energy should default to extreme, got %v", errands.EnergyCap)
	}
	if errands.Label != "errands" || errands.Location != "town" {
		t.Errorf("errands = %+v", errands)
	}

	if len(cfg.DayTypes) != 1 || cfg.DayTypes[0].Name != "rest" || len(cfg.DayTypes[0].Windows) != 1 {
		t.Fatalf("day types = %+v", cfg.DayTypes)
	}
	if cfg.Assignments["2024-06-08"] != "rest" {
		t.Errorf("assignments = %v", cfg.Assignments)
	}
}

func TestLoadConfigYAML_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "bad clock", doc: "windows:\n  - id: x\n    start: \"25:00\"\n    end: \"26:00\"\n"},
		{name: "bad energy", doc: "windows:\n  - id: x\n    start: \"09:00\"\n    end: \"10:00\"\n    energy: enormous\n"},
		{name: "bad days", doc: "windows:\n  - id: x\n    start: \"09:00\"\n    end: \"10:00\"\n    days: funday\n"},
		{name: "not yaml", doc: "windows: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfigYAML(strings.NewReader(tt.doc)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadConfigYAML_Empty(t *testing.T) {
	cfg, err := LoadConfigYAML(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Empty() {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}
