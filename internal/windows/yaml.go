package windows

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/dayweave/internal/models"
)

type fileConfig struct {
	Windows        []fileWindow      `yaml:"windows"`
	DayTypes       []fileDayType     `yaml:"day_types"`
	Assignments    map[string]string `yaml:"assignments"`
	DefaultDayType string            `yaml:"default_day_type"`
}

type fileDayType struct {
	ID      string       `yaml:"id"`
	Name    string       `yaml:"name"`
	Default bool         `yaml:"default"`
	Windows []fileWindow `yaml:"windows"`
}

type fileWindow struct {
	ID       string         `yaml:"id"`
	Label    string         `yaml:"label"`
	Start    models.Clock   `yaml:"start"`
	End      models.Clock   `yaml:"end"`
	Days     string         `yaml:"days"`
	Energy   *models.Energy `yaml:"energy"`
	Location string         `yaml:"location"`
}

func (fw fileWindow) window() (models.Window, error) {
	days, err := models.ParseWeekdays(fw.Days)
	if err != nil {
		return models.Window{}, fmt.Errorf("window %s: %w", fw.ID, err)
	}
	energy := models.EnergyExtreme
	if fw.Energy != nil {
		energy = *fw.Energy
	}
	label := fw.Label
	if label == "" {
		label = fw.ID
	}
	return models.Window{
		ID:        fw.ID,
		Label:     label,
		Start:     fw.Start,
		End:       fw.End,
		Days:      days,
		EnergyCap: energy,
		Location:  fw.Location,
	}, nil
}

// LoadConfigYAML reads a window configuration document:
//
//	windows:
//	  - id: deep
//	    start: "09:00"
//	    end: "11:30"
//	    days: mon,tue,wed,thu,fri
//	    energy: high
//	day_types:
//	  - id: rest
//	    name: Rest day
//	    windows: [...]
//	assignments:
//	  "2024-06-08": rest
//
// A window without an energy cap accepts every energy tier. An empty
// document yields an empty Config.
func LoadConfigYAML(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("read window config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parse window config: %w", err)
	}

	cfg := Config{
		Assignments:    fc.Assignments,
		DefaultDayType: fc.DefaultDayType,
	}
	for _, fw := range fc.Windows {
		w, err := fw.window()
		if err != nil {
			return Config{}, err
		}
		cfg.Windows = append(cfg.Windows, w)
	}
	for _, fdt := range fc.DayTypes {
		dt := models.DayType{ID: fdt.ID, Name: fdt.Name, IsDefault: fdt.Default}
		if dt.Name == "" {
			dt.Name = dt.ID
		}
		for _, fw := range fdt.Windows {
			w, err := fw.window()
			if err != nil {
				return Config{}, fmt.Errorf("day type %s: %w", fdt.ID, err)
			}
			dt.Windows = append(dt.Windows, w)
		}
		cfg.DayTypes = append(cfg.DayTypes, dt)
	}
	return cfg, nil
}
