package models

import (
	"fmt"
	"strings"
)

// Priority is an ordered urgency tier. The zero value is PriorityNone.
type Priority int

const (
	PriorityNone Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
	PriorityCritical
	PriorityUltraCritical
)

var priorityNames = [...]string{"none", "low", "medium", "high", "critical", "ultra-critical"}

func (p Priority) String() string {
	if p < PriorityNone || p > PriorityUltraCritical {
		return fmt.Sprintf("priority(%d)", int(p))
	}
	return priorityNames[p]
}

// Valid reports whether p is one of the declared tiers.
func (p Priority) Valid() bool {
	return p >= PriorityNone && p <= PriorityUltraCritical
}

// ParsePriority accepts the tier names case-insensitively, including the
// "NO" and "ULTRA-CRITICAL" spellings stored by older clients.
func ParsePriority(s string) (Priority, error) {
	switch normalizeTier(s) {
	case "", "no", "none":
		return PriorityNone, nil
	case "low":
		return PriorityLow, nil
	case "medium", "med":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	case "critical":
		return PriorityCritical, nil
	case "ultracritical":
		return PriorityUltraCritical, nil
	}
	return PriorityNone, fmt.Errorf("invalid priority %q", s)
}

func (p Priority) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid priority %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *Priority) UnmarshalText(text []byte) error {
	v, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Energy is an ordered exertion tier. The zero value is EnergyNone.
type Energy int

const (
	EnergyNone Energy = iota
	EnergyLow
	EnergyMedium
	EnergyHigh
	EnergyUltra
	EnergyExtreme
)

var energyNames = [...]string{"none", "low", "medium", "high", "ultra", "extreme"}

func (e Energy) String() string {
	if e < EnergyNone || e > EnergyExtreme {
		return fmt.Sprintf("energy(%d)", int(e))
	}
	return energyNames[e]
}

// Valid reports whether e is one of the declared tiers.
func (e Energy) Valid() bool {
	return e >= EnergyNone && e <= EnergyExtreme
}

// ParseEnergy accepts the tier names case-insensitively ("NO" == none).
func ParseEnergy(s string) (Energy, error) {
	switch normalizeTier(s) {
	case "", "no", "none":
		return EnergyNone, nil
	case "low":
		return EnergyLow, nil
	case "medium", "med":
		return EnergyMedium, nil
	case "high":
		return EnergyHigh, nil
	case "ultra":
		return EnergyUltra, nil
	case "extreme":
		return EnergyExtreme, nil
	}
	return EnergyNone, fmt.Errorf("invalid energy %q", s)
}

func (e Energy) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("invalid energy %d", int(e))
	}
	return []byte(e.String()), nil
}

func (e *Energy) UnmarshalText(text []byte) error {
	v, err := ParseEnergy(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

func normalizeTier(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}

// Stage is the workflow stage of a task or project.
type Stage string

const (
	// Task stages
	StagePrepare Stage = "prepare"
	StageProduce Stage = "produce"
	StagePerfect Stage = "perfect"

	// Project stages
	StageResearch Stage = "research"
	StageTest     Stage = "test"
	StageBuild    Stage = "build"
	StageRefine   Stage = "refine"
	StageRelease  Stage = "release"
)

// ParseStage lower-cases s and checks it against the known stages. An empty
// string is allowed and means "no stage".
func ParseStage(s string) (Stage, error) {
	st := Stage(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case "", StagePrepare, StageProduce, StagePerfect,
		StageResearch, StageTest, StageBuild, StageRefine, StageRelease:
		return st, nil
	}
	return "", fmt.Errorf("invalid stage %q", s)
}

// ItemKind identifies what a WorkItem was built from.
type ItemKind string

const (
	KindTask    ItemKind = "task"
	KindProject ItemKind = "project"
	KindHabit   ItemKind = "habit"
)
