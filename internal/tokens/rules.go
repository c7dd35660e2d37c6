// Package tokens scores gameplay. A RuleSet fixes the reward amounts for the
// five scripted phases; presets are named, ready-made rule sets.
package tokens

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	ErrUnknownPreset = errors.New("unknown preset")
	ErrInvalidRules  = errors.New("invalid token rules")
	ErrUnknownPhase  = errors.New("unknown scoring phase")
)

const DefaultPresetID = "balanced"

type Phase1Rules struct {
	Completion        int `json:"completion"`
	TimeBonus         int `json:"timeBonus"`
	PerfectAnagram    int `json:"perfectAnagram"`
	PerfectWordSearch int `json:"perfectWordSearch"`
}

type Phase2Rules struct {
	Completion         int `json:"completion"`
	ChallengeSelection int `json:"challengeSelection"`
}

// AnswerRules score a single question. Incorrect answers still earn
// participation tokens.
type AnswerRules struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

// RuleSet has a fixed five-phase shape. It is not derived from the phase
// catalog, which may hold any number of phases.
type RuleSet struct {
	Phase1 Phase1Rules `json:"phase1"`
	Phase2 Phase2Rules `json:"phase2"`
	Phase3 AnswerRules `json:"phase3"`
	Phase4 AnswerRules `json:"phase4"`
	Phase5 AnswerRules `json:"phase5"`
}

func (r RuleSet) Validate() error {
	amounts := map[string]int{
		"phase1.completion":         r.Phase1.Completion,
		"phase1.timeBonus":          r.Phase1.TimeBonus,
		"phase1.perfectAnagram":     r.Phase1.PerfectAnagram,
		"phase1.perfectWordSearch":  r.Phase1.PerfectWordSearch,
		"phase2.completion":         r.Phase2.Completion,
		"phase2.challengeSelection": r.Phase2.ChallengeSelection,
		"phase3.correct":            r.Phase3.Correct,
		"phase3.incorrect":          r.Phase3.Incorrect,
		"phase4.correct":            r.Phase4.Correct,
		"phase4.incorrect":          r.Phase4.Incorrect,
		"phase5.correct":            r.Phase5.Correct,
		"phase5.incorrect":          r.Phase5.Incorrect,
	}
	for _, name := range slices.Sorted(maps.Keys(amounts)) {
		if amounts[name] < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidRules, name)
		}
	}
	return nil
}

type Preset struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Config      RuleSet `json:"config"`
}

var presets = []Preset{
	{
		ID:          "balanced",
		Name:        "Equilibrado",
		Description: "Distribución balanceada de tokens para una experiencia estándar",
		Config: RuleSet{
			Phase1: Phase1Rules{Completion: 15, TimeBonus: 10, PerfectAnagram: 5, PerfectWordSearch: 5},
			Phase2: Phase2Rules{Completion: 20, ChallengeSelection: 5},
			Phase3: AnswerRules{Correct: 25, Incorrect: 5},
			Phase4: AnswerRules{Correct: 30, Incorrect: 10},
			Phase5: AnswerRules{Correct: 35, Incorrect: 15},
		},
	},
	{
		ID:          "high-stakes",
		Name:        "Alto Riesgo",
		Description: "Mayores recompensas pero también mayores riesgos por errores",
		Config: RuleSet{
			Phase1: Phase1Rules{Completion: 20, TimeBonus: 15, PerfectAnagram: 10, PerfectWordSearch: 10},
			Phase2: Phase2Rules{Completion: 30, ChallengeSelection: 10},
			Phase3: AnswerRules{Correct: 40, Incorrect: 0},
			Phase4: AnswerRules{Correct: 50, Incorrect: 0},
			Phase5: AnswerRules{Correct: 60, Incorrect: 0},
		},
	},
	{
		ID:          "learning-focused",
		Name:        "Enfoque Educativo",
		Description: "Premia la participación y el aprendizaje sobre la perfección",
		Config: RuleSet{
			Phase1: Phase1Rules{Completion: 20, TimeBonus: 5, PerfectAnagram: 3, PerfectWordSearch: 3},
			Phase2: Phase2Rules{Completion: 25, ChallengeSelection: 10},
			Phase3: AnswerRules{Correct: 20, Incorrect: 15},
			Phase4: AnswerRules{Correct: 25, Incorrect: 20},
			Phase5: AnswerRules{Correct: 30, Incorrect: 25},
		},
	},
	{
		ID:          "competitive",
		Name:        "Competitivo",
		Description: "Máximas recompensas para respuestas perfectas y rápidas",
		Config: RuleSet{
			Phase1: Phase1Rules{Completion: 25, TimeBonus: 20, PerfectAnagram: 15, PerfectWordSearch: 15},
			Phase2: Phase2Rules{Completion: 35, ChallengeSelection: 5},
			Phase3: AnswerRules{Correct: 50, Incorrect: 5},
			Phase4: AnswerRules{Correct: 60, Incorrect: 5},
			Phase5: AnswerRules{Correct: 75, Incorrect: 5},
		},
	},
}

// Presets lists the built-in presets, balanced first.
func Presets() []Preset {
	return slices.Clone(presets)
}

func PresetByID(id string) (Preset, error) {
	for _, p := range presets {
		if p.ID == id {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, id)
}

// DefaultRules returns the balanced preset's rules.
func DefaultRules() RuleSet {
	p, _ := PresetByID(DefaultPresetID)
	return p.Config
}
