package catalog

import (
	"fmt"
	"slices"
)

const (
	MinTeamNameLength = 5
	MaxTeamNameLength = 100
)

type Settings struct {
	GameName            string   `json:"gameName"`
	GameDescription     string   `json:"gameDescription"`
	ShowTokensToPlayers bool     `json:"showTokensToPlayers"`
	TotalPhases         int      `json:"totalPhases"`
	TeamNameRequired    bool     `json:"teamNameRequired"`
	AllowTeamNameChange bool     `json:"allowTeamNameChange"`
	MaxTeamNameLength   int      `json:"maxTeamNameLength"`
	GameLanguages       []string `json:"gameLanguages"`
	DefaultLanguage     string   `json:"defaultLanguage"`
}

// SettingsUpdate is a partial update of Settings. TotalPhases may be set, but
// the next phase mutation recomputes it from the active phases.
type SettingsUpdate struct {
	GameName            Field[string]   `json:"gameName"`
	GameDescription     Field[string]   `json:"gameDescription"`
	ShowTokensToPlayers Field[bool]     `json:"showTokensToPlayers"`
	TotalPhases         Field[int]      `json:"totalPhases"`
	TeamNameRequired    Field[bool]     `json:"teamNameRequired"`
	AllowTeamNameChange Field[bool]     `json:"allowTeamNameChange"`
	MaxTeamNameLength   Field[int]      `json:"maxTeamNameLength"`
	GameLanguages       Field[[]string] `json:"gameLanguages"`
	DefaultLanguage     Field[string]   `json:"defaultLanguage"`
}

func (s Settings) clone() Settings {
	s.GameLanguages = append([]string(nil), s.GameLanguages...)
	return s
}

func (s Settings) apply(u SettingsUpdate) Settings {
	s = s.clone()
	u.GameName.applyTo(&s.GameName)
	u.GameDescription.applyTo(&s.GameDescription)
	u.ShowTokensToPlayers.applyTo(&s.ShowTokensToPlayers)
	u.TotalPhases.applyTo(&s.TotalPhases)
	u.TeamNameRequired.applyTo(&s.TeamNameRequired)
	u.AllowTeamNameChange.applyTo(&s.AllowTeamNameChange)
	u.MaxTeamNameLength.applyTo(&s.MaxTeamNameLength)
	if u.GameLanguages.Set {
		s.GameLanguages = append([]string(nil), u.GameLanguages.Value...)
	}
	u.DefaultLanguage.applyTo(&s.DefaultLanguage)
	return s
}

// Validate checks the cross-field invariants the editing surface relies on.
func (s Settings) Validate() error {
	if s.MaxTeamNameLength < MinTeamNameLength || s.MaxTeamNameLength > MaxTeamNameLength {
		return fmt.Errorf("%w: maxTeamNameLength must be between %d and %d",
			ErrInvalid, MinTeamNameLength, MaxTeamNameLength)
	}
	if len(s.GameLanguages) == 0 {
		return fmt.Errorf("%w: at least one game language is required", ErrInvalid)
	}
	if !slices.Contains(s.GameLanguages, s.DefaultLanguage) {
		return fmt.Errorf("%w: default language %q is not one of %v",
			ErrInvalid, s.DefaultLanguage, s.GameLanguages)
	}
	if s.TotalPhases < 0 {
		return fmt.Errorf("%w: totalPhases must not be negative", ErrInvalid)
	}
	return nil
}
