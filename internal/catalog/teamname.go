package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const minTeamNameRunes = 2

// ValidateTeamName checks a team name against the current settings and
// returns it trimmed. An empty name is accepted only when team names are
// optional.
func (c *Catalog) ValidateTeamName(name string) (string, error) {
	s := c.Settings()
	name = strings.TrimSpace(name)

	n := utf8.RuneCountInString(name)
	switch {
	case n == 0 && s.TeamNameRequired:
		return "", fmt.Errorf("%w: team name is required", ErrInvalid)
	case n == 0:
		return "", nil
	case n < minTeamNameRunes:
		return "", fmt.Errorf("%w: team name must have at least %d characters", ErrInvalid, minTeamNameRunes)
	case n > s.MaxTeamNameLength:
		return "", fmt.Errorf("%w: team name must have at most %d characters", ErrInvalid, s.MaxTeamNameLength)
	}
	return name, nil
}
