package tokens

import "fmt"

// DefaultTotalTime is the phase 1 countdown assumed when a result does not
// report one.
const DefaultTotalTime = 180

// Phase1Result describes a finished timed challenge. Times are in seconds.
type Phase1Result struct {
	Completed         bool `json:"completed"`
	TimeRemaining     int  `json:"timeRemaining"`
	TotalTime         int  `json:"totalTime"`
	PerfectAnagram    bool `json:"perfectAnagram"`
	PerfectWordSearch bool `json:"perfectWordSearch"`
}

type Phase2Result struct {
	ChallengeSelected bool `json:"challengeSelected"`
	StoryRead         bool `json:"storyRead"`
}

// Phase1Tokens awards completion plus a tiered time bonus: the full bonus
// with more than half the time left, half of it (rounded down) with more
// than a quarter left, nothing otherwise. The result is not capped.
func (r RuleSet) Phase1Tokens(res Phase1Result) int {
	if !res.Completed {
		return 0
	}
	total := res.TotalTime
	if total == 0 {
		total = DefaultTotalTime
	}

	tokens := r.Phase1.Completion
	if res.TimeRemaining > 0 && total > 0 {
		// remaining/total > 1/2 and > 1/4, kept in integers.
		switch {
		case 2*res.TimeRemaining > total:
			tokens += r.Phase1.TimeBonus
		case 4*res.TimeRemaining > total:
			tokens += r.Phase1.TimeBonus / 2
		}
	}
	if res.PerfectAnagram {
		tokens += r.Phase1.PerfectAnagram
	}
	if res.PerfectWordSearch {
		tokens += r.Phase1.PerfectWordSearch
	}
	return tokens
}

func (r RuleSet) Phase2Tokens(res Phase2Result) int {
	tokens := 0
	if res.ChallengeSelected {
		tokens += r.Phase2.ChallengeSelection
	}
	if res.StoryRead {
		tokens += r.Phase2.Completion
	}
	return tokens
}

func (a AnswerRules) tokens(correct bool) int {
	if correct {
		return a.Correct
	}
	return a.Incorrect
}

func (r RuleSet) Phase3Tokens(correct bool) int { return r.Phase3.tokens(correct) }
func (r RuleSet) Phase4Tokens(correct bool) int { return r.Phase4.tokens(correct) }
func (r RuleSet) Phase5Tokens(correct bool) int { return r.Phase5.tokens(correct) }

// AnswerTokens scores one answer of the question phases 3 to 5.
func (r RuleSet) AnswerTokens(phase int, correct bool) (int, error) {
	switch phase {
	case 3:
		return r.Phase3Tokens(correct), nil
	case 4:
		return r.Phase4Tokens(correct), nil
	case 5:
		return r.Phase5Tokens(correct), nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnknownPhase, phase)
}

// MaxPossible is the best attainable total, the denominator of any
// percentage display.
func (r RuleSet) MaxPossible() int {
	return r.Phase1.Completion + r.Phase1.TimeBonus + r.Phase1.PerfectAnagram + r.Phase1.PerfectWordSearch +
		r.Phase2.Completion + r.Phase2.ChallengeSelection +
		r.Phase3.Correct + r.Phase4.Correct + r.Phase5.Correct
}
