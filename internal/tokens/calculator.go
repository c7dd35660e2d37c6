package tokens

import "sync"

// Calculator holds the active rule set. Swapping rules never touches tokens
// already awarded; those are plain integers owned by the caller.
type Calculator struct {
	mu       sync.RWMutex
	rules    RuleSet
	presetID string // "" means custom rules
}

// NewCalculator starts with the balanced preset.
func NewCalculator() *Calculator {
	return &Calculator{rules: DefaultRules(), presetID: DefaultPresetID}
}

func (c *Calculator) Rules() RuleSet {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rules
}

// PresetID returns the active preset, or "" for custom rules.
func (c *Calculator) PresetID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.presetID
}

// UpdateConfig replaces the rules wholesale. The result is custom even if it
// happens to equal a preset.
func (c *Calculator) UpdateConfig(r RuleSet) error {
	if err := r.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	c.rules = r
	c.presetID = ""
	c.mu.Unlock()
	return nil
}

func (c *Calculator) LoadPreset(id string) error {
	p, err := PresetByID(id)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.rules = p.Config
	c.presetID = p.ID
	c.mu.Unlock()
	return nil
}

func (c *Calculator) ResetToDefault() {
	c.mu.Lock()
	c.rules = DefaultRules()
	c.presetID = DefaultPresetID
	c.mu.Unlock()
}

// Restore installs persisted state as is.
func (c *Calculator) Restore(r RuleSet, presetID string) {
	c.mu.Lock()
	c.rules = r
	c.presetID = presetID
	c.mu.Unlock()
}

func (c *Calculator) Phase1Tokens(res Phase1Result) int { return c.Rules().Phase1Tokens(res) }
func (c *Calculator) Phase2Tokens(res Phase2Result) int { return c.Rules().Phase2Tokens(res) }
func (c *Calculator) Phase3Tokens(correct bool) int     { return c.Rules().Phase3Tokens(correct) }
func (c *Calculator) Phase4Tokens(correct bool) int     { return c.Rules().Phase4Tokens(correct) }
func (c *Calculator) Phase5Tokens(correct bool) int     { return c.Rules().Phase5Tokens(correct) }

func (c *Calculator) AnswerTokens(phase int, correct bool) (int, error) {
	return c.Rules().AnswerTokens(phase, correct)
}

func (c *Calculator) MaxPossibleTokens() int { return c.Rules().MaxPossible() }

func (c *Calculator) Tier(tokens int) Tier { return TierFor(tokens, c.MaxPossibleTokens()) }
