// Package catalog holds the ordered phase catalog of a game: the phases,
// their multiple-choice questions and the game settings. Phase order is kept
// dense (1..N) after every structural change.
package catalog

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrInvalid          = errors.New("invalid input")
)

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Snapshot is the portable form of a catalog, and the shape of the export
// file.
type Snapshot struct {
	Phases   []Phase  `json:"phases"`
	Settings Settings `json:"settings"`
}

type Catalog struct {
	mu       sync.RWMutex
	phases   []Phase // sorted by Order, Order dense from 1
	settings Settings
	newID    func(prefix string) string
}

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// New builds a catalog from snap, validating it as Replace does.
func New(snap Snapshot) (*Catalog, error) {
	c := &Catalog{newID: newID}
	if err := c.Replace(snap); err != nil {
		return nil, err
	}
	return c, nil
}

// NewDefault builds a catalog holding the compiled-in default game.
func NewDefault() *Catalog {
	c, err := New(DefaultSnapshot())
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid defaults: %v", err))
	}
	return c
}

func (c *Catalog) Phases() []Phase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Phase, len(c.phases))
	for i, p := range c.phases {
		out[i] = p.clone()
	}
	return out
}

// ActivePhases returns the play sequence: active phases in order.
func (c *Catalog) ActivePhases() []Phase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Phase, 0, len(c.phases))
	for _, p := range c.phases {
		if p.IsActive {
			out = append(out, p.clone())
		}
	}
	return out
}

func (c *Catalog) Phase(id string) (Phase, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := c.indexOf(id)
	if i < 0 {
		return Phase{}, fmt.Errorf("phase %q: %w", id, ErrNotFound)
	}
	return c.phases[i].clone(), nil
}

func (c *Catalog) AddPhase(in NewPhase) (Phase, error) {
	if !in.Kind.Valid() {
		return Phase{}, fmt.Errorf("%w: unknown phase type %q", ErrInvalid, in.Kind)
	}
	if len(in.Questions) > 0 && in.Kind != KindMultipleChoice {
		return Phase{}, fmt.Errorf("%w: only multiple-choice phases hold questions", ErrInvalid)
	}

	p := Phase{
		ID:          c.newID("phase"),
		Title:       in.Title,
		Description: in.Description,
		Kind:        in.Kind,
		TimeLimit:   in.TimeLimit,
		Content:     in.Content,
		IsActive:    in.IsActive,
	}
	for _, nq := range in.Questions {
		q := nq.question(c.newID("q"))
		if err := q.validate(); err != nil {
			return Phase{}, err
		}
		p.Questions = append(p.Questions, q)
	}
	if err := p.normalize(); err != nil {
		return Phase{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	p.Order = 1
	if n := len(c.phases); n > 0 {
		p.Order = c.phases[n-1].Order + 1
	}
	c.phases = append(c.phases, p)
	c.recount()
	return p.clone(), nil
}

func (c *Catalog) UpdatePhase(id string, u PhaseUpdate) (Phase, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return Phase{}, fmt.Errorf("phase %q: %w", id, ErrNotFound)
	}

	p := c.phases[i].clone()
	u.Title.applyTo(&p.Title)
	u.Description.applyTo(&p.Description)
	u.TimeLimit.applyTo(&p.TimeLimit)
	u.Content.applyTo(&p.Content)
	u.IsActive.applyTo(&p.IsActive)
	if err := p.normalize(); err != nil {
		return Phase{}, err
	}

	c.phases[i] = p
	c.recount()
	return p.clone(), nil
}

func (c *Catalog) DeletePhase(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return fmt.Errorf("phase %q: %w", id, ErrNotFound)
	}
	c.phases = slices.Delete(c.phases, i, i+1)
	c.resequence()
	c.recount()
	return nil
}

// MovePhase swaps the phase with its neighbour in the given direction. It
// fails with ErrInvalidOperation when the phase is already first (up) or
// last (down).
func (c *Catalog) MovePhase(id string, dir Direction) error {
	if dir != Up && dir != Down {
		return fmt.Errorf("%w: unknown direction %q", ErrInvalid, dir)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return fmt.Errorf("phase %q: %w", id, ErrNotFound)
	}
	j := i - 1
	if dir == Down {
		j = i + 1
	}
	if j < 0 || j >= len(c.phases) {
		return fmt.Errorf("%w: phase %q cannot move %s", ErrInvalidOperation, id, dir)
	}

	c.phases[i].Order, c.phases[j].Order = c.phases[j].Order, c.phases[i].Order
	c.resequence()
	c.recount()
	return nil
}

func (c *Catalog) AddQuestion(phaseID string, in NewQuestion) (Question, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(phaseID)
	if i < 0 {
		return Question{}, fmt.Errorf("phase %q: %w", phaseID, ErrNotFound)
	}
	p := &c.phases[i]
	if p.Kind != KindMultipleChoice {
		return Question{}, fmt.Errorf("%w: phase %q is %s, not %s",
			ErrInvalidOperation, phaseID, p.Kind, KindMultipleChoice)
	}

	q := in.question(c.newID("q"))
	if err := q.validate(); err != nil {
		return Question{}, err
	}
	p.Questions = append(p.Questions, q)
	return q.clone(), nil
}

func (c *Catalog) UpdateQuestion(phaseID, questionID string, u QuestionUpdate) (Question, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, qi, err := c.findQuestion(phaseID, questionID)
	if err != nil {
		return Question{}, err
	}

	q := p.Questions[qi].clone()
	u.Text.applyTo(&q.Text)
	if u.Options.Set {
		q.Options = append([]string(nil), u.Options.Value...)
	}
	u.CorrectAnswer.applyTo(&q.CorrectAnswer)
	u.Explanation.applyTo(&q.Explanation)
	if err := q.validate(); err != nil {
		return Question{}, err
	}

	p.Questions[qi] = q
	return q.clone(), nil
}

func (c *Catalog) DeleteQuestion(phaseID, questionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, qi, err := c.findQuestion(phaseID, questionID)
	if err != nil {
		return err
	}
	p.Questions = slices.Delete(p.Questions, qi, qi+1)
	return nil
}

func (c *Catalog) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.clone()
}

// UpdateSettings merges u into the settings. The merged result must pass
// Settings.Validate, otherwise nothing changes.
func (c *Catalog) UpdateSettings(u SettingsUpdate) (Settings, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.settings.apply(u)
	if err := next.Validate(); err != nil {
		return Settings{}, err
	}
	c.settings = next
	return next.clone(), nil
}

func (c *Catalog) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	phases := make([]Phase, len(c.phases))
	for i, p := range c.phases {
		phases[i] = p.clone()
	}
	return Snapshot{Phases: phases, Settings: c.settings.clone()}
}

// Replace swaps in a whole new catalog. Phases are stable-sorted by their
// order and renumbered 1..N. Settings are taken as given, totalPhases
// included. On error the catalog is unchanged.
func (c *Catalog) Replace(snap Snapshot) error {
	phases, err := preparePhases(snap.Phases)
	if err != nil {
		return err
	}
	if err := snap.Settings.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.phases = phases
	c.settings = snap.Settings.clone()
	return nil
}

// ValidatePhases reports whether phases would be accepted by Replace.
func ValidatePhases(phases []Phase) error {
	_, err := preparePhases(phases)
	return err
}

func preparePhases(in []Phase) ([]Phase, error) {
	out := make([]Phase, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, p := range in {
		p = p.clone()
		if p.ID == "" {
			return nil, fmt.Errorf("%w: phase without id", ErrInvalid)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: duplicate phase id %q", ErrInvalid, p.ID)
		}
		seen[p.ID] = true
		if !p.Kind.Valid() {
			return nil, fmt.Errorf("%w: phase %q has unknown type %q", ErrInvalid, p.ID, p.Kind)
		}

		qids := make(map[string]bool, len(p.Questions))
		for _, q := range p.Questions {
			if q.ID == "" || qids[q.ID] {
				return nil, fmt.Errorf("%w: phase %q has a missing or duplicate question id", ErrInvalid, p.ID)
			}
			qids[q.ID] = true
			if err := q.validate(); err != nil {
				return nil, fmt.Errorf("phase %q question %q: %w", p.ID, q.ID, err)
			}
		}
		if err := p.normalize(); err != nil {
			return nil, fmt.Errorf("phase %q: %w", p.ID, err)
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, func(a, b Phase) int { return cmp.Compare(a.Order, b.Order) })
	for i := range out {
		out[i].Order = i + 1
	}
	return out, nil
}

func (c *Catalog) indexOf(id string) int {
	return slices.IndexFunc(c.phases, func(p Phase) bool { return p.ID == id })
}

func (c *Catalog) findQuestion(phaseID, questionID string) (*Phase, int, error) {
	i := c.indexOf(phaseID)
	if i < 0 {
		return nil, 0, fmt.Errorf("phase %q: %w", phaseID, ErrNotFound)
	}
	p := &c.phases[i]
	qi := slices.IndexFunc(p.Questions, func(q Question) bool { return q.ID == questionID })
	if qi < 0 {
		return nil, 0, fmt.Errorf("question %q in phase %q: %w", questionID, phaseID, ErrNotFound)
	}
	return p, qi, nil
}

// resequence restores the dense order invariant. The stable sort keeps
// insertion order for records that share an order value.
func (c *Catalog) resequence() {
	slices.SortStableFunc(c.phases, func(a, b Phase) int { return cmp.Compare(a.Order, b.Order) })
	for i := range c.phases {
		c.phases[i].Order = i + 1
	}
}

func (c *Catalog) recount() {
	n := 0
	for _, p := range c.phases {
		if p.IsActive {
			n++
		}
	}
	c.settings.TotalPhases = n
}

func (nq NewQuestion) question(id string) Question {
	return Question{
		ID:            id,
		Text:          nq.Text,
		Options:       append([]string(nil), nq.Options...),
		CorrectAnswer: nq.CorrectAnswer,
		Explanation:   nq.Explanation,
	}
}
