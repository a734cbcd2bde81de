package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
)

// Store persists named records. It matches gdata.Manager and the SQLite
// key/value table. LoadItem returns empty data when the key is absent.
type Store interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// DefaultProgressKey is the record name used by local play.
const DefaultProgressKey = "rex-progress"

// ProgressionState is the persisted campaign record.
type ProgressionState struct {
	CurrentLevel    int   `json:"currentLevel"`
	UnlockedLevels  []int `json:"unlockedLevels"`
	CompletedLevels []int `json:"completedLevels"`
	Score           int   `json:"score"`
}

// DefaultProgressionState is a fresh campaign.
func DefaultProgressionState() ProgressionState {
	return ProgressionState{
		CurrentLevel:    1,
		UnlockedLevels:  []int{1},
		CompletedLevels: []int{},
		Score:           0,
	}
}

// LevelStatus is the per-level progression state.
type LevelStatus int

const (
	Locked LevelStatus = iota
	Unlocked
	Completed
)

// String returns a human-readable name for the status.
func (s LevelStatus) String() string {
	switch s {
	case Locked:
		return "locked"
	case Unlocked:
		return "unlocked"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Progression governs which levels are playable and keeps the cumulative
// score. Unlocked levels always form a prefix 1..k of the catalog.
type Progression struct {
	total  int
	store  Store
	key    string
	logger *log.Logger

	current   int
	unlocked  int // highest unlocked id
	completed map[int]bool
	score     int
}

// NewProgression creates a fresh progression for a catalog of total levels.
// store may be nil for an in-memory campaign.
func NewProgression(total int, store Store, key string, logger *log.Logger) *Progression {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if key == "" {
		key = DefaultProgressKey
	}
	p := &Progression{
		total:  max(total, 1),
		store:  store,
		key:    key,
		logger: logger,
	}
	p.apply(DefaultProgressionState())
	return p
}

// Load restores the persisted record. A missing or unreadable record
// leaves the defaults in place.
func (p *Progression) Load() {
	p.apply(DefaultProgressionState())
	if p.store == nil {
		return
	}

	data, err := p.store.LoadItem(p.key)
	if err != nil {
		p.logger.Warn("could not load progress", "key", p.key, "err", err)
		return
	}
	if len(data) == 0 {
		return
	}

	state, err := DecodeProgression(data)
	if err != nil {
		p.logger.Warn("saved progress is corrupt, starting fresh", "key", p.key, "err", err)
		return
	}
	p.apply(Sanitize(state, p.total))
	p.logger.Debug("progress loaded", "current", p.current, "unlocked", p.unlocked, "score", p.score)
}

// DecodeProgression parses a persisted record without sanitizing it.
func DecodeProgression(data []byte) (ProgressionState, error) {
	var state ProgressionState
	if err := json.Unmarshal(data, &state); err != nil {
		return ProgressionState{}, fmt.Errorf("sim: decode progress: %w", err)
	}
	return state, nil
}

// Sanitize repairs a loaded record against a catalog of total levels:
// out-of-range ids are dropped, unlocked levels are widened to the prefix
// covering every unlocked id and the successor of every completed level,
// and the current level is moved into the unlocked range.
func Sanitize(s ProgressionState, total int) ProgressionState {
	inRange := func(id int) bool { return id >= 1 && id <= total }

	completed := make([]int, 0, len(s.CompletedLevels))
	for _, id := range s.CompletedLevels {
		if inRange(id) && !slices.Contains(completed, id) {
			completed = append(completed, id)
		}
	}
	slices.Sort(completed)

	highest := 1
	for _, id := range s.UnlockedLevels {
		if inRange(id) {
			highest = max(highest, id)
		}
	}
	for _, id := range completed {
		highest = max(highest, min(id+1, total))
	}

	current := s.CurrentLevel
	if current < 1 || current > highest {
		current = 1
	}

	return ProgressionState{
		CurrentLevel:    current,
		UnlockedLevels:  prefix(highest),
		CompletedLevels: completed,
		Score:           max(s.Score, 0),
	}
}

func prefix(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func (p *Progression) apply(s ProgressionState) {
	p.current = s.CurrentLevel
	p.unlocked = 1
	for _, id := range s.UnlockedLevels {
		p.unlocked = max(p.unlocked, id)
	}
	p.completed = make(map[int]bool, len(s.CompletedLevels))
	for _, id := range s.CompletedLevels {
		p.completed[id] = true
	}
	p.score = s.Score
}

// Complete records a win on level k and folds runScore into the
// cumulative score. The next level is unlocked if it exists.
// Re-completing a level only adds score.
func (p *Progression) Complete(k, runScore int) {
	if k < 1 || k > p.total {
		return
	}
	p.completed[k] = true
	if k+1 <= p.total && k+1 > p.unlocked {
		p.unlocked = k + 1
		p.logger.Info("level unlocked", "level", k+1)
	}
	p.score += runScore
	p.persist()
}

// Select makes level j current if it is unlocked and reports whether the
// request was accepted. Locked or unknown levels are ignored.
func (p *Progression) Select(j int) bool {
	if !p.IsUnlocked(j) {
		return false
	}
	if j != p.current {
		p.current = j
		p.persist()
	}
	return true
}

// Reset discards all progress and persists the fresh record.
func (p *Progression) Reset() {
	p.apply(DefaultProgressionState())
	p.persist()
}

// IsUnlocked reports whether level j may be played.
func (p *Progression) IsUnlocked(j int) bool {
	return j >= 1 && j <= p.unlocked
}

// IsCompleted reports whether level j has been won at least once.
func (p *Progression) IsCompleted(j int) bool {
	return p.completed[j]
}

// Status returns the state of level j.
func (p *Progression) Status(j int) LevelStatus {
	switch {
	case p.IsCompleted(j):
		return Completed
	case p.IsUnlocked(j):
		return Unlocked
	default:
		return Locked
	}
}

// Current returns the current level id.
func (p *Progression) Current() int { return p.current }

// Score returns the cumulative score.
func (p *Progression) Score() int { return p.score }

// Total returns the number of levels in the campaign.
func (p *Progression) Total() int { return p.total }

// HasNext reports whether a level follows k.
func (p *Progression) HasNext(k int) bool { return k+1 <= p.total }

// State returns a copy of the record as it would be persisted.
func (p *Progression) State() ProgressionState {
	completed := make([]int, 0, len(p.completed))
	for id := range p.completed {
		completed = append(completed, id)
	}
	slices.Sort(completed)
	return ProgressionState{
		CurrentLevel:    p.current,
		UnlockedLevels:  prefix(p.unlocked),
		CompletedLevels: completed,
		Score:           p.score,
	}
}

// persist writes the record. Failures are logged and otherwise ignored.
func (p *Progression) persist() {
	if p.store == nil {
		return
	}
	data, err := json.Marshal(p.State())
	if err != nil {
		p.logger.Warn("could not encode progress", "err", err)
		return
	}
	if err := p.store.SaveItem(p.key, data); err != nil {
		p.logger.Warn("could not save progress", "key", p.key, "err", err)
		return
	}
	p.logger.Debug("progress saved", "key", p.key)
}
