package sim

import (
	"encoding/json"
	"errors"
	"math/rand"
	"reflect"
	"slices"
	"testing"
)

// memStore is an in-memory Store that counts writes.
type memStore struct {
	items   map[string][]byte
	saves   int
	loadErr error
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{items: make(map[string][]byte)}
}

func (m *memStore) LoadItem(key string) ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.items[key], nil
}

func (m *memStore) SaveItem(key string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.items[key] = append([]byte(nil), data...)
	return nil
}

func TestProgressionDefaults(t *testing.T) {
	p := NewProgression(3, newMemStore(), "", nil)
	p.Load()

	want := DefaultProgressionState()
	if got := p.State(); !reflect.DeepEqual(got, want) {
		t.Errorf("State() = %+v, expected %+v", got, want)
	}
	if p.Status(1) != Unlocked || p.Status(2) != Locked || p.Status(3) != Locked {
		t.Errorf("statuses = %v %v %v", p.Status(1), p.Status(2), p.Status(3))
	}
}

func TestProgressionComplete(t *testing.T) {
	store := newMemStore()
	p := NewProgression(3, store, "k", nil)

	p.Complete(1, 300)
	if !p.IsCompleted(1) || !p.IsUnlocked(2) || p.IsUnlocked(3) {
		t.Errorf("after completing 1: %+v", p.State())
	}
	if p.Score() != 300 {
		t.Errorf("score = %d", p.Score())
	}
	if store.saves != 1 {
		t.Errorf("Complete should persist once, saved %d times", store.saves)
	}

	// Re-completing only adds score.
	p.Complete(1, 50)
	if p.IsUnlocked(3) || p.Score() != 350 {
		t.Errorf("re-completion: %+v", p.State())
	}

	p.Complete(2, 0)
	p.Complete(3, 0)
	if got := p.State().UnlockedLevels; !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("unlocked = %v, last level must not unlock past the catalog", got)
	}

	var saved ProgressionState
	if err := json.Unmarshal(store.items["k"], &saved); err != nil {
		t.Fatalf("persisted record is not JSON: %v", err)
	}
	if !reflect.DeepEqual(saved, p.State()) {
		t.Errorf("persisted %+v, in memory %+v", saved, p.State())
	}
}

func TestProgressionCompleteOutOfRange(t *testing.T) {
	store := newMemStore()
	p := NewProgression(3, store, "", nil)
	p.Complete(0, 100)
	p.Complete(4, 100)
	if p.Score() != 0 || store.saves != 0 {
		t.Error("completing unknown levels should be ignored")
	}
}

func TestProgressionSelect(t *testing.T) {
	store := newMemStore()
	p := NewProgression(3, store, "", nil)

	if p.Select(2) {
		t.Error("locked level select should be rejected")
	}
	if p.Current() != 1 || store.saves != 0 {
		t.Error("rejected select must not change or persist anything")
	}

	if !p.Select(1) {
		t.Error("selecting the current level should be accepted")
	}
	if store.saves != 0 {
		t.Error("selecting the current level again should not persist")
	}

	p.Complete(1, 0)
	saves := store.saves
	if !p.Select(2) || p.Current() != 2 {
		t.Error("unlocked level select should be accepted")
	}
	if store.saves != saves+1 {
		t.Error("changing the current level should persist")
	}

	for _, j := range []int{-1, 0, 3, 99} {
		if p.Select(j) {
			t.Errorf("Select(%d) should be rejected", j)
		}
	}
}

func TestProgressionRoundTrip(t *testing.T) {
	store := newMemStore()
	p := NewProgression(3, store, DefaultProgressKey, nil)
	p.Complete(1, 400)
	p.Complete(2, 600)
	p.Select(2)

	q := NewProgression(3, store, DefaultProgressKey, nil)
	q.Load()
	if !reflect.DeepEqual(p.State(), q.State()) {
		t.Errorf("loaded %+v, saved %+v", q.State(), p.State())
	}
}

// Scenario D: a corrupt record loads as a fresh campaign.
func TestProgressionCorruptRecord(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"garbage text", "not json at all {"},
		{"truncated", `{"currentLevel": 2, "unlockedLev`},
		{"wrong types", `{"currentLevel": "two"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore()
			store.items[DefaultProgressKey] = []byte(tc.data)

			p := NewProgression(3, store, DefaultProgressKey, nil)
			p.Load()
			if got := p.State(); !reflect.DeepEqual(got, DefaultProgressionState()) {
				t.Errorf("State() = %+v, expected defaults", got)
			}
		})
	}
}

func TestProgressionStoreErrors(t *testing.T) {
	store := newMemStore()
	store.loadErr = errors.New("disk on fire")
	p := NewProgression(3, store, "", nil)
	p.Load()
	if !reflect.DeepEqual(p.State(), DefaultProgressionState()) {
		t.Error("load failure should fall back to defaults")
	}

	store.saveErr = errors.New("read-only")
	p.Complete(1, 100)
	if !p.IsUnlocked(2) || p.Score() != 100 {
		t.Error("a failed save must not roll back the in-memory transition")
	}
}

func TestProgressionReset(t *testing.T) {
	store := newMemStore()
	p := NewProgression(3, store, "", nil)
	p.Complete(1, 100)
	p.Reset()

	if !reflect.DeepEqual(p.State(), DefaultProgressionState()) {
		t.Errorf("after Reset: %+v", p.State())
	}
	q := NewProgression(3, store, "", nil)
	q.Load()
	if q.IsUnlocked(2) {
		t.Error("Reset should persist the fresh record")
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   ProgressionState
		want ProgressionState
	}{
		{
			name: "valid record unchanged",
			in:   ProgressionState{CurrentLevel: 2, UnlockedLevels: []int{1, 2}, CompletedLevels: []int{1}, Score: 500},
			want: ProgressionState{CurrentLevel: 2, UnlockedLevels: []int{1, 2}, CompletedLevels: []int{1}, Score: 500},
		},
		{
			name: "level 1 always unlocked",
			in:   ProgressionState{CurrentLevel: 1, UnlockedLevels: nil, CompletedLevels: nil},
			want: ProgressionState{CurrentLevel: 1, UnlockedLevels: []int{1}, CompletedLevels: []int{}},
		},
		{
			name: "out of range ids dropped",
			in:   ProgressionState{CurrentLevel: 7, UnlockedLevels: []int{1, 9, -3}, CompletedLevels: []int{0, 12}},
			want: ProgressionState{CurrentLevel: 1, UnlockedLevels: []int{1}, CompletedLevels: []int{}},
		},
		{
			name: "successor of completed unlocked",
			in:   ProgressionState{CurrentLevel: 1, UnlockedLevels: []int{1}, CompletedLevels: []int{2, 1, 2}},
			want: ProgressionState{CurrentLevel: 1, UnlockedLevels: []int{1, 2, 3}, CompletedLevels: []int{1, 2}},
		},
		{
			name: "gaps filled",
			in:   ProgressionState{CurrentLevel: 3, UnlockedLevels: []int{3}, CompletedLevels: nil},
			want: ProgressionState{CurrentLevel: 3, UnlockedLevels: []int{1, 2, 3}, CompletedLevels: []int{}},
		},
		{
			name: "current forced into unlocked range",
			in:   ProgressionState{CurrentLevel: 3, UnlockedLevels: []int{1}, CompletedLevels: nil},
			want: ProgressionState{CurrentLevel: 1, UnlockedLevels: []int{1}, CompletedLevels: []int{}},
		},
		{
			name: "negative score clamped",
			in:   ProgressionState{CurrentLevel: 1, UnlockedLevels: []int{1}, Score: -40},
			want: ProgressionState{CurrentLevel: 1, UnlockedLevels: []int{1}, CompletedLevels: []int{}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Sanitize(tc.in, 3)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Sanitize() = %+v, expected %+v", got, tc.want)
			}
		})
	}
}

func TestProgressionUnlockedIsPrefix(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	const total = 3

	for run := 0; run < 50; run++ {
		p := NewProgression(total, newMemStore(), "", nil)
		for op := 0; op < 20; op++ {
			id := rng.Intn(total+2) - 1 // includes invalid ids
			if rng.Intn(2) == 0 {
				if p.IsUnlocked(id) {
					p.Complete(id, rng.Intn(500))
				}
			} else {
				p.Select(id)
			}

			st := p.State()
			k := 1
			for _, c := range st.CompletedLevels {
				k = max(k, c+1)
			}
			k = min(k, total)
			if !slices.Equal(st.UnlockedLevels, prefix(k)) {
				t.Fatalf("run %d op %d: unlocked %v, expected 1..%d (completed %v)", run, op, st.UnlockedLevels, k, st.CompletedLevels)
			}
			if !p.IsUnlocked(st.CurrentLevel) {
				t.Fatalf("run %d op %d: current level %d is locked", run, op, st.CurrentLevel)
			}
		}
	}
}
