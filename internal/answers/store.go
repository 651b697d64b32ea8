// Package answers holds the live multi-select answer state for one
// assessment session. Selecting more than one option for a question is a
// first-class state meaning "I behave this way depending on context", not a
// data-entry error.
package answers

import (
	"fmt"
	"sort"

	"ailit/internal/survey"
)

// Store maps question IDs to the set of selected option values. The store is
// bound to a catalog so it can refuse values a question does not offer.
type Store struct {
	catalog  *survey.Catalog
	selected map[string]map[int]struct{}
}

// NewStore creates an empty Store for the given catalog.
func NewStore(catalog *survey.Catalog) *Store {
	return &Store{
		catalog:  catalog,
		selected: make(map[string]map[int]struct{}),
	}
}

// Toggle flips the selection state of value for questionID: selected values
// are removed, unselected values are added. It is its own inverse.
func (s *Store) Toggle(questionID string, value int) error {
	if !s.catalog.HasOptionValue(questionID, value) {
		return fmt.Errorf("question %q has no option with value %d", questionID, value)
	}

	set, ok := s.selected[questionID]
	if !ok {
		set = make(map[int]struct{})
		s.selected[questionID] = set
	}

	if _, on := set[value]; on {
		delete(set, value)
		if len(set) == 0 {
			delete(s.selected, questionID)
		}
		return nil
	}
	set[value] = struct{}{}
	return nil
}

// Get returns the selected values for questionID in ascending order. A
// never-touched question yields an empty slice.
func (s *Store) Get(questionID string) []int {
	return sortedValues(s.selected[questionID])
}

// Answered reports whether at least one option is selected for questionID.
func (s *Store) Answered(questionID string) bool {
	return len(s.selected[questionID]) > 0
}

// AnsweredCount returns the number of questions with at least one selection.
func (s *Store) AnsweredCount() int {
	return len(s.selected)
}

// Restore replaces the store contents with the given answer sets, silently
// dropping values the catalog does not recognize. Used when resuming from a
// persisted snapshot; a corrupt entry degrades to "unanswered" rather than
// failing the whole restore.
func (s *Store) Restore(saved map[string][]int) {
	s.selected = make(map[string]map[int]struct{}, len(saved))
	for qid, values := range saved {
		for _, v := range values {
			if !s.catalog.HasOptionValue(qid, v) {
				continue
			}
			set, ok := s.selected[qid]
			if !ok {
				set = make(map[int]struct{})
				s.selected[qid] = set
			}
			set[v] = struct{}{}
		}
	}
}

// Clear removes all selections. Snapshots taken earlier are unaffected.
func (s *Store) Clear() {
	s.selected = make(map[string]map[int]struct{})
}

// Freeze captures the current selections as an immutable Snapshot. Scoring
// and prompt grounding read the snapshot taken at submit time, so clearing
// the live store while generation is still in flight cannot starve them.
func (s *Store) Freeze() Snapshot {
	snap := make(Snapshot, len(s.selected))
	for qid, set := range s.selected {
		snap[qid] = sortedValues(set)
	}
	return snap
}

// Snapshot is a point-in-time copy of the answer state. Callers must not
// mutate it.
type Snapshot map[string][]int

// Values returns the selected values for questionID in ascending order.
func (s Snapshot) Values(questionID string) []int {
	return s[questionID]
}

// Answered reports whether questionID has at least one selected value.
func (s Snapshot) Answered(questionID string) bool {
	return len(s[questionID]) > 0
}

// Peak returns the highest selected value for questionID, or 0 if the
// question is unanswered. The peak is the per-question score: a multi-select
// answer scores at its strongest rung, not the average of the set.
func (s Snapshot) Peak(questionID string) int {
	values := s[questionID]
	if len(values) == 0 {
		return 0
	}
	return values[len(values)-1]
}

func sortedValues(set map[int]struct{}) []int {
	if len(set) == 0 {
		return nil
	}
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
