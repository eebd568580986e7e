package categories

import (
	"sync"

	"github.com/samber/lo"
)

// Selection is the ordered set of category ids currently filtering the
// feed. It starts at {"all"} and never holds "all" together with another
// id. Never persisted.
type Selection struct {
	mu  sync.Mutex
	ids []string
}

func NewSelection() *Selection {
	return &Selection{ids: []string{All}}
}

// Toggle flips membership of id. Toggling "all" always resolves to exactly
// {"all"}; toggling anything else first evicts "all". Removing the last
// specific id falls back to {"all"} rather than leaving an un-filterable
// empty set.
func (s *Selection) Toggle(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == All {
		s.ids = []string{All}
		return
	}

	ids := lo.Without(s.ids, All)
	if lo.Contains(ids, id) {
		ids = lo.Without(ids, id)
	} else {
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		ids = []string{All}
	}
	s.ids = ids
}

// Select replaces the whole set with {id}: the exclusive, non-toggling
// choice.
func (s *Selection) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids = []string{id}
}

func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids = []string{All}
}

// IDs returns a copy of the current set, in selection order.
func (s *Selection) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Filter returns the ids to send as the categories query parameter, nil
// when the selection means "no filter".
func (s *Selection) Filter() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.ids) == 0 || (len(s.ids) == 1 && s.ids[0] == All) {
		return nil
	}
	return lo.Without(s.ids, All)
}
