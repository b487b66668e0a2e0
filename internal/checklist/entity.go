package checklist

import (
	"fmt"
	"sync"

	"fleet-inspector/internal/domain"
)

// Entity is one truck's or trailer's checklist state: the full catalog of
// item results for that kind, in display order. Item access is
// mutex-guarded: the report stays editable while a submission serializes it
// in the background.
type Entity struct {
	Kind       domain.EntityKind
	Identifier string

	mu    sync.Mutex
	items []domain.ItemResult
}

// NewEntity builds an entity with one unset result per catalog key. This is
// the only way an item set is produced, so every catalog key is present
// exactly once.
func NewEntity(kind domain.EntityKind, identifier string) (*Entity, error) {
	keys := ItemsFor(kind)
	if keys == nil {
		return nil, fmt.Errorf("unknown entity kind: %s", kind)
	}

	items := make([]domain.ItemResult, len(keys))
	for i, key := range keys {
		items[i] = domain.ItemResult{Key: key}
	}

	return &Entity{
		Kind:       kind,
		Identifier: identifier,
		items:      items,
	}, nil
}

// Items returns a snapshot of the item results in display order.
func (e *Entity) Items() []domain.ItemResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]domain.ItemResult, len(e.items))
	copy(out, e.items)
	return out
}

// SetValue records a verdict for one item. Unknown keys and verdicts
// outside the closed set leave the entity unchanged and report the failure.
func (e *Entity) SetValue(key domain.ItemKey, verdict domain.Verdict) error {
	if !domain.ValidVerdict(verdict) {
		return fmt.Errorf("invalid verdict %q for item %s", verdict, key)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOf(key)
	if idx < 0 {
		return fmt.Errorf("item %s is not in the %s checklist", key, e.Kind)
	}

	e.items[idx].Value = verdict
	return nil
}

// Value returns the recorded verdict for one item, or empty when unset.
func (e *Entity) Value(key domain.ItemKey) (domain.Verdict, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOf(key)
	if idx < 0 {
		return "", fmt.Errorf("item %s is not in the %s checklist", key, e.Kind)
	}
	return e.items[idx].Value, nil
}

// Mapping serializes item verdicts for the submission payload. Unset items
// map to nil and evidence is deliberately excluded: photos stay on the
// device in this version.
func (e *Entity) Mapping() map[domain.ItemKey]*domain.Verdict {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(map[domain.ItemKey]*domain.Verdict, len(e.items))
	for _, item := range e.items {
		if item.Value == "" {
			out[item.Key] = nil
			continue
		}
		v := item.Value
		out[item.Key] = &v
	}
	return out
}

// indexOf finds the position of key in the item set, or -1. Callers hold
// e.mu.
func (e *Entity) indexOf(key domain.ItemKey) int {
	for i, item := range e.items {
		if item.Key == key {
			return i
		}
	}
	return -1
}
