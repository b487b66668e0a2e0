package checklist

import (
	"fmt"

	"github.com/google/uuid"

	"fleet-inspector/internal/domain"
)

// Binder manages photo evidence attachments for checklist items. Replacing
// or clearing an attachment releases the prior reference through the
// configured hook so the host environment can reclaim the image resource.
type Binder struct {
	release func(domain.EvidenceRef)
	newID   func() string
}

// NewBinder creates a binder. The release hook may be nil when the host has
// no reclamation step.
func NewBinder(release func(domain.EvidenceRef)) *Binder {
	return &Binder{
		release: release,
		newID:   uuid.NewString,
	}
}

// Attach binds a captured image source to one checklist item and returns
// the new reference. Any previously attached reference for that item is
// released first; at most one reference exists per item.
func (b *Binder) Attach(entity *Entity, key domain.ItemKey, source string) (domain.EvidenceRef, error) {
	entity.mu.Lock()
	defer entity.mu.Unlock()

	idx := entity.indexOf(key)
	if idx < 0 {
		return domain.EvidenceRef{}, fmt.Errorf("item %s is not in the %s checklist", key, entity.Kind)
	}

	ref := domain.EvidenceRef{
		ID:     b.newID(),
		Source: source,
	}

	if prior := entity.items[idx].Evidence; prior != nil {
		b.releaseRef(*prior)
	}
	entity.items[idx].Evidence = &ref
	return ref, nil
}

// Clear removes the evidence attached to one checklist item, releasing the
// reference. Clearing an item without evidence is a no-op.
func (b *Binder) Clear(entity *Entity, key domain.ItemKey) error {
	entity.mu.Lock()
	defer entity.mu.Unlock()

	idx := entity.indexOf(key)
	if idx < 0 {
		return fmt.Errorf("item %s is not in the %s checklist", key, entity.Kind)
	}

	if prior := entity.items[idx].Evidence; prior != nil {
		b.releaseRef(*prior)
		entity.items[idx].Evidence = nil
	}
	return nil
}

// ReleaseAll releases every attachment held by the entity. Used when a
// trailer is removed from the inspection and its evidence is discarded.
func (b *Binder) ReleaseAll(entity *Entity) {
	entity.mu.Lock()
	defer entity.mu.Unlock()

	for i := range entity.items {
		if prior := entity.items[i].Evidence; prior != nil {
			b.releaseRef(*prior)
			entity.items[i].Evidence = nil
		}
	}
}

// releaseRef forwards to the release hook when configured.
func (b *Binder) releaseRef(ref domain.EvidenceRef) {
	if b.release != nil {
		b.release(ref)
	}
}
