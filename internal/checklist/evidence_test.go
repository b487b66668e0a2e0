package checklist

import (
	"testing"

	"fleet-inspector/internal/domain"
)

// TestAttachReplacesAndReleasesPriorReference verifies the at-most-one
// invariant: the second attach wins and the first is released.
func TestAttachReplacesAndReleasesPriorReference(t *testing.T) {
	var released []domain.EvidenceRef
	binder := NewBinder(func(ref domain.EvidenceRef) {
		released = append(released, ref)
	})

	entity, err := NewEntity(domain.EntityKindTruck, "TK-1")
	if err != nil {
		t.Fatalf("NewEntity: %v", err)
	}

	first, err := binder.Attach(entity, "engine", "photo-1.jpg")
	if err != nil {
		t.Fatalf("first attach: %v", err)
	}
	second, err := binder.Attach(entity, "engine", "photo-2.jpg")
	if err != nil {
		t.Fatalf("second attach: %v", err)
	}

	if len(released) != 1 || released[0].ID != first.ID {
		t.Fatalf("released = %+v, want exactly the first ref", released)
	}

	for _, item := range entity.Items() {
		if item.Key != "engine" {
			continue
		}
		if item.Evidence == nil || item.Evidence.ID != second.ID {
			t.Fatalf("engine evidence = %+v, want second ref", item.Evidence)
		}
	}
}

// TestAttachUnknownKeyFails checks the precondition on item identity.
func TestAttachUnknownKeyFails(t *testing.T) {
	binder := NewBinder(nil)
	entity, err := NewEntity(domain.EntityKindTrailer, "TR-1")
	if err != nil {
		t.Fatalf("NewEntity: %v", err)
	}

	if _, err := binder.Attach(entity, "engine", "photo.jpg"); err == nil {
		t.Fatal("expected error for key outside the trailer checklist")
	}
}

// TestClearReleasesReference verifies clear and the no-op on empty items.
func TestClearReleasesReference(t *testing.T) {
	var released []domain.EvidenceRef
	binder := NewBinder(func(ref domain.EvidenceRef) {
		released = append(released, ref)
	})

	entity, err := NewEntity(domain.EntityKindTrailer, "TR-1")
	if err != nil {
		t.Fatalf("NewEntity: %v", err)
	}

	ref, err := binder.Attach(entity, "brakes", "photo.jpg")
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := binder.Clear(entity, "brakes"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(released) != 1 || released[0].ID != ref.ID {
		t.Fatalf("released = %+v, want the attached ref", released)
	}

	// Clearing again is a no-op, nothing more to release.
	if err := binder.Clear(entity, "brakes"); err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if len(released) != 1 {
		t.Fatalf("released %d refs, want 1", len(released))
	}
}

// TestReleaseAllDropsEveryAttachment covers trailer removal cleanup.
func TestReleaseAllDropsEveryAttachment(t *testing.T) {
	var released int
	binder := NewBinder(func(domain.EvidenceRef) { released++ })

	entity, err := NewEntity(domain.EntityKindTrailer, "TR-1")
	if err != nil {
		t.Fatalf("NewEntity: %v", err)
	}
	if _, err := binder.Attach(entity, "brakes", "a.jpg"); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if _, err := binder.Attach(entity, "doors", "b.jpg"); err != nil {
		t.Fatalf("attach: %v", err)
	}

	binder.ReleaseAll(entity)
	if released != 2 {
		t.Fatalf("released = %d, want 2", released)
	}
	for _, item := range entity.Items() {
		if item.Evidence != nil {
			t.Fatalf("item %s still holds evidence", item.Key)
		}
	}
}
