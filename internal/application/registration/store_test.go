// internal/application/registration/store_test.go
package registration

import (
	"errors"
	"testing"
)

func TestStoreHandsOutSnapshots(t *testing.T) {
	store := NewDraftStore()
	d := store.Create()

	t.Run("create returns a copy", func(t *testing.T) {
		d.Name = "local only"
		d.Rows[0].Name = "local row"

		cur, err := store.Get(d.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if cur.Name != "" || cur.Rows[0].Name != "" {
			t.Fatalf("snapshot mutation leaked into store: %+v", cur)
		}
	})

	t.Run("get snapshot is detached from later updates", func(t *testing.T) {
		snap, err := store.Get(d.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		err = store.Update(d.ID, func(cur *Draft) error {
			cur.Name = "updated"
			cur.Rows[0].Name = "1kg"
			cur.Errors = map[string]string{"name": "x"}
			return nil
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if snap.Name != "" || snap.Rows[0].Name != "" || len(snap.Errors) != 0 {
			t.Fatalf("snapshot changed after update: %+v", snap)
		}
	})

	t.Run("update reaches the stored draft", func(t *testing.T) {
		cur, err := store.Get(d.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if cur.Name != "updated" || cur.Rows[0].Name != "1kg" {
			t.Fatalf("update lost: %+v", cur)
		}
	})
}

func TestStoreUnknownDraft(t *testing.T) {
	store := NewDraftStore()
	if _, err := store.Get("nope"); !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("get err = %v", err)
	}
	if err := store.Update("nope", func(*Draft) error { return nil }); !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("update err = %v", err)
	}
	store.Discard("nope") // no-op
}
