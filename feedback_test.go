package gosocial

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestFeedbackStore_AppendsInOrder(t *testing.T) {
	kv := newMapStore()
	f := NewFeedbackStore(KeySlot(kv, FeedbackKey), WithFeedbackClock(stepClock(testStart, time.Minute)))
	fc := FeedbackContext{Theme: "coffee", Language: LangEN, Tone: ToneHype}

	if _, err := f.Submit(5, "great", fc); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	second, err := f.Submit(2, "meh", fc)
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if second.Timestamp != "2024-05-01T10:01:00Z" {
		t.Errorf("Timestamp = %q", second.Timestamp)
	}

	entries, err := f.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Comment != "great" || entries[1].Comment != "meh" {
		t.Errorf("wrong order: %+v", entries)
	}
	if entries[1].Tone != ToneHype || entries[1].Theme != "coffee" {
		t.Errorf("context not stored: %+v", entries[1])
	}
}

func TestFeedbackStore_NoCap(t *testing.T) {
	kv := newMapStore()
	f := NewFeedbackStore(KeySlot(kv, FeedbackKey))
	for i := 0; i < 20; i++ {
		if _, err := f.Submit(i%6, "", FeedbackContext{}); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	var persisted []FeedbackEntry
	if err := json.Unmarshal([]byte(kv.data[FeedbackKey]), &persisted); err != nil {
		t.Fatalf("persisted blob invalid: %v", err)
	}
	if len(persisted) != 20 {
		t.Errorf("persisted %d entries, want 20", len(persisted))
	}
}

func TestFeedbackStore_RatingRange(t *testing.T) {
	f := NewFeedbackStore(KeySlot(newMapStore(), FeedbackKey))

	for _, rating := range []int{-1, 6} {
		_, err := f.Submit(rating, "", FeedbackContext{})
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != "rating" {
			t.Errorf("rating %d: got %v, want ValidationError", rating, err)
		}
	}

	if _, err := f.Submit(0, "", FeedbackContext{}); err != nil {
		t.Errorf("rating 0 should be accepted: %v", err)
	}
}

func TestFeedbackStore_CorruptSlot(t *testing.T) {
	kv := newMapStore()
	kv.data[FeedbackKey] = "garbage"
	f := NewFeedbackStore(KeySlot(kv, FeedbackKey))

	if _, err := f.Submit(3, "ok", FeedbackContext{}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	entries, _ := f.List()
	if len(entries) != 1 {
		t.Errorf("got %d entries, want 1", len(entries))
	}
}

func TestFeedbackStore_WriteError(t *testing.T) {
	kv := newMapStore()
	kv.setErr = errors.New("quota exceeded")
	f := NewFeedbackStore(KeySlot(kv, FeedbackKey))

	_, err := f.Submit(4, "", FeedbackContext{})
	var se *StorageError
	if !errors.As(err, &se) || se.Op != "write" {
		t.Errorf("got %v, want write StorageError", err)
	}
}
