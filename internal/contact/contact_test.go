package contact

import (
	"context"
	"testing"
)

func TestStoreAddAssignsIDAndTimestamp(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	ctx := context.Background()

	added, err := s.Add(ctx, Submission{
		Name:    "Jamie",
		Email:   "jamie@example.com",
		Message: "Do you run weekend courses?",
		Subject: "Courses",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if added.ID == "" {
		t.Error("expected server-assigned ID")
	}
	if added.Timestamp.IsZero() {
		t.Error("expected server-assigned timestamp")
	}
}

func TestStoreAppendsInOrder(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		if _, err := s.Add(ctx, Submission{Name: name, Email: "x@y.z", Message: "hi"}); err != nil {
			t.Fatalf("Add %s: %v", name, err)
		}
	}

	subs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(subs) != 3 {
		t.Fatalf("expected 3 submissions, got %d", len(subs))
	}
	for i, want := range []string{"first", "second", "third"} {
		if subs[i].Name != want {
			t.Errorf("submission %d: got %q, want %q", i, subs[i].Name, want)
		}
	}
}

func TestStoreListEmpty(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	subs, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(subs) != 0 {
		t.Errorf("expected no submissions, got %d", len(subs))
	}
}
