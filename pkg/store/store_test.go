package store

import (
	"context"
	"os"
	"testing"

	"github.com/matzehuels/wiregraph/pkg/errors"
	"github.com/matzehuels/wiregraph/pkg/graph"
	"github.com/matzehuels/wiregraph/pkg/pins"
	"github.com/matzehuels/wiregraph/pkg/wiring"
)

func sampleDocument() *graph.Document {
	a := wiring.Analyze("component bt HC05\ncomponent uno Arduino\nconnect bt 2 to uno 0\nconnect bt 3 to x 1", pins.Default())
	return graph.FromAnalysis(a)
}

func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	rec := &Record{Hash: "abc", Document: sampleDocument()}
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.ID == "" || rec.CreatedAt.IsZero() {
		t.Fatalf("Save did not fill ID/CreatedAt: %+v", rec)
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Hash != "abc" {
		t.Errorf("Hash = %q, want abc", got.Hash)
	}

	a, err := got.Document.Analysis()
	if err != nil {
		t.Fatalf("Analysis: %v", err)
	}
	want, _ := rec.Document.Analysis()
	if !a.Map.Equal(want.Map) {
		t.Errorf("stored wiring = %v, want %v", a.Map.Map(), want.Map.Map())
	}
	if len(a.Failures) != 1 || a.Failures[0].Code() != errors.ErrCodeUnresolvedReference {
		t.Errorf("stored failures = %v, want one UNRESOLVED_REFERENCE", a.Err())
	}

	if _, err := s.Get(ctx, "does-not-exist"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get(missing) error = %v, want NOT_FOUND", err)
	}
	if err := s.Save(ctx, &Record{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Save(empty) error = %v, want INVALID_INPUT", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	testStore(t, s)
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	rec := NewRecord("h1", sampleDocument())
	if err := s.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}
	rec.Hash = "changed"

	got, _ := s.Get(ctx, rec.ID)
	if got.Hash != "h1" {
		t.Errorf("stored Hash = %q, want h1", got.Hash)
	}
	got.Hash = "again"
	if again, _ := s.Get(ctx, rec.ID); again.Hash != "h1" {
		t.Errorf("Get returned a shared record")
	}
}

func TestNewRecord(t *testing.T) {
	a, b := NewRecord("h", sampleDocument()), NewRecord("h", sampleDocument())
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("IDs = %q, %q; want distinct non-empty", a.ID, b.ID)
	}
}

func TestDatabaseName(t *testing.T) {
	tests := map[string]string{
		"mongodb://localhost:27017":          DefaultDatabase,
		"mongodb://localhost:27017/circuits": "circuits",
		"not a uri":                          DefaultDatabase,
	}
	for uri, want := range tests {
		if got := databaseName(uri); got != want {
			t.Errorf("databaseName(%q) = %q, want %q", uri, got, want)
		}
	}
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("WIREGRAPH_MONGO_URI")
	if uri == "" {
		t.Skip("WIREGRAPH_MONGO_URI not set")
	}
	s, err := NewMongoStore(context.Background(), uri)
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer s.Close()
	testStore(t, s)
}
