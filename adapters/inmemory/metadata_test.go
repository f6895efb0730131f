package inmemory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Abraxas-365/pdfquery/metadata"
)

func seedPDFs(t *testing.T, store *MetadataStore, n int) []string {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		id, err := store.InsertPDF(context.Background(), metadata.PDFRecord{
			Filename:  fmt.Sprintf("doc-%d.pdf", i),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("InsertPDF() error = %v", err)
		}
		ids[i] = id
	}
	return ids
}

func TestMetadataStore_ListPDFsPaging(t *testing.T) {
	store := NewMetadataStore()
	ids := seedPDFs(t, store, 5)

	tests := []struct {
		name      string
		skip      int
		limit     int
		wantCount int
		wantFirst string
	}{
		{name: "first page", skip: 0, limit: 2, wantCount: 2, wantFirst: ids[4]},
		{name: "second page", skip: 2, limit: 2, wantCount: 2, wantFirst: ids[2]},
		{name: "skip past end", skip: 10, limit: 2, wantCount: 0},
		{name: "zero limit selects nothing", skip: 0, limit: 0, wantCount: 0},
		{name: "negative limit selects nothing", skip: 0, limit: -1, wantCount: 0},
		{name: "negative skip reads from start", skip: -3, limit: 2, wantCount: 2, wantFirst: ids[4]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.ListPDFs(context.Background(), tt.skip, tt.limit)
			if err != nil {
				t.Fatalf("ListPDFs() error = %v", err)
			}
			if len(got) != tt.wantCount {
				t.Fatalf("ListPDFs() returned %d records, want %d", len(got), tt.wantCount)
			}
			if tt.wantCount > 0 && got[0].ID != tt.wantFirst {
				t.Errorf("ListPDFs() first ID = %s, want %s", got[0].ID, tt.wantFirst)
			}
		})
	}
}

func TestMetadataStore_ListQueriesPaging(t *testing.T) {
	store := NewMetadataStore()
	ids := seedPDFs(t, store, 1)

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := store.InsertQuery(context.Background(), metadata.QueryRecord{
			PDFID:     ids[0],
			Query:     fmt.Sprintf("q%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("InsertQuery() error = %v", err)
		}
	}

	got, err := store.ListQueries(context.Background(), ids[0], 1, 2)
	if err != nil {
		t.Fatalf("ListQueries() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListQueries() returned %d records, want 2", len(got))
	}
	if got[0].Query != "q1" {
		t.Errorf("ListQueries() first query = %q, want %q (newest first, one skipped)", got[0].Query, "q1")
	}

	none, err := store.ListQueries(context.Background(), ids[0], -1, 0)
	if err != nil {
		t.Fatalf("ListQueries() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("ListQueries() with zero limit returned %d records, want 0", len(none))
	}
}
