package document

import (
	"strings"
	"testing"
)

func TestNewTokenSplitter(t *testing.T) {
	tests := []struct {
		name           string
		tokensPerChunk int
		overlap        int
		wantErr        bool
	}{
		{name: "valid parameters", tokensPerChunk: 100, overlap: 20},
		{name: "zero tokens per chunk", tokensPerChunk: 0, overlap: 20, wantErr: true},
		{name: "negative overlap", tokensPerChunk: 100, overlap: -1, wantErr: true},
		{name: "overlap not below chunk size", tokensPerChunk: 100, overlap: 100, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splitter, err := NewTokenSplitter(tt.tokensPerChunk, tt.overlap)
			if tt.wantErr {
				if err == nil {
					t.Fatal("NewTokenSplitter() error = nil, want error")
				}
				if !IsInvalidChunkConfig(err) {
					t.Errorf("NewTokenSplitter() error = %v, want chunk config error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewTokenSplitter() unexpected error = %v", err)
			}
			if splitter == nil {
				t.Fatal("NewTokenSplitter() returned nil splitter")
			}
		})
	}
}

func TestTokenSplitter_SplitText(t *testing.T) {
	splitter, err := NewTokenSplitter(50, 10)
	if err != nil {
		t.Fatalf("NewTokenSplitter() unexpected error = %v", err)
	}

	empty, err := splitter.SplitText("")
	if err != nil {
		t.Fatalf("SplitText() unexpected error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("SplitText() on empty text = %d chunks, want 0", len(empty))
	}

	short, err := splitter.SplitText("This is a short test sentence.")
	if err != nil {
		t.Fatalf("SplitText() unexpected error = %v", err)
	}
	if len(short) != 1 {
		t.Errorf("SplitText() on short text = %d chunks, want 1", len(short))
	}

	long, err := splitter.SplitText(strings.Repeat("This is a test sentence. ", 100))
	if err != nil {
		t.Fatalf("SplitText() unexpected error = %v", err)
	}
	if len(long) < 2 {
		t.Errorf("SplitText() on long text = %d chunks, want several", len(long))
	}
}
