package document

import "strings"

// WordSplitter partitions text into overlapping fixed-size word windows.
// Each window holds ChunkSize whitespace-delimited words joined by single
// spaces, and consecutive windows share Overlap words. Splitting is pure
// and deterministic: the same text and configuration always produce the
// same chunks.
type WordSplitter struct {
	ChunkSize int
	Overlap   int
}

// NewWordSplitter validates the window configuration. Overlap must be
// strictly less than ChunkSize or the advance step would be non-positive.
func NewWordSplitter(chunkSize, overlap int) (*WordSplitter, error) {
	if chunkSize <= 0 {
		return nil, errInvalidChunkConfig("chunk size must be positive", chunkSize, overlap)
	}
	if overlap < 0 {
		return nil, errInvalidChunkConfig("chunk overlap must be non-negative", chunkSize, overlap)
	}
	if overlap >= chunkSize {
		return nil, errInvalidChunkConfig("chunk overlap must be less than chunk size", chunkSize, overlap)
	}

	return &WordSplitter{
		ChunkSize: chunkSize,
		Overlap:   overlap,
	}, nil
}

func (ws *WordSplitter) SplitText(text string) ([]string, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, nil
	}

	step := ws.ChunkSize - ws.Overlap
	var chunks []string

	for start := 0; start < len(words); start += step {
		end := start + ws.ChunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}

	return chunks, nil
}
