package document

// Chunk is a contiguous, possibly overlapping word-window substring of
// extracted document text. Index is the chunk's document-order position;
// chunks are immutable once produced.
type Chunk struct {
	Index   int    `json:"index"`
	Content string `json:"content"`
}
