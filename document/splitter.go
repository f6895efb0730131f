package document

// Splitter interface defines methods for splitting text into chunks
type Splitter interface {
	SplitText(text string) ([]string, error)
}

// CreateChunks splits text with the given splitter and wraps the pieces
// as ordered Chunk values. Ordering is insertion order, which is document
// order for every splitter in this package.
func CreateChunks(splitter Splitter, text string) ([]Chunk, error) {
	pieces, err := splitter.SplitText(text)
	if err != nil {
		return nil, err
	}

	chunks := make([]Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = Chunk{
			Index:   i,
			Content: piece,
		}
	}
	return chunks, nil
}
