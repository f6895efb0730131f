package document

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// TokenSplitter windows text by encoder tokens instead of words. It sizes
// chunks the way the embedding model counts them, at the cost of an
// encode/decode round trip per chunk.
type TokenSplitter struct {
	TokensPerChunk int
	Overlap        int
	encoding       *tiktoken.Tiktoken
}

// cl100kBase is the encoding shared by the ada-002 and text-embedding-3
// model families.
const cl100kBase = "cl100k_base"

// NewTokenSplitter validates the window configuration and loads the
// cl100k_base encoding.
func NewTokenSplitter(tokensPerChunk, overlap int) (*TokenSplitter, error) {
	if tokensPerChunk <= 0 {
		return nil, errInvalidChunkConfig("tokens per chunk must be positive", tokensPerChunk, overlap)
	}
	if overlap < 0 {
		return nil, errInvalidChunkConfig("chunk overlap must be non-negative", tokensPerChunk, overlap)
	}
	if overlap >= tokensPerChunk {
		return nil, errInvalidChunkConfig("chunk overlap must be less than tokens per chunk", tokensPerChunk, overlap)
	}

	encoding, err := tiktoken.GetEncoding(cl100kBase)
	if err != nil {
		return nil, &SplitterError{
			Op:      opNewSplitter,
			Message: fmt.Sprintf("failed to load %s encoding", cl100kBase),
			Err:     err,
		}
	}

	return &TokenSplitter{
		TokensPerChunk: tokensPerChunk,
		Overlap:        overlap,
		encoding:       encoding,
	}, nil
}

func (ts *TokenSplitter) SplitText(text string) ([]string, error) {
	if text == "" {
		return nil, nil
	}

	tokens := ts.encoding.Encode(text, nil, nil)
	if len(tokens) == 0 {
		return nil, nil
	}

	step := ts.TokensPerChunk - ts.Overlap
	var chunks []string

	for start := 0; start < len(tokens); start += step {
		end := start + ts.TokensPerChunk
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, ts.encoding.Decode(tokens[start:end]))
	}

	return chunks, nil
}
