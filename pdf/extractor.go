package pdf

import "strings"

// ProcessingInfo carries extraction provenance attached to an answer.
type ProcessingInfo struct {
	TotalPages    int    `json:"total_pages"`
	ReadablePages int    `json:"readable_pages"`
	TextLength    int    `json:"text_length"`
	PartialRead   bool   `json:"partial_read"`
	FallbackUsed  bool   `json:"fallback_used"`
	Filename      string `json:"filename,omitempty"`
}

// Extractor turns validated PDF bytes into plain text plus extraction
// statistics, tolerating per-page failures.
type Extractor struct {
	open openFunc
}

// NewExtractor creates an extractor backed by the production PDF parser.
func NewExtractor() *Extractor {
	return &Extractor{open: openDocument}
}

// Extract iterates pages in order, swallowing per-page failures and
// counting them as unreadable. It fails with EmptyContent when no text at
// all was recovered, and with PartialContent when fewer than half of the
// pages yielded text. On PartialContent the recovered text and info are
// still returned so the caller can decide to keep them (the fallback path
// sets FallbackUsed instead of failing the request).
func (e *Extractor) Extract(content []byte) (string, *ProcessingInfo, error) {
	const op = "Extract"

	doc, err := e.open(op, content)
	if err != nil {
		return "", nil, err
	}

	total := doc.NumPages()
	readable := 0
	var sb strings.Builder

	for n := 1; n <= total; n++ {
		pageText, err := doc.PageText(n)
		if err != nil {
			continue
		}
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		readable++
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	text := sb.String()
	info := &ProcessingInfo{
		TotalPages:    total,
		ReadablePages: readable,
		TextLength:    len(text),
	}

	if strings.TrimSpace(text) == "" {
		return "", info, ErrEmptyContent(op)
	}

	if readable*2 < total {
		info.PartialRead = true
		return text, info, ErrPartialContent(op, readable, total)
	}

	return text, info, nil
}
