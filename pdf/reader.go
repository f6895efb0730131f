package pdf

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// document abstracts the underlying PDF parser so extraction and
// validation logic can be exercised against fakes in tests.
type document interface {
	NumPages() int
	PageText(n int) (string, error)
}

// openFunc opens raw PDF bytes as a parsed document. The production
// implementation maps parser failures onto the PDF error taxonomy.
type openFunc func(op string, content []byte) (document, error)

// openDocument parses the content. The parser panics on some malformed
// inputs instead of returning an error, so those are recovered and
// reported as corruption.
func openDocument(op string, content []byte) (doc document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = ErrCorruptedDocument(op, fmt.Errorf("%v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return nil, ErrPasswordProtected(op)
		}
		return nil, ErrCorruptedDocument(op, err)
	}
	return &parsedDocument{reader: reader}, nil
}

type parsedDocument struct {
	reader *pdf.Reader
}

func (d *parsedDocument) NumPages() int {
	return d.reader.NumPage()
}

// PageText extracts plain text from one page. The parser panics on some
// malformed content streams, so the recover here turns a bad page into a
// per-page error instead of taking down the whole document.
func (d *parsedDocument) PageText(n int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: %v", n, r)
		}
	}()

	page := d.reader.Page(n)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d: missing page object", n)
	}
	return page.GetPlainText(nil)
}
