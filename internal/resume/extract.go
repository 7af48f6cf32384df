package resume

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// Progress reports how far a page-by-page extraction has advanced.
type Progress struct {
	CurrentPage     int     `json:"currentPage"`
	TotalPages      int     `json:"totalPages"`
	PercentComplete float64 `json:"percentComplete"`
}

// Extractor walks a PDF's pages as a finite, non-restartable sequence.
// Callers consume pages with Next until it reports done.
type Extractor struct {
	reader *pdf.Reader
	page   int
	total  int
}

// NewExtractor opens a PDF held in memory for page-by-page extraction.
func NewExtractor(data []byte) (*Extractor, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return &Extractor{
		reader: reader,
		total:  reader.NumPage(),
	}, nil
}

// TotalPages returns the page count of the document.
func (e *Extractor) TotalPages() int {
	return e.total
}

// Next extracts the next page's text. done is true once the sequence is
// exhausted. Pages that cannot be read yield empty text rather than failing
// the whole document.
func (e *Extractor) Next() (text string, progress Progress, done bool) {
	if e.page >= e.total {
		return "", Progress{CurrentPage: e.total, TotalPages: e.total, PercentComplete: 100}, true
	}

	e.page++
	progress = Progress{
		CurrentPage:     e.page,
		TotalPages:      e.total,
		PercentComplete: float64(e.page) / float64(e.total) * 100,
	}

	page := e.reader.Page(e.page)
	if page.V.IsNull() {
		return "", progress, false
	}
	content, err := page.GetPlainText(nil)
	if err != nil {
		return "", progress, false
	}
	return content, progress, false
}

// ExtractText extracts and normalizes the full plain text of a PDF,
// reporting per-page progress to onProgress when set.
func ExtractText(data []byte, onProgress func(Progress)) (string, error) {
	extractor, err := NewExtractor(data)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for {
		text, progress, done := extractor.Next()
		if done {
			break
		}
		sb.WriteString(text)
		sb.WriteString("\n")
		if onProgress != nil {
			onProgress(progress)
		}
	}

	result := normalizeWhitespace(sb.String())
	if result == "" {
		return "", fmt.Errorf("no text could be extracted from PDF")
	}
	return result, nil
}

var (
	spaceRun   = regexp.MustCompile(`[ \t\r\f\v]+`)
	newlineRun = regexp.MustCompile(`\n+`)
)

// normalizeWhitespace collapses whitespace runs while preserving line breaks.
func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = spaceRun.ReplaceAllString(s, " ")
	s = newlineRun.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
