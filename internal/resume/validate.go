// Package resume provides resume file validation and PDF text extraction.
package resume

import (
	"bytes"
	"fmt"
)

// MaxFileSize is the largest resume file accepted, 10 MiB.
const MaxFileSize = 10 << 20

// pdfMagic is the header every PDF file starts with.
var pdfMagic = []byte("%PDF-")

// FileError reports a rejected resume file.
type FileError struct {
	Name    string
	Message string
}

func (e *FileError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("invalid resume file %s: %s", e.Name, e.Message)
	}
	return fmt.Sprintf("invalid resume file: %s", e.Message)
}

// IsPDF reports whether the data starts with the PDF header.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}

// ValidFileSize reports whether size is positive and within the limit.
func ValidFileSize(size int64, maxBytes int64) bool {
	return size > 0 && size <= maxBytes
}

// ValidateFile checks that data is an acceptable resume upload.
func ValidateFile(name string, data []byte) error {
	if !ValidFileSize(int64(len(data)), MaxFileSize) {
		return &FileError{Name: name, Message: fmt.Sprintf("file must be between 1 byte and %d bytes", int64(MaxFileSize))}
	}
	if !IsPDF(data) {
		return &FileError{Name: name, Message: "file is not a PDF"}
	}
	return nil
}
