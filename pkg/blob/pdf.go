package blob

import (
	"bytes"
	"path/filepath"
	"strings"
)

// %PDF magic bytes
var pdfSignature = []byte{0x25, 0x50, 0x44, 0x46}

// ValidatePDF checks that an upload claiming to be a PDF actually is one:
// the extension must be .pdf and the content must start with the PDF magic
// bytes, so a renamed executable cannot be smuggled in as a resume.
func ValidatePDF(fileName string, head []byte) error {
	if ext := strings.ToLower(filepath.Ext(fileName)); ext != ".pdf" {
		return &ValidationError{Reason: "only PDF files are accepted, got " + ext}
	}
	if len(head) < len(pdfSignature) || !bytes.HasPrefix(head, pdfSignature) {
		return &ValidationError{Reason: "file content does not match the PDF format"}
	}
	return nil
}

// ValidationError reports an upload rejected before it reached the store.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "blob: " + e.Reason }
