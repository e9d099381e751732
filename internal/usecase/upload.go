package usecase

import (
	"bytes"
	"io"

	"github.com/harisha-viswa/hiring-system/pkg/apperror"
	"github.com/harisha-viswa/hiring-system/pkg/blob"
)

// pdfUpload sniffs the head of an upload, rejects anything that is not a
// real PDF, and returns a reader that replays the sniffed bytes. Validation
// happens before the store is touched so a rejected upload leaves nothing
// behind.
func pdfUpload(fileName string, r io.Reader) (io.Reader, error) {
	if r == nil {
		return nil, apperror.Validation("A PDF file is required")
	}

	head := make([]byte, 8)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, apperror.Internal(err)
	}
	if verr := blob.ValidatePDF(fileName, head[:n]); verr != nil {
		return nil, apperror.Validation(verr.Error())
	}
	return io.MultiReader(bytes.NewReader(head[:n]), r), nil
}
