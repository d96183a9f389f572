package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MimePDF is the only content type accepted for uploaded resumes.
const MimePDF = "application/pdf"

// ErrNoText indicates the document parsed but yielded no extractable text.
// Callers treat this as fatal: nothing downstream is meaningful without
// source text.
var ErrNoText = errors.New("no extractable text in document")

// Text pulls plain text from an in-memory PDF payload. A page with no
// extractable text contributes an empty string rather than an error; the
// whole document failing to parse, or producing only whitespace, is an error.
func Text(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrNoText
	}

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}
