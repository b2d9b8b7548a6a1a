package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"

	"MenuScanner/internal/ports"
)

// Native decodes the PDF in-process. Its output loses column indentation, so
// lunch and dinner usually come out through the first-line-per-day fallback.
type Native struct{}

var _ ports.TextExtractor = Native{}

// ExtractText returns the plain text of every page in order. The decoder
// panics on some malformed streams; that is reported as an error.
func (Native) ExtractText(ctx context.Context, data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", errors.New("native pdf: empty document")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("native pdf: decode: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("native pdf: open: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("native pdf: text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("native pdf: read: %w", err)
	}
	return buf.String(), nil
}
