package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"MenuScanner/internal/ports"
)

var commandContext = exec.CommandContext

// PDFToText shells out to poppler's pdftotext in layout mode. Layout mode keeps
// the leading indentation of table cells, which the day-block splitter relies on.
type PDFToText struct {
	binary string
}

var _ ports.TextExtractor = (*PDFToText)(nil)

// NewPDFToText builds an extractor for the binary (default "pdftotext").
func NewPDFToText(binary string) *PDFToText {
	if strings.TrimSpace(binary) == "" {
		binary = "pdftotext"
	}
	return &PDFToText{binary: binary}
}

// ExtractText pipes the document through stdin and returns stdout.
func (p *PDFToText) ExtractText(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("pdftotext: empty document")
	}

	args := []string{"-layout", "-enc", "UTF-8", "-", "-"}
	cmd := commandContext(ctx, p.binary, args...) //nolint:gosec
	cmd.Stdin = bytes.NewReader(data)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("pdftotext: %w: %s", err, msg)
		}
		return "", fmt.Errorf("pdftotext: %w", err)
	}

	return stdout.String(), nil
}
