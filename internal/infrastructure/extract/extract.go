// Package extract turns PDF bytes into the plain text the menu parser reads.
package extract

import (
	"fmt"
	"strings"

	"MenuScanner/internal/config"
	"MenuScanner/internal/ports"
)

// New selects an extractor by engine name.
func New(engine, binary string) (ports.TextExtractor, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", config.EnginePDFToText:
		return NewPDFToText(binary), nil
	case config.EngineNative:
		return Native{}, nil
	default:
		return nil, fmt.Errorf("unknown extract engine %q", engine)
	}
}
