package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"
)

// WriterMetrics tracks generation output.
type WriterMetrics struct {
	mu             sync.Mutex
	FilesGenerated int
	TotalBytes     int64
}

func (m *WriterMetrics) add(n int) {
	m.mu.Lock()
	m.FilesGenerated++
	m.TotalBytes += int64(n)
	m.mu.Unlock()
}

// writeFile renders the Jennifer file and writes it under the output
// directory. With the format feature the output is passed through
// goimports first.
func (g *JenniferGenerator) writeFile(f *jen.File, subdir, filename string) error {
	dir := g.outDir
	if subdir != "" {
		dir = filepath.Join(g.outDir, subdir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	fullPath := filepath.Join(dir, filename)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return fmt.Errorf("render %s: %w", filename, err)
	}
	out := buf.Bytes()
	if g.FeatureEnabled(FeatureFormat.Name) {
		formatted, err := imports.Process(fullPath, out, nil)
		if err != nil {
			// Keep the unformatted output next to the target for inspection.
			debugPath := fullPath + ".error"
			_ = os.WriteFile(debugPath, out, 0o644)
			return fmt.Errorf("format %s: %w (unformatted written to %s)", filename, err, debugPath)
		}
		out = formatted
	}
	if err := os.WriteFile(fullPath, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	g.metrics.add(len(out))
	g.graph.Config.Log().Debug("wrote file", "path", fullPath, "bytes", len(out))
	return nil
}
