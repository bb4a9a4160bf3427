package golang

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"github.com/Telenav/smithy-sub007/compiler/gen"
)

// Writer renders plans to files in parallel.
type Writer struct {
	renderer *Renderer
	outDir   string
	workers  int

	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks generation performance.
type WriterMetrics struct {
	FilesGenerated int
	TotalBytes     int64
	RenderTime     int64 // nanoseconds
	FormatTime     int64 // nanoseconds
	WriteTime      int64 // nanoseconds
}

// NewWriter creates a writer into outDir.
func NewWriter(r *Renderer, outDir string) *Writer {
	return &Writer{
		renderer: r,
		outDir:   outDir,
		workers:  runtime.GOMAXPROCS(0),
		metrics:  &WriterMetrics{},
	}
}

// WithWorkers sets the number of parallel workers.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// Metrics returns the generation metrics.
func (w *Writer) Metrics() *WriterMetrics {
	return w.metrics
}

// fileTask is a single file to render.
type fileTask struct {
	name   string // output file path (relative to outDir)
	render func() (*jen.File, error)
}

// WriteAll writes one file per plan plus the shared helpers file.
func (w *Writer) WriteAll(ctx context.Context, plans []*gen.Plan) error {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	files := []fileTask{{
		name:   HelpersFile,
		render: func() (*jen.File, error) { return w.renderer.Helpers(), nil },
	}}
	for _, p := range plans {
		// Mixins only contribute members to the structures using them.
		if s, ok := w.renderer.graph.Shape(p.Shape); ok && s.Mixin {
			continue
		}
		files = append(files, fileTask{
			name:   FileName(p.Shape.Name),
			render: func() (*jen.File, error) { return w.renderer.Render(p) },
		})
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for _, f := range files {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.generateFile(f)
			}
		})
	}
	return eg.Wait()
}

func (w *Writer) generateFile(f fileTask) error {
	// 1. Render
	start := time.Now()
	file, err := f.render()
	if err != nil {
		return fmt.Errorf("render %s: %w", f.name, err)
	}
	var buf bytes.Buffer
	if err := file.Render(&buf); err != nil {
		return fmt.Errorf("render %s: %w", f.name, err)
	}
	rendered := time.Since(start)

	// 2. Format using goimports
	start = time.Now()
	fullPath := filepath.Join(w.outDir, f.name)
	formatted, err := imports.Process(fullPath, buf.Bytes(), nil)
	if err != nil {
		// Write unformatted file for debugging (errors intentionally ignored as we're already in error state)
		debugPath := fullPath + ".error"
		_ = os.WriteFile(debugPath, buf.Bytes(), 0o644)
		return fmt.Errorf("format %s: %w (unformatted written to %s)", f.name, err, debugPath)
	}
	formattedIn := time.Since(start)

	// 3. Write file
	start = time.Now()
	if err := os.WriteFile(fullPath, formatted, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.name, err)
	}

	w.mu.Lock()
	w.metrics.FilesGenerated++
	w.metrics.TotalBytes += int64(len(formatted))
	w.metrics.RenderTime += rendered.Nanoseconds()
	w.metrics.FormatTime += formattedIn.Nanoseconds()
	w.metrics.WriteTime += time.Since(start).Nanoseconds()
	w.mu.Unlock()
	return nil
}
