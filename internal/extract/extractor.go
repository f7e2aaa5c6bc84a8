package extract

import (
	"context"
	"fmt"
	"image"
	"io"
	"runtime"
	"sync"
	"time"

	"sudoku-reader/internal/alignment"
	"sudoku-reader/internal/board"
	imgutil "sudoku-reader/internal/image"
	"sudoku-reader/pkg/geometry"

	"github.com/sirupsen/logrus"
)

// side-length variation above which the photo is reported as heavily skewed
const maxSideSpread = 0.25

// Options configures an Extractor.
type Options struct {
	Workers        int     // per-cell worker goroutines
	ExpandRatio    float64 // cell overlap toward neighbours
	ThickLine      int     // dilation used to find the grid outline
	ThinLine       int     // dilation used for the rectified grid
	BlurKernel     int
	ThresholdBlock int
	ThresholdC     float32
}

// DefaultOptions returns the options used for phone photos of printed grids.
func DefaultOptions() Options {
	norm := alignment.DefaultNormalizeParams(1)
	return Options{
		Workers:        runtime.NumCPU(),
		ExpandRatio:    board.DefaultExpandRatio,
		ThickLine:      3,
		ThinLine:       1,
		BlurKernel:     norm.BlurKernel,
		ThresholdBlock: norm.ThresholdBlock,
		ThresholdC:     norm.ThresholdC,
	}
}

// Extractor runs the grid extraction pipeline. It holds no per-board state
// and may be shared between goroutines.
type Extractor struct {
	opts Options
	log  logrus.FieldLogger
}

// New creates an Extractor. A nil logger discards all output.
func New(opts Options, log logrus.FieldLogger) *Extractor {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Extractor{opts: opts, log: log}
}

func (e *Extractor) normalizeParams(thickness int) alignment.NormalizeParams {
	return alignment.NormalizeParams{
		BlurKernel:     e.opts.BlurKernel,
		ThresholdBlock: e.opts.ThresholdBlock,
		ThresholdC:     e.opts.ThresholdC,
		LineThickness:  thickness,
	}
}

// Extraction holds the intermediate products of one pipeline run.
type Extraction struct {
	Corners   geometry.Quadrangle // grid corners in photo coordinates
	Rectified *image.Gray         // square, axis-aligned grid lines
	Results   []Result            // 81 cells in row-major order
}

// ExtractCells locates the grid in a grayscale photo, rectifies it and
// returns exactly 81 results in row-major order. Either every cell is
// produced or an error is returned.
func (e *Extractor) ExtractCells(ctx context.Context, photo *image.Gray, dim image.Point) ([]Result, error) {
	x, err := e.Extract(ctx, photo, dim)
	if err != nil {
		return nil, err
	}
	return x.Results, nil
}

// Extract is ExtractCells but also returns the located corners and the
// rectified grid.
func (e *Extractor) Extract(ctx context.Context, photo *image.Gray, dim image.Point) (*Extraction, error) {
	start := time.Now()

	src, err := imgutil.MatFromGray(photo)
	if err != nil {
		return nil, fmt.Errorf("convert photo: %w", err)
	}
	defer src.Close()

	thick := alignment.Normalize(src, e.normalizeParams(e.opts.ThickLine))
	defer thick.Close()

	corners, err := alignment.LocateCorners(thick)
	if err != nil {
		return nil, fmt.Errorf("locate corners: %w", err)
	}
	spread := alignment.SideSpread(corners)
	e.log.WithFields(logrus.Fields{
		"stage":   "corners",
		"corners": corners.String(),
		"area":    geometry.Area(corners.Polygon()),
		"spread":  spread,
	}).Debug("grid corners located")
	if spread > maxSideSpread {
		e.log.WithField("spread", spread).Warn("strong perspective; cells near the far edge may be blurred")
	}
	if !geometry.IsConvex(corners.Polygon()) {
		e.log.WithField("corners", corners.String()).Warn("grid outline is not convex; largest contour may not be the grid")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	thin := alignment.Normalize(src, e.normalizeParams(e.opts.ThinLine))
	defer thin.Close()

	rectified, err := alignment.Rectify(thin, corners)
	if err != nil {
		return nil, fmt.Errorf("rectify grid: %w", err)
	}
	e.log.WithFields(logrus.Fields{
		"stage": "rectify",
		"side":  rectified.Bounds().Dx(),
	}).Debug("grid rectified")

	results, err := e.ProcessGrid(ctx, rectified, dim)
	if err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"stage":    "done",
		"symbols":  countSymbols(results),
		"duration": time.Since(start),
	}).Debug("board extracted")
	return &Extraction{Corners: corners, Rectified: rectified, Results: results}, nil
}

// ProcessGrid slices an already rectified grid and processes the 81 cells on
// a worker pool. Results are stored by cell index, so the order does not
// depend on which worker finishes first.
func (e *Extractor) ProcessGrid(ctx context.Context, rectified *image.Gray, dim image.Point) ([]Result, error) {
	cells, err := board.Slice(rectified, e.opts.ExpandRatio)
	if err != nil {
		return nil, fmt.Errorf("slice grid: %w", err)
	}
	e.log.WithFields(logrus.Fields{
		"stage": "slice",
		"cells": len(cells),
	}).Debug("grid sliced")

	results := make([]Result, len(cells))
	jobs := make(chan int)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	numWorkers := min(e.opts.Workers, len(cells))
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				c := cells[i]
				res, err := ProcessCell(c.Image, dim)
				if err != nil {
					fail(fmt.Errorf("cell %d,%d: %w", c.Row, c.Col, err))
					continue
				}
				res.Index, res.Row, res.Col = c.Index(), c.Row, c.Col
				results[i] = res
			}
		}()
	}

	for i := range cells {
		if err := ctx.Err(); err != nil {
			fail(err)
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

func countSymbols(results []Result) int {
	n := 0
	for _, r := range results {
		if r.IsSymbol {
			n++
		}
	}
	return n
}
