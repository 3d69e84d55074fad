// Package distortion renders how far a projection's planar distances drift
// from great-circle distances around a reference point.
package distortion

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"runtime"
	"sync"

	"github.com/pspoerri/airproj/internal/coord"
	"github.com/pspoerri/airproj/internal/encode"
	"github.com/pspoerri/airproj/internal/geodesy"
	"github.com/pspoerri/airproj/internal/projection"
)

// Options controls a render.
type Options struct {
	Reference   geodesy.LatLonAlt
	Extent      float64 // half-width of the rendered square in meters
	Size        int     // output width and height in pixels
	Accuracy    float64 // error (meters) drawn at the green/red boundary
	Concurrency int     // worker goroutines, 0 = NumCPU
	Progress    bool
}

// Result is a rendered distortion map.
type Result struct {
	Type     coord.ProjectionType
	Size     int
	Errors   []float64 // row-major radial error in meters, NaN beyond max range
	MaxError float64
	Image    *image.RGBA
}

// At returns the error of the cell at column x, row y.
func (r *Result) At(x, y int) float64 {
	return r.Errors[y*r.Size+x]
}

// Terrarium returns the error field as a Terrarium-coded image, so values
// (meters) survive lossless encoding.
func (r *Result) Terrarium() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Size, r.Size))
	for y := 0; y < r.Size; y++ {
		for x := 0; x < r.Size; x++ {
			img.SetRGBA(x, y, encode.ElevationToTerrarium(r.At(x, y)))
		}
	}
	return img
}

// Render samples an altitude-preserving projection of the service's current
// type anchored at opts.Reference. Each cell is un-projected and its planar
// distance from the reference compared with the great-circle distance.
func Render(ctx context.Context, svc *projection.Service, opts Options) (*Result, error) {
	if opts.Size <= 0 {
		return nil, fmt.Errorf("size must be positive, got %d", opts.Size)
	}
	if !(opts.Extent > 0) {
		return nil, fmt.Errorf("extent must be positive, got %g", opts.Extent)
	}
	if !(opts.Accuracy > 0) {
		return nil, fmt.Errorf("accuracy must be positive, got %g", opts.Accuracy)
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	proj := svc.CreateProjectionPosition(geodesy.NewLatLonPosition(opts.Reference))
	maxRange := svc.MaxRange()

	res := &Result{
		Type:   proj.Type(),
		Size:   opts.Size,
		Errors: make([]float64, opts.Size*opts.Size),
		Image:  image.NewRGBA(image.Rect(0, 0, opts.Size, opts.Size)),
	}

	var pb *progressBar
	if opts.Progress {
		pb = newProgressBar(proj.Type().String(), int64(opts.Size))
	}

	rows := make(chan int, concurrency*2)
	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for row := range rows {
				renderRow(res, proj, row, opts, maxRange)
				if pb != nil {
					pb.Increment()
				}
			}
		}()
	}

	var err error
feed:
	for row := 0; row < opts.Size; row++ {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case rows <- row:
		}
	}
	close(rows)
	wg.Wait()
	if pb != nil {
		pb.Finish()
	}
	if err != nil {
		return nil, fmt.Errorf("render %v: %w", proj.Type(), err)
	}

	res.MaxError = math.Inf(-1)
	for _, e := range res.Errors {
		if !math.IsNaN(e) && e > res.MaxError {
			res.MaxError = e
		}
	}
	if math.IsInf(res.MaxError, -1) {
		return nil, errors.New("every cell lies beyond the projection's max range")
	}
	return res, nil
}

// renderRow fills one row. Rows never overlap, so workers write without locking.
func renderRow(res *Result, proj coord.Projection, row int, opts Options, maxRange float64) {
	ref := proj.Reference()
	step := 2 * opts.Extent / float64(opts.Size)
	y := opts.Extent - (float64(row)+0.5)*step

	for col := 0; col < opts.Size; col++ {
		x := -opts.Extent + (float64(col)+0.5)*step
		planar := math.Hypot(x, y)

		e := math.NaN()
		if planar < maxRange {
			lla := proj.Inverse(geodesy.Vect3{X: x, Y: y, Z: ref.Alt})
			e = math.Abs(planar - geodesy.DistanceH(ref, lla))
		}
		res.Errors[row*opts.Size+col] = e
		res.Image.SetRGBA(col, row, colorFor(e, opts.Accuracy))
	}
}

// colorFor maps an error to green (exact) through yellow (at accuracy) to
// red (1000x accuracy and beyond). NaN is transparent.
func colorFor(e, accuracy float64) color.RGBA {
	if math.IsNaN(e) {
		return color.RGBA{}
	}
	if e <= accuracy {
		t := e / accuracy
		return color.RGBA{R: uint8(255 * t), G: 200, B: 0, A: 255}
	}
	t := math.Min(math.Log10(e/accuracy)/3, 1)
	return color.RGBA{R: 255, G: uint8(200 * (1 - t)), B: 0, A: 255}
}
