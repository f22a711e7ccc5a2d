package world

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/solarlune/resolv"
	"golang.org/x/sync/errgroup"
)

// Detector finds every overlapping pair in a batch of colliders.
// The result is sorted and free of duplicates.
type Detector interface {
	Detect(ctx context.Context, objects []Object) ([]Pair, error)
}

// Bounds is the rectangle a detector covers, in world coordinates
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width of the rectangle
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height of the rectangle
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// SpaceDetector runs the broad phase inside a resolv space rebuilt from the
// batch on every call and decides candidates with Overlaps
type SpaceDetector struct {
	bounds   Bounds
	cellSize int
}

// NewSpaceDetector covers bounds with resolv cells of the given size
func NewSpaceDetector(bounds Bounds, cellSize float64) *SpaceDetector {
	return &SpaceDetector{bounds: bounds, cellSize: max(1, int(cellSize))}
}

// toSpace converts centered y-up world coordinates to the space's top-left y-down frame
func (d *SpaceDetector) toSpace(x, y float64) (float64, float64) {
	return x - d.bounds.MinX, d.bounds.MaxY - y
}

func (d *SpaceDetector) Detect(ctx context.Context, objects []Object) ([]Pair, error) {
	space := resolv.NewSpace(int(d.bounds.Width()), int(d.bounds.Height()), d.cellSize, d.cellSize)

	shapes := make([]resolv.IShape, len(objects))
	owners := make(map[resolv.IShape]int, len(objects))
	for i, o := range objects {
		sx, sy := d.toSpace(o.X, o.Y)
		var sh resolv.IShape
		if o.Shape == ShapeCircle {
			sh = resolv.NewCircle(sx, sy, o.Radius)
		} else {
			sh = resolv.NewRectangleFromTopLeft(sx-o.W/2, sy-o.H/2, o.W, o.H)
		}
		space.Add(sh)
		shapes[i] = sh
		owners[sh] = i
	}

	seen := make(map[Pair]struct{})
	var pairs []Pair
	for i, sh := range shapes {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("space detect: %w", err)
		}
		// Overlaps decides; a shape fully inside another is a hit
		sh.SelectTouchingCells(0).FilterShapes().Not(sh).ForEach(func(other resolv.IShape) bool {
			j, ok := owners[other]
			if !ok || j == i || !Overlaps(objects[i], objects[j]) {
				return true
			}
			p := MakePair(objects[i].Handle, objects[j].Handle)
			if _, dup := seen[p]; !dup {
				seen[p] = struct{}{}
				pairs = append(pairs, p)
			}
			return true
		})
	}

	slices.SortFunc(pairs, comparePairs)
	return pairs, nil
}

// GridDetector files colliders into a uniform grid and runs the narrow phase
// for the occupied cells on several goroutines. Results from all workers are
// merged into one sorted batch before they are returned.
type GridDetector struct {
	mu      sync.Mutex
	grid    *Grid
	workers int
}

// NewGridDetector covers bounds with square cells and fans out over workers goroutines
func NewGridDetector(bounds Bounds, cellSize float64, workers int) *GridDetector {
	return &GridDetector{
		grid:    NewGrid(bounds.MinX, bounds.MinY, bounds.Width(), bounds.Height(), cellSize),
		workers: max(1, workers),
	}
}

func (d *GridDetector) Detect(ctx context.Context, objects []Object) ([]Pair, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.grid.Clear()
	for i, o := range objects {
		minX, minY, maxX, maxY := o.Bounds()
		d.grid.Insert(i, minX, minY, maxX, maxY)
	}
	cells := d.grid.Occupied()

	results := make([][]Pair, d.workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < d.workers; w++ {
		g.Go(func() error {
			var local []Pair
			for c := w; c < len(cells); c += d.workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				items := cells[c].Active()
				for x := 0; x < len(items); x++ {
					for y := x + 1; y < len(items); y++ {
						a, b := objects[items[x]], objects[items[y]]
						if a.Handle != b.Handle && Overlaps(a, b) {
							local = append(local, MakePair(a.Handle, b.Handle))
						}
					}
				}
			}
			results[w] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("grid detect: %w", err)
	}

	var pairs []Pair
	for _, r := range results {
		pairs = append(pairs, r...)
	}
	slices.SortFunc(pairs, comparePairs)
	return slices.Compact(pairs), nil
}
