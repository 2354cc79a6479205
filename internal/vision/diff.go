package vision

import (
	"image"
	"sort"

	"go-deskpilot/pkg/models"
)

const (
	// diffGrid is the side length of the downscaled comparison grid.
	diffGrid = 64
	// ScoreThreshold is the minimum normalized score that counts as change.
	ScoreThreshold = 0.02
	// cellThreshold marks one grid cell as changed in the binary mask.
	cellThreshold = 0.15
	// maxRegions caps how many change regions are kept, largest first.
	maxRegions = 5
)

// DiffResult is the outcome of comparing the two frames of a pair.
type DiffResult struct {
	// Defined is false when either frame was missing, in which case Score
	// and Regions carry no meaning.
	Defined bool
	// Score is the normalized visual difference in [0,1].
	Score float64
	// Regions are the changed areas, merged and capped, in normalized
	// coordinates.
	Regions []models.ChangeRegion
}

// ChangedArea is the summed normalized area of all regions.
func (d DiffResult) ChangedArea() float64 {
	var total float64
	for _, r := range d.Regions {
		total += r.Box.Area()
	}
	if total > 1 {
		total = 1
	}
	return total
}

// LargestArea is the normalized area of the biggest region.
func (d DiffResult) LargestArea() float64 {
	var largest float64
	for _, r := range d.Regions {
		if a := r.Box.Area(); a > largest {
			largest = a
		}
	}
	return largest
}

// Analyze scores the visual difference between the frames of a pair and,
// when the score is above threshold, localizes it into at most five regions.
// Those regions bound where later recognition passes should focus.
func Analyze(pair models.ScreenshotPair) DiffResult {
	if !pair.Complete() || pair.Before.Img == nil || pair.After.Img == nil {
		return DiffResult{}
	}

	before := downscale(pair.Before.Img)
	after := downscale(pair.After.Img)

	var sum float64
	diff := make([]float64, diffGrid*diffGrid)
	for i := range diff {
		d := before[i] - after[i]
		if d < 0 {
			d = -d
		}
		diff[i] = d
		sum += d
	}
	score := sum / float64(len(diff))

	res := DiffResult{Defined: true, Score: score}
	if score < ScoreThreshold {
		// Below threshold no focus restriction applies.
		return res
	}

	mask := make([]bool, len(diff))
	for i, d := range diff {
		mask[i] = d > cellThreshold
	}
	res.Regions = extractRegions(mask, diff)
	return res
}

// downscale averages the image into a diffGrid×diffGrid grayscale grid with
// values in [0,1].
func downscale(img image.Image) []float64 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	grid := make([]float64, diffGrid*diffGrid)
	counts := make([]int, diffGrid*diffGrid)

	for y := 0; y < h; y++ {
		gy := y * diffGrid / h
		for x := 0; x < w; x++ {
			gx := x * diffGrid / w
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			// Luma weights over 16-bit channels.
			gray := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(bl)) / 65535.0
			idx := gy*diffGrid + gx
			grid[idx] += gray
			counts[idx]++
		}
	}
	for i := range grid {
		if counts[i] > 0 {
			grid[i] /= float64(counts[i])
		}
	}
	return grid
}

type cellBox struct{ x1, y1, x2, y2 int }

// extractRegions groups changed cells into boxes by flood fill over the
// 4-neighborhood, merges overlapping boxes and keeps the top five by area.
func extractRegions(mask []bool, diff []float64) []models.ChangeRegion {
	visited := make([]bool, len(mask))
	var boxes []cellBox

	for start := range mask {
		if !mask[start] || visited[start] {
			continue
		}
		box := cellBox{x1: diffGrid, y1: diffGrid, x2: -1, y2: -1}
		queue := []int{start}
		visited[start] = true
		for len(queue) > 0 {
			idx := queue[0]
			queue = queue[1:]
			x, y := idx%diffGrid, idx/diffGrid
			if x < box.x1 {
				box.x1 = x
			}
			if y < box.y1 {
				box.y1 = y
			}
			if x > box.x2 {
				box.x2 = x
			}
			if y > box.y2 {
				box.y2 = y
			}
			for _, n := range neighbors(x, y) {
				if mask[n] && !visited[n] {
					visited[n] = true
					queue = append(queue, n)
				}
			}
		}
		boxes = append(boxes, box)
	}

	boxes = mergeOverlapping(boxes)

	sort.Slice(boxes, func(i, j int) bool { return area(boxes[i]) > area(boxes[j]) })
	if len(boxes) > maxRegions {
		boxes = boxes[:maxRegions]
	}

	regions := make([]models.ChangeRegion, 0, len(boxes))
	for _, b := range boxes {
		var sum float64
		cells := 0
		for y := b.y1; y <= b.y2; y++ {
			for x := b.x1; x <= b.x2; x++ {
				sum += diff[y*diffGrid+x]
				cells++
			}
		}
		regions = append(regions, models.ChangeRegion{
			Box: models.NormBox{
				X: float64(b.x1) / diffGrid,
				Y: float64(b.y1) / diffGrid,
				W: float64(b.x2-b.x1+1) / diffGrid,
				H: float64(b.y2-b.y1+1) / diffGrid,
			},
			Score: sum / float64(cells),
		})
	}
	return regions
}

func neighbors(x, y int) []int {
	var out []int
	if x > 0 {
		out = append(out, y*diffGrid+x-1)
	}
	if x < diffGrid-1 {
		out = append(out, y*diffGrid+x+1)
	}
	if y > 0 {
		out = append(out, (y-1)*diffGrid+x)
	}
	if y < diffGrid-1 {
		out = append(out, (y+1)*diffGrid+x)
	}
	return out
}

func area(b cellBox) int { return (b.x2 - b.x1 + 1) * (b.y2 - b.y1 + 1) }

func overlaps(a, b cellBox) bool {
	return a.x1 <= b.x2 && b.x1 <= a.x2 && a.y1 <= b.y2 && b.y1 <= a.y2
}

func mergeOverlapping(boxes []cellBox) []cellBox {
	merged := true
	for merged {
		merged = false
		for i := 0; i < len(boxes) && !merged; i++ {
			for j := i + 1; j < len(boxes) && !merged; j++ {
				if overlaps(boxes[i], boxes[j]) {
					u := boxes[i]
					o := boxes[j]
					if o.x1 < u.x1 {
						u.x1 = o.x1
					}
					if o.y1 < u.y1 {
						u.y1 = o.y1
					}
					if o.x2 > u.x2 {
						u.x2 = o.x2
					}
					if o.y2 > u.y2 {
						u.y2 = o.y2
					}
					boxes[i] = u
					boxes = append(boxes[:j], boxes[j+1:]...)
					merged = true
				}
			}
		}
	}
	return boxes
}

// FocusBoxes denormalizes the change regions into pixel boxes for a w×h
// frame, for use as recognition regions of interest.
func (d DiffResult) FocusBoxes(w, h int) []models.Box {
	if !d.Defined || len(d.Regions) == 0 {
		return nil
	}
	out := make([]models.Box, 0, len(d.Regions))
	for _, r := range d.Regions {
		out = append(out, r.Box.Denormalize(w, h))
	}
	return out
}
