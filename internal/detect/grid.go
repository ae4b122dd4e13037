package detect

import (
	"image"
	"math"
	"math/rand"
)

// Edge hysteresis thresholds on raw Sobel magnitude, matching the calibrated
// capture pipeline.
const (
	edgeLowThreshold  = 50.0
	edgeHighThreshold = 150.0
)

// Grid reports whether a calibration grid is present: it runs edge detection
// and a probabilistic line-segment transform over the edge map, and counts
// segments above the configured minimum length. More segments than
// GridMinSegments means a regular structure is present. False positives from
// other regular structure are an accepted tradeoff for robustness to blur and
// skew.
func Grid(img image.Image, cfg Config) (detected bool) {
	defer func() {
		if r := recover(); r != nil {
			detected = false
		}
	}()

	plane := grayPlane(img)
	edges := edgeMap(plane)
	segments := houghSegments(edges, cfg)
	return segments > cfg.GridMinSegments
}

// edgeMap thresholds gradient magnitude with hysteresis: strong pixels seed
// edges, weak pixels join only when connected to a strong one.
func edgeMap(plane [][]float64) [][]bool {
	h := len(plane)
	if h == 0 {
		return nil
	}
	w := len(plane[0])

	gx, gy := sobel(plane)
	strong := make([]image.Point, 0, 1024)
	weak := make([][]bool, h)
	edges := make([][]bool, h)
	for y := 0; y < h; y++ {
		weak[y] = make([]bool, w)
		edges[y] = make([]bool, w)
		for x := 0; x < w; x++ {
			mag := math.Hypot(gx[y][x], gy[y][x])
			if mag >= edgeHighThreshold {
				edges[y][x] = true
				strong = append(strong, image.Pt(x, y))
			} else if mag >= edgeLowThreshold {
				weak[y][x] = true
			}
		}
	}

	// Flood from strong pixels through 8-connected weak neighbors.
	for len(strong) > 0 {
		p := strong[len(strong)-1]
		strong = strong[:len(strong)-1]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				if weak[ny][nx] && !edges[ny][nx] {
					edges[ny][nx] = true
					strong = append(strong, image.Pt(nx, ny))
				}
			}
		}
	}
	return edges
}

// houghSegments is a probabilistic Hough transform over the edge map. Edge
// points are consumed in a fixed-seed shuffled order so verification of the
// same photograph is reproducible. Returns the number of segments found; it
// stops counting once the caller's threshold can no longer change the answer.
func houghSegments(edges [][]bool, cfg Config) int {
	h := len(edges)
	if h == 0 {
		return 0
	}
	w := len(edges[0])

	const numAngle = 180
	var sinT, cosT [numAngle]float64
	for a := 0; a < numAngle; a++ {
		theta := float64(a) * math.Pi / numAngle
		sinT[a] = math.Sin(theta)
		cosT[a] = math.Cos(theta)
	}

	maxRho := int(math.Hypot(float64(w), float64(h))) + 1
	accum := make([][]int32, numAngle)
	for a := range accum {
		accum[a] = make([]int32, 2*maxRho+1)
	}

	mask := make([][]bool, h)
	var points []image.Point
	for y := 0; y < h; y++ {
		mask[y] = make([]bool, w)
		for x := 0; x < w; x++ {
			if edges[y][x] {
				mask[y][x] = true
				points = append(points, image.Pt(x, y))
			}
		}
	}

	rng := rand.New(rand.NewSource(1))
	rng.Shuffle(len(points), func(i, j int) {
		points[i], points[j] = points[j], points[i]
	})

	count := 0
	for _, p := range points {
		if !mask[p.Y][p.X] {
			continue
		}

		bestVotes, bestAngle := int32(0), 0
		for a := 0; a < numAngle; a++ {
			r := int(math.Round(float64(p.X)*cosT[a]+float64(p.Y)*sinT[a])) + maxRho
			accum[a][r]++
			if accum[a][r] > bestVotes {
				bestVotes, bestAngle = accum[a][r], a
			}
		}
		if bestVotes < int32(cfg.GridVoteThreshold) {
			continue
		}

		// Line direction is perpendicular to the (cos, sin) normal.
		dx, dy := stepVector(-sinT[bestAngle], cosT[bestAngle])
		var ends [2]image.Point
		for k := 0; k < 2; k++ {
			sx, sy := dx, dy
			if k == 1 {
				sx, sy = -dx, -dy
			}
			ends[k] = walkLine(mask, p, sx, sy, cfg.GridMaxLineGap)
		}

		length := math.Hypot(float64(ends[0].X-ends[1].X), float64(ends[0].Y-ends[1].Y))
		good := length >= float64(cfg.GridMinLineLength)

		// Second pass: consume the corridor so its pixels seed no further
		// lines; un-vote only when the segment was accepted.
		for k := 0; k < 2; k++ {
			sx, sy := dx, dy
			if k == 1 {
				sx, sy = -dx, -dy
			}
			clearLine(mask, accum[:], sinT[:], cosT[:], maxRho, p, ends[k], sx, sy, cfg.GridMaxLineGap, good)
		}

		if good {
			count++
			if count > cfg.GridMinSegments {
				return count
			}
		}
	}
	return count
}

// stepVector normalizes a direction so its dominant component is exactly one
// pixel per step.
func stepVector(dx, dy float64) (float64, float64) {
	if math.Abs(dx) > math.Abs(dy) {
		return math.Copysign(1, dx), dy / math.Abs(dx)
	}
	if dy == 0 {
		return 0, 0
	}
	return dx / math.Abs(dy), math.Copysign(1, dy)
}

// walkLine extends from p along (sx, sy), tolerating runs of up to maxGap
// non-edge pixels, and returns the last edge pixel reached.
func walkLine(mask [][]bool, p image.Point, sx, sy float64, maxGap int) image.Point {
	h, w := len(mask), len(mask[0])
	x, y := float64(p.X), float64(p.Y)
	last := p
	gap := 0
	for {
		x += sx
		y += sy
		xi, yi := int(math.Round(x)), int(math.Round(y))
		if xi < 0 || xi >= w || yi < 0 || yi >= h {
			break
		}
		if mask[yi][xi] {
			gap = 0
			last = image.Pt(xi, yi)
		} else {
			gap++
			if gap > maxGap {
				break
			}
		}
	}
	return last
}

// clearLine re-walks from p toward end, consuming edge pixels from the mask.
// When unvote is set, each consumed pixel's accumulator contributions are
// withdrawn so spent evidence cannot elect further lines.
func clearLine(mask [][]bool, accum [][]int32, sinT, cosT []float64, maxRho int, p, end image.Point, sx, sy float64, maxGap int, unvote bool) {
	h, w := len(mask), len(mask[0])
	x, y := float64(p.X), float64(p.Y)
	gap := 0
	for {
		xi, yi := int(math.Round(x)), int(math.Round(y))
		if xi < 0 || xi >= w || yi < 0 || yi >= h {
			return
		}
		if mask[yi][xi] {
			gap = 0
			mask[yi][xi] = false
			if unvote {
				for a := range accum {
					r := int(math.Round(float64(xi)*cosT[a]+float64(yi)*sinT[a])) + maxRho
					if accum[a][r] > 0 {
						accum[a][r]--
					}
				}
			}
		} else {
			gap++
			if gap > maxGap {
				return
			}
		}
		if xi == end.X && yi == end.Y {
			return
		}
		x += sx
		y += sy
	}
}
