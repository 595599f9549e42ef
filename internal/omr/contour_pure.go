//go:build !gocv

package omr

import "image"

// neighbours lists the 8-connected offsets anticlockwise starting east.
// Image y grows downward, so north is -1.
var neighbours = [8]image.Point{
	{1, 0}, {1, -1}, {0, -1}, {-1, -1},
	{-1, 0}, {-1, 1}, {0, 1}, {1, 1},
}

// otsuThreshold picks the level that maximizes between-class variance.
// A single-valued histogram yields 0.
func otsuThreshold(gray *image.Gray) uint8 {
	var hist [256]int
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		for _, v := range row {
			hist[v]++
		}
	}

	total := float64(w * h)
	if total == 0 {
		return 0
	}

	var mean float64
	for i, c := range hist {
		mean += float64(i) * float64(c)
	}
	mean /= total

	const eps = 1.1920929e-07
	var (
		best      uint8
		bestSigma float64
		cumCount  float64
		cumSum    float64
	)
	for i, c := range hist {
		cumCount += float64(c)
		cumSum += float64(i) * float64(c)

		q1 := cumCount / total
		q2 := 1 - q1
		if q1 < eps || q2 < eps {
			continue
		}

		mu1 := cumSum / cumCount
		mu2 := (mean - q1*mu1) / q2
		sigma := q1 * q2 * (mu1 - mu2) * (mu1 - mu2)
		if sigma > bestSigma {
			bestSigma = sigma
			best = uint8(i)
		}
	}
	return best
}

// binarize maps pixels strictly above t to 255 and everything else to 0
func binarize(gray *image.Gray, t uint8) *image.Gray {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		dst := out.Pix[y*out.Stride : y*out.Stride+w]
		for x, v := range src {
			if v > t {
				dst[x] = 255
			}
		}
	}
	return out
}

// normalizePolarity inverts the binary image in place when white pixels
// outnumber black ones, so the foreground is always the minority class.
func normalizePolarity(bin *image.Gray) bool {
	white := 0
	for _, v := range bin.Pix {
		if v != 0 {
			white++
		}
	}
	if white <= len(bin.Pix)-white {
		return false
	}
	for i, v := range bin.Pix {
		bin.Pix[i] = 255 - v
	}
	return true
}

// findOuterContours returns the outer boundary of every 8-connected
// foreground component, with straight runs compressed to their endpoints.
// Holes are ignored.
func findOuterContours(bin *image.Gray) [][]Point {
	w, h := bin.Rect.Dx(), bin.Rect.Dy()
	foreground := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return bin.Pix[y*bin.Stride+x] != 0
	}

	visited := make([]bool, w*h)
	stack := make([]int, 0, 1024)
	var contours [][]Point

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if visited[idx] || !foreground(x, y) {
				continue
			}

			// Row-major scan guarantees (x, y) is the topmost-leftmost pixel
			// of a component not seen before.
			border := traceBorder(foreground, image.Pt(x, y), 4*w*h+16)
			contours = append(contours, compressChain(border))

			visited[idx] = true
			stack = append(stack[:0], idx)
			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				cx, cy := cur%w, cur/w
				for _, d := range neighbours {
					nx, ny := cx+d.X, cy+d.Y
					if !foreground(nx, ny) {
						continue
					}
					n := ny*w + nx
					if visited[n] {
						continue
					}
					visited[n] = true
					stack = append(stack, n)
				}
			}
		}
	}
	return contours
}

// traceBorder follows the outer boundary of the component containing start,
// which must be its topmost-leftmost pixel. The walk ends once the first
// move repeats; limit caps the number of steps.
func traceBorder(foreground func(x, y int) bool, start image.Point, limit int) []image.Point {
	border := []image.Point{start}
	cur := start
	dir := 7

	for step := 0; step < limit; step++ {
		if dir%2 == 0 {
			dir = (dir + 7) % 8
		} else {
			dir = (dir + 6) % 8
		}

		found := false
		for i := 0; i < 8; i++ {
			next := cur.Add(neighbours[dir])
			if foreground(next.X, next.Y) {
				cur = next
				found = true
				break
			}
			dir = (dir + 1) % 8
		}
		if !found {
			// isolated pixel
			return border
		}

		border = append(border, cur)
		n := len(border)
		if n >= 3 && border[n-1] == border[1] && border[n-2] == border[0] {
			return border[:n-2]
		}
	}
	return border
}

// compressChain keeps only the points where the chain changes direction
func compressChain(chain []image.Point) []Point {
	n := len(chain)
	out := make([]Point, 0, n)
	if n < 3 {
		for _, p := range chain {
			out = append(out, Point{X: float64(p.X), Y: float64(p.Y)})
		}
		return out
	}

	for i := 0; i < n; i++ {
		prev := chain[(i-1+n)%n]
		cur := chain[i]
		next := chain[(i+1)%n]
		if cur.Sub(prev) == next.Sub(cur) {
			continue
		}
		out = append(out, Point{X: float64(cur.X), Y: float64(cur.Y)})
	}
	return out
}

// largestContour returns the contour enclosing the greatest area; the first
// one wins ties.
func largestContour(contours [][]Point) []Point {
	var best []Point
	bestArea := -1.0
	for _, c := range contours {
		if a := polygonArea(c); a > bestArea {
			best, bestArea = c, a
		}
	}
	return best
}
