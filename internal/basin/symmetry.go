package basin

import (
	"fmt"

	"github.com/san-kum/basinsim/internal/dynamo"
)

// ExpandToCanvas mirrors the quadrant into a 2·size square canvas centred
// on the origin. Mirroring across the y axis exchanges the poles, so those
// copies get their votes transposed; mirroring across the x axis leaves the
// poles in place. Canvas column n-1-x (row n-1-y) holds the pixel mirrored
// from quadrant column x (row y), so cell edges line up on the axes.
func ExpandToCanvas(q *Grid) (*Grid, error) {
	if q == nil {
		return nil, fmt.Errorf("expand: nil quadrant: %w", dynamo.ErrInvalidSize)
	}
	n := q.Size
	canvas, err := NewGrid(2 * n)
	if err != nil {
		return nil, err
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			v := q.At(x, y)
			canvas.Set(n+x, n+y, v)
			canvas.Set(n-1-x, n+y, v.Transpose())
			canvas.Set(n+x, n-1-y, v)
			canvas.Set(n-1-x, n-1-y, v.Transpose())
		}
	}
	return canvas, nil
}
