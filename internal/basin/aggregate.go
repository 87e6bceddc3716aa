package basin

import (
	"fmt"

	"github.com/san-kum/basinsim/internal/dynamo"
)

// Aggregate returns the cell-wise mean of the partial grids. Each partial
// must already be normalized by its own sample count so that every worker
// weighs the same.
func Aggregate(partials []*Grid) (*Grid, error) {
	if len(partials) == 0 {
		return nil, fmt.Errorf("aggregate: no partial grids: %w", dynamo.ErrInvalidWorkers)
	}
	out, err := NewGrid(partials[0].Size)
	if err != nil {
		return nil, err
	}
	for i, p := range partials {
		if p.Size != out.Size || len(p.Cells) != len(out.Cells) {
			return nil, fmt.Errorf("aggregate: partial %d has size %d, want %d: %w", i, p.Size, out.Size, dynamo.ErrShapeMismatch)
		}
		for j, c := range p.Cells {
			out.Cells[j] = out.Cells[j].Add(c)
		}
	}
	n := float64(len(partials))
	for j := range out.Cells {
		out.Cells[j] = out.Cells[j].Div(n)
	}
	return out, nil
}
