package trim

import (
	"strings"

	"github.com/wingcheck/wingcheck/pkg/types"
)

// GroupMapping is a model's line plan as produced by the manufacturer data
// parser: for each row, one label per line position. A label is a group base
// followed by the row it belongs to ("G1A", "STB"); an empty label means no
// line at that position. Rows outside A–D, such as the brake row "K", may be
// present and are ignored.
type GroupMapping map[types.Row][]string

// ExtractCells returns the cells of the plan that exist for a model with
// rowCount rows, rows front-to-back and groups inboard-to-outboard with the
// stabilizer last. A cell exists when the row's labels name it. Rows beyond
// rowCount and unknown group bases are excluded.
func ExtractCells(rowCount int, mapping GroupMapping) []types.Cell {
	var cells []types.Cell
	for _, row := range types.Rows(rowCount) {
		labels := mapping[row]
		if len(labels) == 0 {
			continue
		}
		for _, group := range types.Groups() {
			cell := types.Cell{Row: row, Group: group}
			if hasLabel(labels, cell.String()) {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}

// GroupPositions returns the 1-based line positions the cell covers in its
// row of the plan.
func GroupPositions(mapping GroupMapping, cell types.Cell) []int {
	var positions []int
	target := cell.String()
	for i, label := range mapping[cell.Row] {
		if normalizeLabel(label) == target {
			positions = append(positions, i+1)
		}
	}
	return positions
}

func hasLabel(labels []string, target string) bool {
	for _, l := range labels {
		if normalizeLabel(l) == target {
			return true
		}
	}
	return false
}

func normalizeLabel(label string) string {
	return strings.ToUpper(strings.TrimSpace(label))
}
