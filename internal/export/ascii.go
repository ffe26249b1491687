package export

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/godiag/internal/model"
	"github.com/alexiusacademia/godiag/internal/render"
)

// ASCIICurve renders the response curve of member m as a terminal chart.
func ASCIICurve(mdl *model.Model, k render.Kind, m int) (string, error) {
	_, ys, err := Curve(mdl, k, m)
	if err != nil {
		return "", err
	}
	graph := asciigraph.Plot(ys,
		asciigraph.Height(12),
		asciigraph.Width(64),
		asciigraph.Caption(fmt.Sprintf("member %d %s, end i to end j", m, axisLabel(k))),
	)
	return graph, nil
}
