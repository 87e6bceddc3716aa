package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/basinsim/internal/basin"
)

func SummaryTable(s basin.Summary) string {
	var b strings.Builder
	row := func(label string, style func(...string) string, v float64) {
		b.WriteString(MetricLabel.Render(label))
		b.WriteString(style(fmt.Sprintf("%6.2f%%", v*100)))
		b.WriteString("\n")
	}
	row("pole 1", Pole1Style.Render, s.Pole1)
	row("pole 2", Pole2Style.Render, s.Pole2)
	row("undetermined", Subtle.Render, s.Undetermined)
	return Panel.Render(strings.TrimRight(b.String(), "\n"))
}

// ParamTable lists named parameters in name order.
func ParamTable(params map[string]float64) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(MetricLabel.Width(18).Render(name))
		b.WriteString(MetricValue.Render(fmt.Sprintf("%g", params[name])))
		b.WriteString("\n")
	}
	return Panel.Render(strings.TrimRight(b.String(), "\n"))
}
