package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// WriteTable renders the trajectory as a box table with one row per
// timestep.
func WriteTable(w io.Writer, traj []PoseSummary, timestep float32) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"t", "time (s)", "x", "σx", "y", "σy", "θ", "σθ"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
	})

	for i, p := range traj {
		tw.AppendRow(table.Row{
			i,
			num(float64(i) * float64(timestep)),
			num(p.X.Mean), num(p.X.StdDev),
			num(p.Y.Mean), num(p.Y.StdDev),
			num(p.Heading.Mean), num(p.Heading.StdDev),
		})
	}

	_, err := fmt.Fprintln(w, tw.Render())
	return err
}

func num(v float64) string { return fmt.Sprintf("%.4f", v) }
