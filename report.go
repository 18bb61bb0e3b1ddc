package matbench

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FormatReport renders one benchmark's results as a text table: one
// row per swept size, one column per provider, "-" where a backend
// yielded no result.
func FormatReport(rep Report) string {
	var sb strings.Builder

	b := rep.Benchmark
	fmt.Fprintf(&sb, "\n%s (%s)\n", b.Name, b.YLabel)
	sb.WriteString(strings.Repeat("=", 12+14*len(b.Providers)))
	sb.WriteByte('\n')

	fmt.Fprintf(&sb, "%-12s", "M=N=K")
	for _, p := range b.Providers {
		fmt.Fprintf(&sb, "%14s", p)
	}
	sb.WriteByte('\n')

	for si, size := range b.Sizes {
		fmt.Fprintf(&sb, "%-12d", size)
		for pi := range b.Providers {
			if v := rep.Cells[pi][si]; v != nil {
				fmt.Fprintf(&sb, "%14.2f", *v)
			} else {
				fmt.Fprintf(&sb, "%14s", "-")
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// WriteReportCSV emits the same table in CSV form for downstream
// tooling. Absent cells are left empty.
func WriteReportCSV(w io.Writer, rep Report) error {
	cw := csv.NewWriter(w)

	b := rep.Benchmark
	header := append([]string{"M=N=K"}, b.Providers...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for si, size := range b.Sizes {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(size))
		for pi := range b.Providers {
			if v := rep.Cells[pi][si]; v != nil {
				row = append(row, strconv.FormatFloat(*v, 'f', 4, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
