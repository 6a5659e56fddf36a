package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
)

// Output renders command results as aligned text or JSON.
type Output struct {
	format string
}

func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print renders v: pretty JSON in json mode, fmt's default otherwise.
func (o *Output) Print(v any) {
	if o.format == "json" {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to render: %v\n", err)
			return
		}
		fmt.Println(string(data))
		return
	}
	fmt.Printf("%+v\n", v)
}

// Table renders rows under a header with aligned columns. In json mode the
// raw rows are printed instead.
func (o *Output) Table(header []string, rows [][]string) {
	if o.format == "json" {
		o.Print(rows)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	printRow(w, header)
	for _, row := range rows {
		printRow(w, row)
	}
	_ = w.Flush()
}

func printRow(w *tabwriter.Writer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, cell)
	}
	fmt.Fprintln(w)
}
