package log

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
)

var (
	VerboseFlag bool
	JSONFlag    bool
)

func Printf(format string, args ...any) {
	fmt.Printf(format, args...)
}

func Verbosef(format string, args ...any) {
	if VerboseFlag {
		Printf(format, args...)
	}
}

func Fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

func Fatal(args ...any) {
	Fatalf("%s", fmt.Sprint(args...))
}

func Check(err error) {
	if err != nil {
		Fatal(err)
	}
}

// PrintJSON prints v indented.
func PrintJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	Check(err)
	Printf("%s\n", data)
}

func PrintTable(header []string, rows [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	printRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, cell)
		}
		fmt.Fprintln(w)
	}

	printRow(header)
	for _, row := range rows {
		printRow(row)
	}
	Check(w.Flush())
}
