// Command pomodoro-trace prints a timer trace recorded with -trace.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/internal/trace"
)

func main() {
	runFilter := flag.String("run", "", "only print events of this run id")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-run id] trace-file\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := dump(os.Stdout, flag.Arg(0), *runFilter); err != nil {
		fmt.Fprintf(os.Stderr, "pomodoro-trace: %v\n", err)
		os.Exit(1)
	}
}

func dump(w io.Writer, path, runFilter string) error {
	reader, err := trace.OpenFile(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	table := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(table, "TIME\tOP\tSOURCE\tPHASE\tCATEGORY\tREMAINING\tRUN")
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			_ = table.Flush()
			return err
		}
		if runFilter != "" && event.RunID != runFilter {
			continue
		}
		fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%s\t%s/%s\t%s\n",
			event.Timestamp.Local().Format(time.DateTime),
			event.Op,
			event.Source,
			event.Phase,
			event.Category,
			model.FormatSeconds(event.Remaining),
			model.FormatSeconds(event.Total),
			event.RunID)
	}
	return table.Flush()
}
