package output

import (
	"fmt"
	"io"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/projectdiscovery/gologger"

	"github.com/tongchengbin/portscan/pkg/ports"
	"github.com/tongchengbin/portscan/pkg/scanner"
)

// Outer renders a finalized scan result.
type Outer interface {
	Output(result *scanner.Result) error
}

// ConsoleOuter prints results to Writer (stdout by default). In the default
// view only open ports are shown and filtered collapses into silence;
// verbose lists every outcome with its internal status.
type ConsoleOuter struct {
	Verbose bool
	Silent  bool
	Writer  io.Writer

	colors aurora.Aurora
}

// NewConsoleOuter creates a console outer. noColor disables ANSI colors.
func NewConsoleOuter(verbose, silent, noColor bool) *ConsoleOuter {
	return &ConsoleOuter{
		Verbose: verbose,
		Silent:  silent,
		Writer:  os.Stdout,
		colors:  aurora.NewAurora(!noColor),
	}
}

// Output implements Outer.
func (o *ConsoleOuter) Output(result *scanner.Result) error {
	if o.Silent {
		// Machine-friendly: just the open ports, one per line.
		for _, port := range result.OpenPorts() {
			fmt.Fprintln(o.Writer, port)
		}
		return nil
	}

	for _, outcome := range result.Outcomes {
		switch outcome.Status {
		case scanner.StatusOpen:
			service := outcome.Service
			if service == "" {
				service = ports.ServiceName(outcome.Port)
			}
			fmt.Fprintf(o.Writer, "%5d/tcp  %-10s %s\n", outcome.Port, o.colors.Green("open"), service)
			if outcome.Banner != "" {
				fmt.Fprintf(o.Writer, "           %s\n", o.colors.Gray(12, firstLine(outcome.Banner)))
			}
		case scanner.StatusClosed:
			if o.Verbose {
				fmt.Fprintf(o.Writer, "%5d/tcp  %-10s\n", outcome.Port, o.colors.Red("closed"))
			}
		case scanner.StatusFiltered:
			if o.Verbose {
				fmt.Fprintf(o.Writer, "%5d/tcp  %-10s\n", outcome.Port, o.colors.Yellow("filtered"))
			}
		case scanner.StatusError:
			fmt.Fprintf(o.Writer, "%5d/tcp  %-10s %s\n", outcome.Port, o.colors.Red("error"), outcome.Reason)
		}
	}

	gologger.Info().Msgf("found %d open ports on %s (%d probed in %.2fs)",
		result.Open, result.Target, result.Probed, result.Duration)
	if !result.Complete {
		gologger.Warning().Msgf("scan incomplete: %d of %d ports probed", result.Probed, result.Total)
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\r' || r == '\n' {
			return s[:i]
		}
	}
	return s
}

// JSONOuter appends one JSON object per scan to a file (NDJSON).
type JSONOuter struct {
	OutputFile string
}

// NewJSONOuter creates a JSON outer writing to outputFile.
func NewJSONOuter(outputFile string) *JSONOuter {
	return &JSONOuter{OutputFile: outputFile}
}

// Output implements Outer.
func (o *JSONOuter) Output(result *scanner.Result) error {
	file, err := os.OpenFile(o.OutputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = fmt.Fprintln(file, result.JSON())
	return err
}

// TextOuter appends a human-readable report to a file.
type TextOuter struct {
	OutputFile string
}

// NewTextOuter creates a text outer writing to outputFile.
func NewTextOuter(outputFile string) *TextOuter {
	return &TextOuter{OutputFile: outputFile}
}

// Output implements Outer.
func (o *TextOuter) Output(result *scanner.Result) error {
	file, err := os.OpenFile(o.OutputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintf(file, "Scan result for %s\n", result.Target)
	fmt.Fprintf(file, "  started_at: %s\n", result.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(file, "  finished_at: %s\n", result.EndedAt.Format("2006-01-02 15:04:05"))
	if !result.Complete {
		fmt.Fprintf(file, "  incomplete: %d of %d ports probed\n", result.Probed, result.Total)
	}
	for _, outcome := range result.Outcomes {
		fmt.Fprintf(file, "  %5d/tcp %-9s", outcome.Port, outcome.Status)
		if outcome.Service != "" {
			fmt.Fprintf(file, " %s", outcome.Service)
		}
		if outcome.Banner != "" {
			fmt.Fprintf(file, " | %s", firstLine(outcome.Banner))
		}
		fmt.Fprintln(file)
	}
	fmt.Fprintln(file, "----------------------------------------")
	return nil
}
