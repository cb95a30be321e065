package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/five82/gridview/internal/app"
	"github.com/five82/gridview/internal/grid"
	"github.com/five82/gridview/internal/logging"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// PrintOptions holds the flags of the print command.
type PrintOptions struct {
	Filters []string
	Sorts   []string
	Selects []string
	Format  string
	Limit   int
}

// PrintResult is the JSON document written by print --format json.
type PrintResult struct {
	Total    int               `json:"total"`
	Visible  int               `json:"visible"`
	Sort     string            `json:"sort"`
	Filters  map[string]string `json:"filters,omitempty"`
	Selected []grid.RowID      `json:"selected"`
	Rows     []grid.Record     `json:"rows"`
}

// NewPrintCommand creates the print command, which evaluates filters, sort
// and selection headlessly and writes the resulting view.
func NewPrintCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PrintOptions{}

	cmd := &cobra.Command{
		Use:   "print [dataset]",
		Short: "Print the filtered and sorted view without the TUI",
		Long: `Print applies filters, sort clicks and selections to the dataset and writes
the resulting rows.

Each --sort behaves like one click on that column header, so repeating a
field flips its direction. Exits with code 1 when no rows match.`,
		Example: `  gridview print people.csv --filter name=ann --sort age --sort age
  gridview print --select 3 --select 7 --format json`,
		Args:          commandArgs(cobra.MaximumNArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if opts.Limit < 0 {
				return NewExitError(ExitCommandError, "limit must not be negative")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(rootOpts, opts, args, cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Filters, "filter", nil, "filter a column, as field=query (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Sorts, "sort", nil, "click a column header (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Selects, "select", nil, "toggle selection of a row id (repeatable)")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "output format (text|json)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "print at most this many rows (0 prints all)")

	return cmd
}

func runPrint(rootOpts *RootOptions, opts *PrintOptions, args []string, cmd *cobra.Command) error {
	if rootOpts.Verbose {
		slog.SetDefault(logging.New(cmd.ErrOrStderr(), true))
	} else {
		logging.Discard()
	}

	cfg, err := app.LoadConfig(rootOpts.appOptions(args))
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}
	session, err := app.Open(cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "open dataset", err)
	}

	if err := applyViewFlags(session, opts); err != nil {
		return err
	}
	result := newPrintResult(session.Engine, opts.Limit)
	slog.Debug("view evaluated", "visible", result.Visible, "total", result.Total, "sort", result.Sort)

	w := cmd.OutOrStdout()
	if opts.Format == "json" {
		err = writeJSON(w, result)
	} else {
		err = writeText(w, session.Columns, session.Engine, result)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "write output", err)
	}

	if result.Visible == 0 {
		return NewExitError(ExitFailure, "no rows match")
	}
	return nil
}

// applyViewFlags replays the command-line interactions on the engine in the
// order a user would perform them: filters, header clicks, row clicks.
func applyViewFlags(s *app.Session, opts *PrintOptions) error {
	columns := make(map[string]grid.Column, len(s.Columns))
	for _, c := range s.Columns {
		columns[c.Field] = c
	}

	for _, raw := range opts.Filters {
		field, query, ok := strings.Cut(raw, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return NewExitError(ExitCommandError, fmt.Sprintf("invalid filter %q: want field=query", raw))
		}
		if c, known := columns[field]; !known || c.Filter != grid.FilterText {
			return NewExitError(ExitCommandError, fmt.Sprintf("column %q has no filter", field))
		}
		s.Engine.SetFilter(field, query)
	}

	for _, field := range opts.Sorts {
		if c, known := columns[field]; !known || !c.Sortable {
			return NewExitError(ExitCommandError, fmt.Sprintf("column %q is not sortable", field))
		}
		s.Engine.SetSort(field)
	}

	for _, id := range opts.Selects {
		s.Engine.ToggleSelection(grid.RowID(id))
	}
	return nil
}

func newPrintResult(e *grid.Engine, limit int) PrintResult {
	rows := e.View()
	if limit > 0 {
		rows = e.Window(0, limit)
	}
	result := PrintResult{
		Total:    len(e.Dataset()),
		Visible:  e.Len(),
		Sort:     e.Sort().String(),
		Selected: e.Selected(),
		Rows:     rows,
	}
	if filters := e.Filters(); len(filters) > 0 {
		result.Filters = filters
	}
	if result.Selected == nil {
		result.Selected = []grid.RowID{}
	}
	if result.Rows == nil {
		result.Rows = []grid.Record{}
	}
	return result
}

func writeJSON(w io.Writer, result PrintResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func writeText(w io.Writer, columns []grid.Column, e *grid.Engine, result PrintResult) error {
	headers := make([]string, 0, len(columns)+1)
	headers = append(headers, "")
	sort := e.Sort()
	for _, c := range columns {
		title := c.Title()
		if sort.Field == c.Field {
			title += " " + arrow(sort.Direction)
		}
		headers = append(headers, title)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
	for _, r := range result.Rows {
		row := make([]string, 0, len(columns)+1)
		mark := ""
		if e.IsSelected(r.ID()) {
			mark = "●"
		}
		row = append(row, mark)
		for _, c := range columns {
			text, _ := r.Text(c.Field)
			row = append(row, text)
		}
		t.Row(row...)
	}

	summary := fmt.Sprintf("%d of %d rows · %s · %d selected",
		result.Visible, result.Total, result.Sort, len(result.Selected))
	_, err := fmt.Fprintf(w, "%s\n%s\n", t.String(), summary)
	return err
}

func arrow(d grid.Direction) string {
	if d == grid.Descending {
		return "↓"
	}
	return "↑"
}
