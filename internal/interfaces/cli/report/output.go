package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/orris-inc/fitment/internal/application/fitment/dto"
	"github.com/orris-inc/fitment/internal/domain/fitment"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// printer writes results to w in one of the supported formats.
type printer struct {
	w      io.Writer
	format string
}

func newPrinter(w io.Writer, format string) (*printer, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case formatTable, formatJSON, formatYAML:
		return &printer{w: w, format: f}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (use table, json or yaml)", format)
	}
}

// table prints t. An error table is printed like any other result and then returned as an error
// so the process exits non-zero.
func (p *printer) table(t *fitment.Table) error {
	if t == nil {
		t = fitment.NewDataTable(nil, nil)
	}

	var err error
	switch p.format {
	case formatJSON:
		err = p.encodeJSON(dto.ToTableDTO(t))
	case formatYAML:
		err = p.encodeYAML(dto.ToTableDTO(t))
	default:
		err = p.writeTable(t)
	}
	if err != nil {
		return err
	}

	if t.Kind == fitment.TableKindError {
		return errors.New(t.Text())
	}
	return nil
}

func (p *printer) names(names []string) error {
	if names == nil {
		names = []string{}
	}
	switch p.format {
	case formatJSON:
		return p.encodeJSON(names)
	case formatYAML:
		return p.encodeYAML(names)
	}
	for _, n := range names {
		if _, err := fmt.Fprintln(p.w, n); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) stats(s fitment.Stats) error {
	switch p.format {
	case formatJSON:
		return p.encodeJSON(s)
	case formatYAML:
		return p.encodeYAML(s)
	}

	tw := p.newTableWriter()
	tw.AppendBulk([][]string{
		{"listings", fmt.Sprint(s.Listings)},
		{"brands", fmt.Sprint(s.Brands)},
		{"trims", fmt.Sprint(s.Trims)},
	})
	tw.Render()
	return nil
}

// newTableWriter returns a borderless, column aligned table in the style of kubectl output.
func (p *printer) newTableWriter() *tablewriter.Table {
	tw := tablewriter.NewWriter(p.w)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetBorder(false)
	tw.SetHeaderLine(false)
	tw.SetCenterSeparator("")
	tw.SetColumnSeparator("")
	tw.SetRowSeparator("")
	tw.SetNoWhiteSpace(true)
	tw.SetTablePadding("  ")
	return tw
}

func (p *printer) writeTable(t *fitment.Table) error {
	if t.Kind != fitment.TableKindData {
		_, err := fmt.Fprintln(p.w, t.Text())
		return err
	}
	if len(t.Rows) == 0 {
		_, err := fmt.Fprintln(p.w, "(no rows)")
		return err
	}

	tw := p.newTableWriter()
	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = strings.ToUpper(c)
	}
	tw.SetHeader(header)

	for _, row := range t.Rows {
		cells := make([]string, len(t.Columns))
		for i := range cells {
			if i < len(row) {
				cells[i] = formatCell(row[i])
			}
		}
		tw.Append(cells)
	}
	tw.Render()

	_, err := fmt.Fprintf(p.w, "(%d rows)\n", len(t.Rows))
	return err
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		// Line breaks would split the row across lines.
		return strings.NewReplacer("\t", " ", "\n", " ", "\r", "").Replace(x)
	case float64:
		return fmt.Sprintf("%.2f", x)
	case time.Time:
		return x.Format(time.DateTime)
	default:
		return fmt.Sprint(x)
	}
}

func (p *printer) encodeJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	_, err = fmt.Fprintln(p.w, string(b))
	return err
}

func (p *printer) encodeYAML(v any) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
