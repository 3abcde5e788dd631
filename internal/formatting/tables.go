// Package formatting renders registry content as rich tables for the CLI.
package formatting

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"skilld/internal/skill"
)

const descriptionLimit = 60

// createTable creates a new table with standard styling
func createTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	return t
}

// RenderSkills renders capability definitions as a table.
func RenderSkills(out io.Writer, defs []*skill.Definition) {
	if len(defs) == 0 {
		fmt.Fprintf(out, "%s\n", text.FgYellow.Sprint("No capabilities found"))
		return
	}

	t := createTable(out)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("NAME"),
		text.FgHiCyan.Sprint("DOMAIN"),
		text.FgHiCyan.Sprint("DESCRIPTION"),
		text.FgHiCyan.Sprint("HANDLER"),
		text.FgHiCyan.Sprint("TAGS"),
	})

	for _, def := range defs {
		handler := def.Handler
		if handler == "" {
			handler = text.FgYellow.Sprint("(docs only)")
		}
		t.AppendRow(table.Row{
			def.Name,
			def.Domain,
			truncate(def.Description, descriptionLimit),
			handler,
			strings.Join(def.Tags, ", "),
		})
	}
	t.Render()
}

// RenderDomains renders domain indexes as a table.
func RenderDomains(out io.Writer, indexes []*skill.DomainIndex) {
	if len(indexes) == 0 {
		fmt.Fprintf(out, "%s\n", text.FgYellow.Sprint("No domains found"))
		return
	}

	t := createTable(out)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("DOMAIN"),
		text.FgHiCyan.Sprint("DESCRIPTION"),
	})
	for _, idx := range indexes {
		t.AppendRow(table.Row{idx.Domain, truncate(idx.Description, descriptionLimit)})
	}
	t.Render()
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}
