package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen11/referral-pipeline/internal/adapters/http/dto"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/pipeline"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/report"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func validateFormat(f string) error {
	switch f {
	case formatTable, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q: want table, json or yaml", f)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// renderer writes command results in the selected format. JSON and YAML
// use the same wire shapes as the HTTP API.
type renderer struct {
	out     io.Writer
	format  string
	printer *message.Printer
}

func newRenderer(out io.Writer, format string) *renderer {
	return &renderer{
		out:     out,
		format:  format,
		printer: message.NewPrinter(language.English),
	}
}

// money renders cents as "$1,234.56".
func (r *renderer) money(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + r.printer.Sprintf("$%d.%02d", cents/100, cents%100)
}

func (r *renderer) entities(kind pipeline.Kind, list []pipeline.Entity) error {
	if r.format != formatTable {
		return r.encode(dto.ToEntityListResponse(list))
	}

	headers := []string{"ID", "NAME", "EMAIL", "STAGE", "LAST CONTACT"}
	if kind == pipeline.KindClient {
		headers = append(headers, "DEAL", "CLOSE")
	}
	t := newTable(headers...)
	for i := range list {
		e := &list[i]
		row := []string{e.ID, e.Name, e.Email, e.Stage.String(), formatTimePtr(e.LastContactAt)}
		if kind == pipeline.KindClient {
			row = append(row, r.money(e.DealSizeCents), formatDatePtr(e.ExpectedCloseDate))
		}
		t.Row(row...)
	}
	return r.printTable(t)
}

func (r *renderer) entity(e *pipeline.Entity) error {
	if r.format != formatTable {
		return r.encode(dto.ToEntityResponse(e))
	}

	t := newTable("FIELD", "VALUE")
	t.Row("id", e.ID)
	t.Row("kind", e.Kind.String())
	t.Row("name", e.Name)
	t.Row("email", e.Email)
	if e.Phone != "" {
		t.Row("phone", e.Phone)
	}
	if e.BusinessName != "" {
		t.Row("business", e.BusinessName)
	}
	t.Row("stage", e.Stage.String())
	if e.Kind == pipeline.KindClient {
		t.Row("deal", r.money(e.DealSizeCents))
		t.Row("close", formatDatePtr(e.ExpectedCloseDate))
		if e.ReferralSourceID != "" {
			t.Row("referral source", e.ReferralSourceID)
		}
	}
	t.Row("last contact", formatTimePtr(e.LastContactAt))
	if e.Notes != "" {
		t.Row("notes", e.Notes)
	}
	t.Row("updated", e.UpdatedAt.UTC().Format(time.RFC3339))
	return r.printTable(t)
}

func (r *renderer) history(entries []pipeline.HistoryEntry) error {
	if r.format != formatTable {
		return r.encode(dto.ToHistoryListResponse(entries))
	}

	t := newTable("WHEN", "FROM", "TO", "REASON", "ACTOR")
	for _, h := range entries {
		from := "-"
		if h.From != nil {
			from = h.From.String()
		}
		t.Row(h.ChangedAt.UTC().Format(time.RFC3339), from, h.To.String(), h.Reason, h.ActorID)
	}
	return r.printTable(t)
}

func (r *renderer) contact(ev *pipeline.ContactEvent) error {
	if r.format != formatTable {
		return r.encode(dto.ToContactEventResponse(ev))
	}

	t := newTable("ID", "DIRECTION", "SUBJECT", "SENT")
	t.Row(ev.ID, string(ev.Direction), ev.Subject, ev.SentAt.UTC().Format(time.RFC3339))
	return r.printTable(t)
}

func (r *renderer) summary(s *report.Summary) error {
	if r.format != formatTable {
		return r.encode(dto.ToSummaryResponse(s))
	}

	t := newTable("METRIC", "VALUE")
	t.Row("referral sources", r.printer.Sprintf("%d", s.ReferralSourceCount))
	t.Row("clients", r.printer.Sprintf("%d", s.ClientCount))
	t.Row("open pipeline value", r.money(s.OpenClientValueCents))
	return r.printTable(t)
}

func (r *renderer) dashboard(d *report.Dashboard) error {
	if r.format != formatTable {
		return r.encode(dto.ToDashboardResponse(d))
	}

	if _, err := fmt.Fprintf(r.out, "Dashboard %s\n", d.Month); err != nil {
		return err
	}
	weekly := newTable("WEEK", "SIGNED", "CLIENTS ADDED")
	for _, b := range d.Weekly {
		weekly.Row(b.Label, fmt.Sprintf("%d", b.SignedCount), fmt.Sprintf("%d", b.ClientsAddedCount))
	}
	if err := r.printTable(weekly); err != nil {
		return err
	}

	income := newTable("MONTH", "EXPECTED INCOME")
	for _, p := range d.Income {
		income.Row(p.Month.String(), r.money(p.ExpectedIncomeCents))
	}
	return r.printTable(income)
}

// encode writes v as JSON or YAML. YAML goes through JSON first so both
// formats share the API's field names.
func (r *renderer) encode(v any) error {
	if r.format == formatJSON {
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return enc.Close()
}

func (r *renderer) printTable(t *table.Table) error {
	_, err := fmt.Fprintln(r.out, t.Render())
	return err
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(pipeline.DateLayout)
}
