package pipelineapi

import (
	"fmt"
	"time"

	"github.com/jsamuelsen11/referral-pipeline/internal/adapters/http/dto"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/pipeline"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/report"
)

func toCreateRequest(d pipeline.Draft) dto.CreateEntityRequest {
	return dto.CreateEntityRequest{
		Name:              d.Name,
		Email:             d.Email,
		Phone:             d.Phone,
		BusinessName:      d.BusinessName,
		Notes:             d.Notes,
		DealSizeCents:     d.DealSizeCents,
		ExpectedCloseDate: formatDate(d.ExpectedCloseDate),
		ReferralSourceID:  d.ReferralSourceID,
	}
}

func toChangeStageRequest(c pipeline.StageChange) dto.ChangeStageRequest {
	return dto.ChangeStageRequest{
		ToStage:           c.To.String(),
		Reason:            c.Reason,
		ActorID:           c.ActorID,
		ExpectedCloseDate: formatDate(c.ExpectedCloseDate),
	}
}

func toContactRequest(ev pipeline.ContactEvent) dto.ContactEventRequest {
	return dto.ContactEventRequest{
		Direction: string(ev.Direction),
		Subject:   ev.Subject,
		Snippet:   ev.Snippet,
		FromEmail: ev.FromEmail,
		ToEmail:   ev.ToEmail,
		ThreadID:  ev.ThreadID,
		SentAt:    ev.SentAt.UTC().Format(time.RFC3339),
	}
}

func toEntity(r *dto.EntityResponse) (pipeline.Entity, error) {
	kind, err := pipeline.ParseKind(r.Kind)
	if err != nil {
		return pipeline.Entity{}, fmt.Errorf("entity %s: %w", r.ID, err)
	}

	e := pipeline.Entity{
		ID:               r.ID,
		Kind:             kind,
		Name:             r.Name,
		Email:            r.Email,
		Phone:            r.Phone,
		BusinessName:     r.BusinessName,
		Stage:            pipeline.Stage(r.Stage),
		Notes:            r.Notes,
		ReferralSourceID: r.ReferralSourceID,
	}
	if r.DealSizeCents != nil {
		e.DealSizeCents = *r.DealSizeCents
	}

	var p timeParser
	e.CreatedAt = p.parse("created_at", r.CreatedAt)
	e.UpdatedAt = p.parse("updated_at", r.UpdatedAt)
	e.LastContactAt = p.parsePtr("last_contact_at", r.LastContactAt)
	if r.ExpectedCloseDate != nil {
		d, err := pipeline.ParseDate(*r.ExpectedCloseDate)
		if err != nil {
			return pipeline.Entity{}, fmt.Errorf("entity %s: expected_close_date: %w", r.ID, err)
		}
		e.ExpectedCloseDate = &d
	}
	if p.err != nil {
		return pipeline.Entity{}, fmt.Errorf("entity %s: %w", r.ID, p.err)
	}
	return e, nil
}

func toEntityList(r *dto.EntityListResponse) ([]pipeline.Entity, error) {
	out := make([]pipeline.Entity, 0, len(r.Items))
	for i := range r.Items {
		e, err := toEntity(&r.Items[i])
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func toHistory(r *dto.HistoryListResponse) ([]pipeline.HistoryEntry, error) {
	out := make([]pipeline.HistoryEntry, 0, len(r.Items))
	for _, item := range r.Items {
		kind, err := pipeline.ParseKind(item.Kind)
		if err != nil {
			return nil, fmt.Errorf("history %s: %w", item.ID, err)
		}

		var p timeParser
		h := pipeline.HistoryEntry{
			ID:        item.ID,
			Kind:      kind,
			EntityID:  item.EntityID,
			To:        pipeline.Stage(item.ToStage),
			Reason:    item.Reason,
			ActorID:   item.ActorID,
			ChangedAt: p.parse("changed_at", item.ChangedAt),
		}
		if item.FromStage != nil {
			from := pipeline.Stage(*item.FromStage)
			h.From = &from
		}
		if p.err != nil {
			return nil, fmt.Errorf("history %s: %w", item.ID, p.err)
		}
		out = append(out, h)
	}
	return out, nil
}

func toContactEvent(r *dto.ContactEventResponse) (pipeline.ContactEvent, error) {
	kind, err := pipeline.ParseKind(r.Kind)
	if err != nil {
		return pipeline.ContactEvent{}, fmt.Errorf("contact %s: %w", r.ID, err)
	}

	var p timeParser
	ev := pipeline.ContactEvent{
		ID:        r.ID,
		Kind:      kind,
		EntityID:  r.EntityID,
		Direction: pipeline.Direction(r.Direction),
		Subject:   r.Subject,
		Snippet:   r.Snippet,
		FromEmail: r.FromEmail,
		ToEmail:   r.ToEmail,
		ThreadID:  r.ThreadID,
		SentAt:    p.parse("sent_at", r.SentAt),
		CreatedAt: p.parse("created_at", r.CreatedAt),
	}
	if p.err != nil {
		return pipeline.ContactEvent{}, fmt.Errorf("contact %s: %w", r.ID, p.err)
	}
	return ev, nil
}

func toSummary(r *dto.SummaryResponse) *report.Summary {
	return &report.Summary{
		ReferralSourceCount:  r.ReferralSourceCount,
		ClientCount:          r.ClientCount,
		OpenClientValueCents: r.OpenClientValueCents,
	}
}

func toDashboard(r *dto.DashboardResponse) (*report.Dashboard, error) {
	month, err := report.ParseMonth(r.Month)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	d := &report.Dashboard{
		Month:  month,
		Weekly: make([]report.WeeklyBucket, len(r.Weekly)),
		Income: make([]report.IncomePoint, len(r.Income)),
	}
	for i, w := range r.Weekly {
		d.Weekly[i] = report.WeeklyBucket(w)
	}
	for i, p := range r.Income {
		m, err := report.ParseMonth(p.Month)
		if err != nil {
			return nil, fmt.Errorf("dashboard income: %w", err)
		}
		d.Income[i] = report.IncomePoint{Month: m, ExpectedIncomeCents: p.ExpectedIncomeCents}
	}
	return d, nil
}

// timeParser parses RFC 3339 fields and keeps the first failure.
type timeParser struct {
	err error
}

func (p *timeParser) parse(field, s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", field, err)
	}
	return t
}

func (p *timeParser) parsePtr(field string, s *string) *time.Time {
	if s == nil {
		return nil
	}
	t := p.parse(field, *s)
	return &t
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(pipeline.DateLayout)
}
