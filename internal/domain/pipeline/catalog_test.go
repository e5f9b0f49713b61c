package pipeline

import (
	"testing"
)

func TestDefaultCatalog_Shape(t *testing.T) {
	t.Parallel()

	cat := DefaultCatalog()

	tests := []struct {
		kind        Kind
		wantLen     int
		wantInitial Stage
		wantSuccess Stage
		wantClosed  []Stage
	}{
		{
			kind:        KindReferralSource,
			wantLen:     10,
			wantInitial: StageIntroScheduled,
			wantSuccess: StageWonReferring,
			wantClosed:  []Stage{StageWonReferring, StageLost},
		},
		{
			kind:        KindClient,
			wantLen:     11,
			wantInitial: StageReferred,
			wantSuccess: StageClosedPaid,
			wantClosed:  []Stage{StageClosedPaid, StageClosedLost},
		},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			t.Parallel()
			p := cat.For(tt.kind)

			if p.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", p.Kind(), tt.kind)
			}
			if got := len(p.Stages()); got != tt.wantLen {
				t.Errorf("len(Stages()) = %d, want %d", got, tt.wantLen)
			}
			if p.Initial() != tt.wantInitial {
				t.Errorf("Initial() = %s, want %s", p.Initial(), tt.wantInitial)
			}
			if p.Success() != tt.wantSuccess {
				t.Errorf("Success() = %s, want %s", p.Success(), tt.wantSuccess)
			}
			closed := p.ClosedStages()
			if len(closed) != len(tt.wantClosed) {
				t.Fatalf("ClosedStages() = %v, want %v", closed, tt.wantClosed)
			}
			for i := range closed {
				if closed[i] != tt.wantClosed[i] {
					t.Errorf("ClosedStages()[%d] = %s, want %s", i, closed[i], tt.wantClosed[i])
				}
			}
		})
	}
}

func TestDefaultCatalog_GatedStages(t *testing.T) {
	t.Parallel()

	cl := DefaultCatalog().For(KindClient)
	gated := map[Stage]bool{
		StagePropSentReview: true,
		StageContractSent:   true,
		StageWonInvoiceOpen: true,
		StageClosedPaid:     true,
	}
	for _, s := range cl.Stages() {
		if cl.IsGated(s) != gated[s] {
			t.Errorf("IsGated(%s) = %v, want %v", s, cl.IsGated(s), gated[s])
		}
	}

	rs := DefaultCatalog().For(KindReferralSource)
	for _, s := range rs.Stages() {
		if rs.IsGated(s) {
			t.Errorf("referral source stage %s is gated, want none", s)
		}
	}
}

func TestPipeline_StagesReturnsCopy(t *testing.T) {
	t.Parallel()

	p := DefaultCatalog().For(KindClient)
	stages := p.Stages()
	stages[0] = "MUTATED"

	if p.Initial() != StageReferred {
		t.Errorf("Initial() = %s after mutating Stages() result, want %s", p.Initial(), StageReferred)
	}
}

func TestNewPipeline_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec PipelineSpec
	}{
		{name: "invalid kind", spec: PipelineSpec{Stages: []Stage{"A"}}},
		{name: "no stages", spec: PipelineSpec{Kind: KindClient}},
		{name: "duplicate stage", spec: PipelineSpec{Kind: KindClient, Stages: []Stage{"A", "B", "A"}}},
		{name: "empty stage", spec: PipelineSpec{Kind: KindClient, Stages: []Stage{"A", ""}}},
		{name: "success outside sequence", spec: PipelineSpec{Kind: KindClient, Stages: []Stage{"A"}, Success: "Z"}},
		{name: "closed outside sequence", spec: PipelineSpec{Kind: KindClient, Stages: []Stage{"A"}, Closed: []Stage{"Z"}}},
		{name: "gated outside sequence", spec: PipelineSpec{Kind: KindClient, Stages: []Stage{"A"}, Gated: []Stage{"Z"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewPipeline(tt.spec); err == nil {
				t.Error("NewPipeline() error = nil, want error")
			}
		})
	}
}

func TestNewCatalog_KindMismatch(t *testing.T) {
	t.Parallel()

	cat := DefaultCatalog()
	if _, err := NewCatalog(cat.For(KindClient), cat.For(KindClient)); err == nil {
		t.Error("NewCatalog(client, client) error = nil, want error")
	}
	if _, err := NewCatalog(cat.For(KindReferralSource), cat.For(KindClient)); err != nil {
		t.Errorf("NewCatalog() error = %v, want nil", err)
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{in: "clients", want: KindClient},
		{in: "CLIENT", want: KindClient},
		{in: "referral-sources", want: KindReferralSource},
		{in: "REFERRAL_SOURCE", want: KindReferralSource},
		{in: "cois", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
