package pipeline

import (
	"errors"
	"fmt"
)

// Stage is a named position in a pipeline.
type Stage string

// String implements fmt.Stringer.
func (s Stage) String() string {
	return string(s)
}

// Referral source stages.
const (
	StageIntroScheduled    Stage = "INTRO_SCHEDULED"
	StageNoShow            Stage = "NO_SHOW"
	StageReschedule        Stage = "RESCHEDULE"
	StageIntroCompleted    Stage = "INTRO_COMPLETED"
	StageAttorneyScheduled Stage = "ATTORNEY_SCHEDULED"
	StageAttorneyCompleted Stage = "ATTORNEY_COMPLETED"
	StageDocsSent          Stage = "DOCS_SENT"
	StageDocsSigned        Stage = "DOCS_SIGNED"
	StageWonReferring      Stage = "WON_REFERRING"
	StageLost              Stage = "LOST"
)

// Client stages. NO_SHOW, RESCHEDULE and the attorney stages are shared
// identifiers with the referral source pipeline.
const (
	StageReferred       Stage = "REFERRED"
	StageContacted      Stage = "CONTACTED"
	StagePropSentReview Stage = "PROP_SENT_REVIEW"
	StageContractSent   Stage = "CONTRACT_SENT"
	StageWonInvoiceOpen Stage = "WON_INVOICE_OPEN"
	StageClosedPaid     Stage = "CLOSED_PAID"
	StageClosedLost     Stage = "CLOSED_LOST"
)

// Pipeline is the immutable catalog for one kind. Index 0 is the initial
// stage; position is the only basis for adjacency and direction.
type Pipeline struct {
	kind    Kind
	stages  []Stage
	index   map[Stage]int
	success Stage
	closed  map[Stage]bool
	gated   map[Stage]bool
}

// PipelineSpec describes a pipeline to build with NewPipeline.
type PipelineSpec struct {
	Kind    Kind
	Stages  []Stage
	Success Stage
	Closed  []Stage
	Gated   []Stage
}

// NewPipeline validates spec and builds a Pipeline. Every stage must be
// unique, and Success, Closed and Gated must name stages in the sequence.
func NewPipeline(spec PipelineSpec) (Pipeline, error) {
	if !spec.Kind.IsValid() {
		return Pipeline{}, fmt.Errorf("pipeline: invalid kind %v", spec.Kind)
	}
	if len(spec.Stages) == 0 {
		return Pipeline{}, errors.New("pipeline: at least one stage is required")
	}

	p := Pipeline{
		kind:   spec.Kind,
		stages: make([]Stage, len(spec.Stages)),
		index:  make(map[Stage]int, len(spec.Stages)),
		closed: make(map[Stage]bool, len(spec.Closed)),
		gated:  make(map[Stage]bool, len(spec.Gated)),
	}
	copy(p.stages, spec.Stages)

	for i, s := range spec.Stages {
		if s == "" {
			return Pipeline{}, fmt.Errorf("pipeline %v: empty stage at index %d", spec.Kind, i)
		}
		if _, dup := p.index[s]; dup {
			return Pipeline{}, fmt.Errorf("pipeline %v: duplicate stage %s", spec.Kind, s)
		}
		p.index[s] = i
	}

	if spec.Success != "" {
		if !p.Contains(spec.Success) {
			return Pipeline{}, fmt.Errorf("pipeline %v: success stage %s not in sequence", spec.Kind, spec.Success)
		}
		p.success = spec.Success
	}
	for _, s := range spec.Closed {
		if !p.Contains(s) {
			return Pipeline{}, fmt.Errorf("pipeline %v: closed stage %s not in sequence", spec.Kind, s)
		}
		p.closed[s] = true
	}
	for _, s := range spec.Gated {
		if !p.Contains(s) {
			return Pipeline{}, fmt.Errorf("pipeline %v: gated stage %s not in sequence", spec.Kind, s)
		}
		p.gated[s] = true
	}

	return p, nil
}

// Kind returns the entity kind this pipeline serves.
func (p Pipeline) Kind() Kind { return p.kind }

// Stages returns a copy of the ordered stage sequence.
func (p Pipeline) Stages() []Stage {
	out := make([]Stage, len(p.stages))
	copy(out, p.stages)
	return out
}

// Initial returns the stage new entities start in.
func (p Pipeline) Initial() Stage {
	if len(p.stages) == 0 {
		return ""
	}
	return p.stages[0]
}

// Index returns the position of s and whether it is in the pipeline.
func (p Pipeline) Index(s Stage) (int, bool) {
	i, ok := p.index[s]
	return i, ok
}

// Contains reports whether s is a stage of this pipeline.
func (p Pipeline) Contains(s Stage) bool {
	_, ok := p.index[s]
	return ok
}

// Success returns the terminal-success stage, or "" if none is defined.
func (p Pipeline) Success() Stage { return p.success }

// IsClosed reports whether s is a terminal stage.
func (p Pipeline) IsClosed(s Stage) bool { return p.closed[s] }

// ClosedStages returns the terminal stages in pipeline order.
func (p Pipeline) ClosedStages() []Stage {
	out := make([]Stage, 0, len(p.closed))
	for _, s := range p.stages {
		if p.closed[s] {
			out = append(out, s)
		}
	}
	return out
}

// IsGated reports whether entering s requires an expected close date.
func (p Pipeline) IsGated(s Stage) bool { return p.gated[s] }

// Catalog holds the pipeline for each kind. It is built once at startup and
// passed to the services that need it.
type Catalog struct {
	referralSource Pipeline
	client         Pipeline
}

// NewCatalog builds a catalog from the two pipelines.
func NewCatalog(referralSource, client Pipeline) (Catalog, error) {
	if referralSource.Kind() != KindReferralSource {
		return Catalog{}, fmt.Errorf("catalog: referral source pipeline has kind %v", referralSource.Kind())
	}
	if client.Kind() != KindClient {
		return Catalog{}, fmt.Errorf("catalog: client pipeline has kind %v", client.Kind())
	}
	return Catalog{referralSource: referralSource, client: client}, nil
}

// For returns the pipeline of kind k.
func (c Catalog) For(k Kind) Pipeline {
	if k == KindClient {
		return c.client
	}
	return c.referralSource
}

// DefaultCatalog returns the stock referral source and client pipelines.
func DefaultCatalog() Catalog {
	rs, err := NewPipeline(PipelineSpec{
		Kind: KindReferralSource,
		Stages: []Stage{
			StageIntroScheduled, StageNoShow, StageReschedule, StageIntroCompleted,
			StageAttorneyScheduled, StageAttorneyCompleted, StageDocsSent, StageDocsSigned,
			StageWonReferring, StageLost,
		},
		Success: StageWonReferring,
		Closed:  []Stage{StageWonReferring, StageLost},
	})
	if err != nil {
		panic(err)
	}

	cl, err := NewPipeline(PipelineSpec{
		Kind: KindClient,
		Stages: []Stage{
			StageReferred, StageContacted, StageAttorneyScheduled, StageNoShow, StageReschedule,
			StageAttorneyCompleted, StagePropSentReview, StageContractSent, StageWonInvoiceOpen,
			StageClosedPaid, StageClosedLost,
		},
		Success: StageClosedPaid,
		Closed:  []Stage{StageClosedPaid, StageClosedLost},
		Gated:   []Stage{StagePropSentReview, StageContractSent, StageWonInvoiceOpen, StageClosedPaid},
	})
	if err != nil {
		panic(err)
	}

	return Catalog{referralSource: rs, client: cl}
}
