// Package domain contains shared domain types used across the pipeline
// sub-packages. Pipeline-specific types live in domain/pipeline and report
// shapes in domain/report. This root package holds sentinel errors, the
// typed errors returned by the transition engine, and the unit-of-work
// interfaces (Action, WriteStager) shared by every write path.
package domain
