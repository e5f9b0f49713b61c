package dto

// Probe status values.
const (
	HealthOK       = "ok"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"
)

// LivenessResponse is the body of GET /health/live.
type LivenessResponse struct {
	Status string `json:"status"`
}

// APIHealthResponse is the body of GET /api/health.
type APIHealthResponse struct {
	OK bool `json:"ok"`
}

// ReadinessResponse is the body of GET /health/ready. Checks maps each
// registered component to "ok" or its failure message.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Ready reports whether every check passed.
func (r *ReadinessResponse) Ready() bool {
	return r.Status == StatusReady
}

// ToReadinessResponse folds registry results into the probe body.
func ToReadinessResponse(results map[string]error) ReadinessResponse {
	resp := ReadinessResponse{
		Status: StatusReady,
		Checks: make(map[string]string, len(results)),
	}
	for name, err := range results {
		if err != nil {
			resp.Checks[name] = err.Error()
			resp.Status = StatusNotReady
			continue
		}
		resp.Checks[name] = HealthOK
	}
	return resp
}
