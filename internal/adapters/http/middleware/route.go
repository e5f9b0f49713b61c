package middleware

import (
	"strings"

	"github.com/jsamuelsen11/referral-pipeline/internal/domain/pipeline"
)

const apiPrefix = "/api/v1/"

// routeOf collapses a request path into a low-cardinality route label for
// spans, metrics and logs. Entity IDs under /api/v1/{kind}/ become "{id}";
// the kind segment is reported separately. Paths outside the entity
// collections are returned unchanged.
//
// The label is computed from the path rather than from chi's route context
// because the handler may still be running in the Timeout goroutine when
// the outer middleware finishes.
func routeOf(path string) (route string, kind pipeline.Kind) {
	rest, ok := strings.CutPrefix(path, apiPrefix)
	if !ok {
		return path, 0
	}
	segs := strings.Split(strings.TrimSuffix(rest, "/"), "/")

	kind, err := pipeline.ParseKind(segs[0])
	if err != nil || segs[0] != kind.PathSegment() {
		return path, 0
	}
	if len(segs) > 1 && segs[1] != "stage:bulk" {
		segs[1] = "{id}"
	}
	return apiPrefix + strings.Join(segs, "/"), kind
}
