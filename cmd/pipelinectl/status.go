package main

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/referral-pipeline/internal/adapters/http/dto"
	"github.com/jsamuelsen11/referral-pipeline/internal/platform/health"
	"github.com/jsamuelsen11/referral-pipeline/internal/ports"
)

var errNotReady = errors.New("server is not ready")

// statusReport is the status command's JSON and YAML shape.
type statusReport struct {
	Server dto.ReadinessResponse `json:"server"`
	Client dto.ReadinessResponse `json:"client"`
}

func newStatusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the server's readiness checks and this client's circuit breaker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			ready, err := c.api.Readiness(ctx)
			if err != nil {
				return fmt.Errorf("checking server readiness: %w", err)
			}

			registry := health.New()
			if hc, ok := c.api.(ports.HealthChecker); ok {
				registry.Register(hc)
			}

			server := dto.ReadinessResponse{Status: dto.StatusNotReady, Checks: ready.Checks}
			if ready.Ready {
				server.Status = dto.StatusReady
			}
			if err := c.renderer().status(statusReport{
				Server: server,
				Client: dto.ToReadinessResponse(registry.CheckAll(ctx)),
			}); err != nil {
				return err
			}

			if !ready.Ready {
				return errNotReady
			}
			return nil
		},
	}
}

func (r *renderer) status(s statusReport) error {
	if r.format != formatTable {
		return r.encode(s)
	}

	t := newTable("SIDE", "COMPONENT", "STATUS")
	t.Row("server", "(overall)", s.Server.Status)
	for _, name := range slices.Sorted(maps.Keys(s.Server.Checks)) {
		t.Row("server", name, s.Server.Checks[name])
	}
	for _, name := range slices.Sorted(maps.Keys(s.Client.Checks)) {
		t.Row("client", name, s.Client.Checks[name])
	}
	return r.printTable(t)
}
