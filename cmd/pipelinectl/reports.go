package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/referral-pipeline/internal/adapters/export/pdfreport"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/report"
)

func newReportCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "report",
		GroupID: "reports",
		Short:   "Pipeline reports",
	}
	cmd.AddCommand(newSummaryCmd(c), newDashboardCmd(c))
	return cmd
}

func newSummaryCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Entity counts and open client pipeline value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.api.Summary(cmd.Context())
			if err != nil {
				return err
			}
			return c.renderer().summary(s)
		},
	}
}

func newDashboardCmd(c *cli) *cobra.Command {
	var (
		month   string
		pdfPath string
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Weekly signed/added counts and six-month expected income",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := c.api.Dashboard(cmd.Context(), month)
			if err != nil {
				return err
			}
			if pdfPath == "" {
				return c.renderer().dashboard(d)
			}

			s, err := c.api.Summary(cmd.Context())
			if err != nil {
				return err
			}
			if err := writePDF(pdfPath, c, d, s); err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.out, "wrote %s\n", pdfPath)
			return err
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to report as YYYY-MM (default current)")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "write the dashboard to this PDF file instead of printing it")
	return cmd
}

func writePDF(path string, c *cli, d *report.Dashboard, s *report.Summary) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	r := pdfreport.New(pdfreport.Options{
		GeneratedAt: c.now(),
		Money:       c.renderer().money,
	})
	return r.Render(f, d, s)
}
