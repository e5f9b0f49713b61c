package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/referral-pipeline/internal/domain/pipeline"
)

func newListCmd(c *cli) *cobra.Command {
	var stage string

	cmd := &cobra.Command{
		Use:     "list <kind>",
		GroupID: "entities",
		Short:   "List referral sources or clients, newest first",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKindArg(args[0])
			if err != nil {
				return err
			}
			list, err := c.api.ListEntities(cmd.Context(), kind, pipeline.ListFilter{Stage: pipeline.Stage(stage)})
			if err != nil {
				return err
			}
			return c.renderer().entities(kind, list)
		},
	}
	cmd.Flags().StringVar(&stage, "stage", "", "only list entities in this stage")
	return cmd
}

func newGetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "get <kind> <id>",
		GroupID: "entities",
		Short:   "Show one entity",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKindArg(args[0])
			if err != nil {
				return err
			}
			e, err := c.api.GetEntity(cmd.Context(), kind, args[1])
			if err != nil {
				return err
			}
			return c.renderer().entity(e)
		},
	}
}

func newCreateCmd(c *cli) *cobra.Command {
	var (
		draft     pipeline.Draft
		deal      string
		closeDate string
	)

	cmd := &cobra.Command{
		Use:     "create <kind>",
		GroupID: "entities",
		Short:   "Create a referral source or client in its initial stage",
		Example: `  pipelinectl create source --name "Acme Law" --email intake@acme.example
  pipelinectl create client --name "Dana Reyes" --email dana@example.com \
      --deal 2500 --close "next friday" --referral-source rs-1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKindArg(args[0])
			if err != nil {
				return err
			}
			if deal != "" {
				if draft.DealSizeCents, err = parseMoney(deal); err != nil {
					return fmt.Errorf("--deal: %w", err)
				}
			}
			if closeDate != "" {
				d, err := parseDateArg(closeDate, c.now())
				if err != nil {
					return fmt.Errorf("--close: %w", err)
				}
				draft.ExpectedCloseDate = &d
			}

			e, err := c.api.CreateEntity(cmd.Context(), kind, draft)
			if err != nil {
				return err
			}
			return c.renderer().entity(e)
		},
	}

	f := cmd.Flags()
	f.StringVar(&draft.Name, "name", "", "display name (required)")
	f.StringVar(&draft.Email, "email", "", "email address (required)")
	f.StringVar(&draft.Phone, "phone", "", "phone number")
	f.StringVar(&draft.BusinessName, "business", "", "business name")
	f.StringVar(&draft.Notes, "notes", "", "free-form notes")
	f.StringVar(&deal, "deal", "", "client deal size in dollars, e.g. 2500.50")
	f.StringVar(&closeDate, "close", "", `client expected close date, YYYY-MM-DD or phrases like "next friday"`)
	f.StringVar(&draft.ReferralSourceID, "referral-source", "", "id of the referring source (clients only)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newMoveCmd(c *cli) *cobra.Command {
	var (
		change    pipeline.StageChange
		closeDate string
	)

	cmd := &cobra.Command{
		Use:     "move <kind> <id> <stage>",
		GroupID: "entities",
		Short:   "Move an entity to another stage",
		Long: `Move an entity to another stage.

Forward moves may advance exactly one stage. Backward moves of any distance
require --reason. The client stages from PROP_SENT_REVIEW to CLOSED_PAID
require an expected close date, which --close can supply in the same call.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKindArg(args[0])
			if err != nil {
				return err
			}
			change.EntityID = args[1]
			change.To = pipeline.Stage(args[2])
			if closeDate != "" {
				d, err := parseDateArg(closeDate, c.now())
				if err != nil {
					return fmt.Errorf("--close: %w", err)
				}
				change.ExpectedCloseDate = &d
			}

			e, err := c.api.ChangeStage(cmd.Context(), kind, change)
			if err != nil {
				return err
			}
			return c.renderer().entity(e)
		},
	}

	f := cmd.Flags()
	f.StringVar(&change.Reason, "reason", "", "why the entity moved (required for backward moves)")
	f.StringVar(&change.ActorID, "actor", "", "who made the change")
	f.StringVar(&closeDate, "close", "", "expected close date to set with the move")
	return cmd
}

func newHistoryCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "history <kind> <id>",
		GroupID: "entities",
		Short:   "Show an entity's stage history, newest first",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKindArg(args[0])
			if err != nil {
				return err
			}
			entries, err := c.api.ListHistory(cmd.Context(), kind, args[1])
			if err != nil {
				return err
			}
			return c.renderer().history(entries)
		},
	}
}

func newContactCmd(c *cli) *cobra.Command {
	var (
		ev        pipeline.ContactEvent
		direction string
		sent      string
	)

	cmd := &cobra.Command{
		Use:     "contact <kind> <id>",
		GroupID: "entities",
		Short:   "Log an email exchange and update the last contact time",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKindArg(args[0])
			if err != nil {
				return err
			}
			ev.Kind = kind
			ev.EntityID = args[1]
			ev.Direction = pipeline.Direction(direction)
			if !ev.Direction.IsValid() {
				return fmt.Errorf("--direction must be %s or %s", pipeline.DirectionInbound, pipeline.DirectionOutbound)
			}

			ev.SentAt = c.now().UTC()
			if sent != "" {
				if ev.SentAt, err = parseTimeArg(sent, c.now()); err != nil {
					return fmt.Errorf("--sent: %w", err)
				}
			}

			logged, err := c.api.AppendContactEvent(cmd.Context(), ev)
			if err != nil {
				return err
			}
			return c.renderer().contact(logged)
		},
	}

	f := cmd.Flags()
	f.StringVar(&direction, "direction", string(pipeline.DirectionOutbound), "INBOUND or OUTBOUND")
	f.StringVar(&ev.Subject, "subject", "", "message subject")
	f.StringVar(&ev.Snippet, "snippet", "", "short excerpt of the message")
	f.StringVar(&ev.FromEmail, "from", "", "sender address")
	f.StringVar(&ev.ToEmail, "to", "", "recipient address")
	f.StringVar(&ev.ThreadID, "thread", "", "mail thread id")
	f.StringVar(&sent, "sent", "", `when the message was sent; RFC 3339 or phrases like "yesterday 3pm" (default now)`)
	return cmd
}
