package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/lexdesk/claimsync/pkg/service/export"
	"github.com/lexdesk/claimsync/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdClaims() *cli.Command {
	return &cli.Command{
		Name:    "claims",
		Aliases: []string{"c"},
		Usage:   "Work with claims",
		Commands: []*cli.Command{
			cmdClaimsList(),
			cmdClaimsStatus(),
			cmdClaimsBulkStatus(),
			cmdClaimsEdit(),
			cmdClaimsExport(),
		},
	}
}

func cmdClaimsList() *cli.Command {
	var setup clientSetup
	var category string
	var contactID string

	flags := setup.flags()
	flags = append(flags,
		&cli.StringFlag{
			Name:        "category",
			Usage:       "Only show claims in this pipeline category (e.g. dsar-process)",
			Destination: &category,
		},
		&cli.StringFlag{
			Name:        "contact-id",
			Usage:       "Only show claims of this contact",
			Destination: &contactID,
		},
	)

	return &cli.Command{
		Name:  "list",
		Usage: "List claims",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if category != "" && !types.StatusCategory(category).IsValid() {
				return goerr.New("unknown category", goerr.V("category", category))
			}

			uc, _, err := setup.start(ctx, c.Root().ErrWriter)
			if err != nil {
				return err
			}
			if err := uc.Claim.FetchAll(ctx); err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.Root().Writer, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tCONTACT\tLENDER\tSTATUS\tVALUE\tDAYS")
			for _, claim := range uc.Store.Claims() {
				if category != "" && claim.Category() != types.StatusCategory(category) {
					continue
				}
				if contactID != "" && claim.ContactID != contactID {
					continue
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%d\n",
					claim.ID, claim.ContactName, claim.Lender, claim.Status, claim.ClaimValue, claim.DaysInStage)
			}
			return w.Flush()
		},
	}
}

func cmdClaimsStatus() *cli.Command {
	var setup clientSetup

	return &cli.Command{
		Name:      "status",
		Usage:     "Move one claim to a new status",
		ArgsUsage: "<claim-id> <status>",
		Flags:     setup.flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 2 {
				return goerr.New("claim ID and status are required")
			}
			status, err := types.ParseClaimStatus(c.Args().Get(1))
			if err != nil {
				return goerr.Wrap(err, "invalid status")
			}

			uc, _, err := setup.start(ctx, c.Root().Writer)
			if err != nil {
				return err
			}
			if err := uc.Claim.FetchAll(ctx); err != nil {
				return err
			}
			return resultError(uc.Claim.SetStatus(ctx, c.Args().Get(0), status))
		},
	}
}

func cmdClaimsBulkStatus() *cli.Command {
	var setup clientSetup
	var status string
	var lender string
	var fromStatus string
	var minDays int

	flags := setup.flags()
	flags = append(flags,
		&cli.StringFlag{
			Name:        "status",
			Usage:       "Target claim status",
			Required:    true,
			Destination: &status,
		},
		&cli.StringFlag{
			Name:        "lender",
			Usage:       "Select claims whose lender contains this text",
			Destination: &lender,
		},
		&cli.StringFlag{
			Name:        "from-status",
			Usage:       "Select claims currently in this status",
			Destination: &fromStatus,
		},
		&cli.IntFlag{
			Name:        "min-days",
			Usage:       "Select claims at least this many days in their stage",
			Destination: &minDays,
		},
	)

	return &cli.Command{
		Name:      "bulk-status",
		Usage:     "Move several claims to one status in a single request",
		ArgsUsage: "[<claim-id>...]",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			target, err := types.ParseClaimStatus(status)
			if err != nil {
				return goerr.Wrap(err, "invalid status")
			}
			criteria, err := claimCriteria(lender, fromStatus, minDays)
			if err != nil {
				return err
			}
			if c.Args().Len() > 0 && !criteria.IsEmpty() {
				return goerr.New("give claim IDs or selection flags, not both")
			}

			uc, _, err := setup.start(ctx, c.Root().Writer)
			if err != nil {
				return err
			}
			if err := uc.Claim.FetchAll(ctx); err != nil {
				return err
			}
			if criteria.IsEmpty() {
				return resultError(uc.Claim.BulkSetStatus(ctx, c.Args().Slice(), target))
			}
			return resultError(uc.Claim.BulkSetStatusWhere(ctx, criteria, target))
		},
	}
}

func claimCriteria(lender, fromStatus string, minDays int) (model.ClaimCriteria, error) {
	criteria := model.ClaimCriteria{Lender: lender, MinDaysInStage: minDays}
	if minDays < 0 {
		return criteria, goerr.New("min-days cannot be negative", goerr.V("min_days", minDays))
	}
	if fromStatus != "" {
		parsed, err := types.ParseClaimStatus(fromStatus)
		if err != nil {
			return criteria, goerr.Wrap(err, "invalid from-status")
		}
		criteria.Status = parsed
	}
	return criteria, nil
}

func cmdClaimsEdit() *cli.Command {
	var setup clientSetup
	var details model.ClaimDetails

	flags := setup.flags()
	flags = append(flags,
		&cli.StringFlag{Name: "lender", Usage: "Lender name", Destination: &details.Lender},
		&cli.FloatFlag{Name: "value", Usage: "Claim value", Destination: &details.ClaimValue},
		&cli.StringFlag{Name: "product", Usage: "Product type", Destination: &details.ProductType},
		&cli.StringFlag{Name: "account", Usage: "Account number", Destination: &details.AccountNumber},
		&cli.StringFlag{Name: "start-date", Usage: "Agreement start date (YYYY-MM-DD)", Destination: &details.StartDate},
	)

	return &cli.Command{
		Name:      "edit",
		Usage:     "Change a claim's details; the status is left as it is",
		ArgsUsage: "<claim-id>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("claim ID is required")
			}
			claimID := c.Args().First()

			uc, _, err := setup.start(ctx, c.Root().Writer)
			if err != nil {
				return err
			}
			if err := uc.Claim.FetchAll(ctx); err != nil {
				return err
			}
			claim := uc.Store.Claim(claimID)
			if claim == nil {
				return goerr.New("claim not found", goerr.V("claim_id", claimID))
			}

			merged := claim.Details()
			for name, apply := range map[string]func(){
				"lender":     func() { merged.Lender = details.Lender },
				"value":      func() { merged.ClaimValue = details.ClaimValue },
				"product":    func() { merged.ProductType = details.ProductType },
				"account":    func() { merged.AccountNumber = details.AccountNumber },
				"start-date": func() { merged.StartDate = details.StartDate },
			} {
				if c.IsSet(name) {
					apply()
				}
			}
			return resultError(uc.Claim.UpdateClaim(ctx, claimID, merged))
		},
	}
}

func cmdClaimsExport() *cli.Command {
	var setup clientSetup
	var output string

	flags := setup.flags()
	flags = append(flags, &cli.StringFlag{
		Name:        "output",
		Aliases:     []string{"o"},
		Usage:       "Path of the workbook to write",
		Value:       "pipeline.xlsx",
		Destination: &output,
	})

	return &cli.Command{
		Name:  "export",
		Usage: "Write the claim pipeline to an Excel workbook",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, _, err := setup.start(ctx, c.Root().ErrWriter)
			if err != nil {
				return err
			}
			if err := uc.Claim.FetchAll(ctx); err != nil {
				return err
			}
			claims := uc.Store.Claims()
			return writeWorkbook(ctx, output, claims)
		},
	}
}

func writeWorkbook(ctx context.Context, path string, claims []*model.Claim) (err error) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return goerr.Wrap(err, "failed to create output file", goerr.V("path", path))
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = goerr.Wrap(cerr, "failed to close output file", goerr.V("path", path))
		}
	}()

	if err := export.WritePipeline(f, claims); err != nil {
		return goerr.Wrap(err, "failed to export pipeline", goerr.V("path", path))
	}
	logging.From(ctx).Info("Pipeline exported", "path", path, "claims", len(claims))
	return nil
}
