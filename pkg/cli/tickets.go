package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdTickets() *cli.Command {
	return &cli.Command{
		Name:  "tickets",
		Usage: "Raise and resolve support tickets",
		Commands: []*cli.Command{
			cmdTicketsList(),
			cmdTicketsRaise(),
			cmdTicketsResolve(),
		},
	}
}

func cmdTicketsList() *cli.Command {
	var setup clientSetup
	var openOnly bool

	flags := setup.flags()
	flags = append(flags, &cli.BoolFlag{
		Name:        "open",
		Usage:       "Only show tickets awaiting resolution",
		Destination: &openOnly,
	})

	return &cli.Command{
		Name:  "list",
		Usage: "List the tickets visible to the acting user",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, _, err := setup.start(ctx, c.Root().ErrWriter)
			if err != nil {
				return err
			}
			if err := uc.Ticket.Fetch(ctx); err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.Root().Writer, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tCREATED\tREPORTER\tSTATUS\tTITLE")
			for _, ticket := range uc.Store.Tickets() {
				if openOnly && !ticket.IsOpen() {
					continue
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					ticket.ID, ticket.CreatedAt.Format("2006-01-02 15:04"), ticket.UserName, ticket.Status, ticket.Title)
			}
			return w.Flush()
		},
	}
}

func cmdTicketsRaise() *cli.Command {
	var setup clientSetup
	var title string
	var description string

	flags := setup.flags()
	flags = append(flags,
		&cli.StringFlag{Name: "title", Usage: "Short summary", Required: true, Destination: &title},
		&cli.StringFlag{Name: "description", Usage: "What happened", Required: true, Destination: &description},
	)

	return &cli.Command{
		Name:  "raise",
		Usage: "Raise a support ticket",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, _, err := setup.start(ctx, c.Root().Writer)
			if err != nil {
				return err
			}
			res := uc.Ticket.Create(ctx, title, description)
			if err := resultError(res); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(c.Root().Writer, res.ID)
			return nil
		},
	}
}

func cmdTicketsResolve() *cli.Command {
	var setup clientSetup

	return &cli.Command{
		Name:      "resolve",
		Usage:     "Mark a ticket resolved",
		ArgsUsage: "<ticket-id>",
		Flags:     setup.flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("ticket ID is required")
			}
			uc, _, err := setup.start(ctx, c.Root().Writer)
			if err != nil {
				return err
			}
			return resultError(uc.Ticket.Resolve(ctx, c.Args().First()))
		},
	}
}
