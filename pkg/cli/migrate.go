package cli

import (
	"context"

	"github.com/lexdesk/claimsync/pkg/utils/logging"
	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdMigrate() *cli.Command {
	var projectID string
	var databaseID string
	var prefix string
	var dryRun bool

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Migrate Firestore indexes of the reference backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "firestore-project-id",
				Usage:       "Firestore Project ID (required)",
				Required:    true,
				Sources:     cli.EnvVars("CLAIMSYNC_FIRESTORE_PROJECT_ID"),
				Destination: &projectID,
			},
			&cli.StringFlag{
				Name:        "firestore-database-id",
				Usage:       "Firestore Database ID",
				Sources:     cli.EnvVars("CLAIMSYNC_FIRESTORE_DATABASE_ID"),
				Destination: &databaseID,
			},
			&cli.StringFlag{
				Name:        "firestore-collection-prefix",
				Usage:       "Prefix added to every Firestore collection name",
				Sources:     cli.EnvVars("CLAIMSYNC_FIRESTORE_COLLECTION_PREFIX"),
				Destination: &prefix,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "Preview changes without applying",
				Destination: &dryRun,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			logger.Info("Migrate configuration",
				"projectID", projectID,
				"databaseID", databaseID,
				"prefix", prefix,
				"dryRun", dryRun)

			indexConfig := getIndexConfig(prefix)

			client, err := fireconf.NewClient(ctx, projectID, databaseID)
			if err != nil {
				return goerr.Wrap(err, "failed to create fireconf client")
			}
			defer func() {
				if err := client.Close(); err != nil {
					logger.Error("failed to close fireconf client", "error", err.Error())
				}
			}()

			if dryRun {
				logger.Info("Dry run mode - previewing changes")
				plan, err := client.GetMigrationPlan(ctx, indexConfig)
				if err != nil {
					return goerr.Wrap(err, "failed to create migration plan")
				}

				if len(plan.Steps) == 0 {
					logger.Info("No changes required")
					return nil
				}

				for _, step := range plan.Steps {
					logger.Info("Migration step",
						"collection", step.Collection,
						"operation", step.Operation,
						"description", step.Description,
						"destructive", step.Destructive)
				}
				return nil
			}

			logger.Info("Applying migrations")
			if err := client.Migrate(ctx, indexConfig); err != nil {
				return goerr.Wrap(err, "failed to apply migrations")
			}
			logger.Info("Migrations applied successfully")
			return nil
		},
	}
}

// getIndexConfig returns the composite indexes the firestore repository's
// filtered and ordered queries need
func getIndexConfig(prefix string) *fireconf.Config {
	byFieldNewestFirst := func(collection, field, order string) fireconf.Collection {
		return fireconf.Collection{
			Name: prefix + collection,
			Indexes: []fireconf.Index{
				{
					Fields: []fireconf.IndexField{
						{Path: field, Order: fireconf.OrderAscending},
						{Path: order, Order: fireconf.OrderDescending},
					},
				},
			},
		}
	}

	return &fireconf.Config{
		Collections: []fireconf.Collection{
			// ListNotifications: UserID ASC, CreatedAt DESC
			byFieldNewestFirst("notifications", "UserID", "CreatedAt"),
			// ListActionLogs: ClientID ASC, Timestamp DESC
			byFieldNewestFirst("action_logs", "ClientID", "Timestamp"),
			// ListNotes: ContactID ASC, CreatedAt DESC
			byFieldNewestFirst("notes", "ContactID", "CreatedAt"),
			// ListTickets for non-support users: UserID ASC, CreatedAt DESC
			byFieldNewestFirst("tickets", "UserID", "CreatedAt"),
		},
	}
}
