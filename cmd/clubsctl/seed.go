package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forgo/clubs/api/internal/seed"
	"github.com/forgo/clubs/api/internal/server"
	"github.com/forgo/clubs/api/internal/service"
)

func seedCmd() *cobra.Command {
	var (
		file          string
		ownerPassword string
		migrate       bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace all data with a development data set",
		Long: `Seed deletes every user, club, application, membership, event and RSVP,
then loads the owners, clubs and events from a YAML data set. Without --file
the embedded default data set is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(file)
			if err != nil {
				return err
			}

			cfg, db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if migrate {
				if err := db.Migrate(); err != nil {
					return err
				}
			}

			app, err := server.New(db, server.Options{
				JWTSecret:     cfg.JWT.Secret,
				JWTIssuer:     cfg.JWT.Issuer,
				JWTExpiration: cfg.JWT.Expiration,
				BcryptCost:    cfg.Auth.BcryptCost,
			})
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := app.Seeder.Seed(cmd.Context(), ds, ownerPassword)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d owners, %d clubs, %d events in %dms\n",
				result.Owners, result.Clubs, result.Events, result.Duration)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML data set (default: embedded)")
	cmd.Flags().StringVar(&ownerPassword, "owner-password", service.DefaultOwnerPassword, "Password for seeded owner accounts")
	cmd.Flags().BoolVar(&migrate, "migrate", true, "Apply migrations before seeding")
	return cmd
}

func loadDataset(file string) (*seed.Dataset, error) {
	if file == "" {
		return seed.Default()
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return seed.Parse(data)
}
