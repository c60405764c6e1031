package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/forgo/clubs/api/internal/model"
	"github.com/forgo/clubs/api/internal/repository"
	"github.com/forgo/clubs/api/internal/service"
	"github.com/forgo/clubs/api/pkg/jwt"
)

func tokenCmd() *cobra.Command {
	var (
		userID     int64
		email      string
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for an existing user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (userID == 0) == (email == "") {
				return errors.New("exactly one of --user-id or --email is required")
			}

			cfg, db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			users := repository.NewUserRepository(db)
			var user *model.User
			if userID != 0 {
				user, err = users.GetByID(cmd.Context(), userID)
			} else {
				user, err = users.GetByEmail(cmd.Context(), email)
			}
			if err != nil {
				return err
			}
			if user == nil {
				return service.ErrUserNotFound
			}

			jwtService, err := jwt.NewService(jwt.Config{
				Secret:     cfg.JWT.Secret,
				Issuer:     cfg.JWT.Issuer,
				Expiration: cfg.JWT.Expiration,
			})
			if err != nil {
				return err
			}
			tokens := service.NewTokenService(service.TokenServiceConfig{JWTService: jwtService})

			token, err := tokens.IssueToken(user)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}

			out := cmd.OutOrStdout()
			if outputJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"access_token": token,
					"token_type":   "Bearer",
					"expires_in":   tokens.TokenLifetimeSeconds(),
					"user":         user.Identity(),
				})
			}

			fmt.Fprintf(out, "User:     %d (%s)\n", user.ID, user.Email)
			fmt.Fprintf(out, "Role:     %s\n", user.Role)
			fmt.Fprintf(out, "Expires:  %s\n", time.Now().Add(cfg.JWT.Expiration).Format(time.RFC3339))
			fmt.Fprintln(out)
			fmt.Fprintln(out, token)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user-id", 0, "ID of the user")
	cmd.Flags().StringVar(&email, "email", "", "Email of the user")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output as JSON")
	return cmd
}
