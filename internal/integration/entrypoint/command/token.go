package command

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/accounting-office/backend/config"
	"github.com/accounting-office/backend/internal/application/adapter"
	"github.com/accounting-office/backend/internal/integration/adapters"
)

func newTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage API access tokens",
	}
	cmd.AddCommand(newTokenIssueCommand())
	return cmd
}

func newTokenIssueCommand() *cobra.Command {
	var userID string
	var scopes []string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a signed access token for the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user := uuid.New()
			if userID != "" {
				parsed, err := uuid.Parse(userID)
				if err != nil {
					return fmt.Errorf("invalid user ID %q", userID)
				}
				user = parsed
			}
			for _, s := range scopes {
				if s != adapter.ScopeBookkeepingRead && s != adapter.ScopeBookkeepingWrite {
					return fmt.Errorf("unknown scope %q: use %s or %s",
						s, adapter.ScopeBookkeepingRead, adapter.ScopeBookkeepingWrite)
				}
			}

			cfg := config.Load()
			if ttl <= 0 {
				ttl = cfg.JWT.AccessTokenExpiry
			}

			token, err := adapters.NewTokenService(cfg.JWT.Secret, ttl).
				GenerateAccessToken(cmd.Context(), user, scopes)
			if err != nil {
				return err
			}

			printInfof(cmd.ErrOrStderr(), "Token for user %s valid for %s", user, ttl)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user ID to embed in the token (random when empty)")
	cmd.Flags().StringSliceVar(&scopes, "scope", []string{adapter.ScopeBookkeepingRead}, "granted scopes")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to JWT_EXPIRY)")

	return cmd
}
