// Package token issues access tokens for local development and scripts.
package token

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumastory/lumastory/internal/infrastructure/auth"
	"github.com/lumastory/lumastory/internal/infrastructure/config"
	"github.com/lumastory/lumastory/internal/shared/authorization"
	"github.com/lumastory/lumastory/internal/shared/constants"
)

type tokenGenerator interface {
	Generate(userID string, role authorization.UserRole) (string, time.Time, error)
}

var (
	env    string
	userID string
	role   string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development access token",
		Long: `Sign an access token with the configured JWT secret. The role claim is
informational: admin routes check the role stored on the user.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&userID, "user", "u", "", "User id placed in the token (required)")
	cmd.Flags().StringVarP(&role, "role", "r", authorization.RoleUser.String(), "Role claim (user or superadmin)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return issue(cmd, auth.NewJWTService(cfg.Auth.JWT), userID, role)
}

func issue(cmd *cobra.Command, gen tokenGenerator, userID, roleName string) error {
	r := authorization.UserRole(roleName)
	if !r.IsValid() {
		return fmt.Errorf("unknown role %q", roleName)
	}

	tok, expiresAt, err := gen.Generate(userID, r)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), tok)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", expiresAt.Format(time.RFC3339))
	return nil
}
