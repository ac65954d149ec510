package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/spec-kit/contact-bridge/internal/auth"
	"github.com/spec-kit/contact-bridge/internal/config"
)

var (
	subjectFlag string
	ttlFlag     int
)

var rootCmd = &cobra.Command{
	Use:   "tokengen",
	Short: "Mint admin tokens for the manual processing endpoints",
	Long: `tokengen signs an admin-scoped JWT with ADMIN_JWT_SECRET.

Send it as "Authorization: Bearer <token>" to /process-ticket and /test-macro.`,
	RunE: runTokengen,
}

func init() {
	rootCmd.Flags().StringVar(&subjectFlag, "subject", "operator", "Subject recorded in the token")
	rootCmd.Flags().IntVar(&ttlFlag, "ttl", 0, "Token lifetime in minutes (defaults to ADMIN_TOKEN_TTL_MINUTES)")
}

func runTokengen(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadAuth()
	if err != nil {
		return err
	}
	if cfg.JWTSecret == "" {
		return errors.New("ADMIN_JWT_SECRET is not set")
	}
	ttl := cfg.TokenTTLMinutes
	if ttlFlag > 0 {
		ttl = ttlFlag
	}

	token, exp, err := auth.NewTokenManager(cfg.JWTSecret, ttl).GenerateToken(subjectFlag, auth.ScopeAdmin)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", exp.UTC().Format("2006-01-02T15:04:05Z"))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
