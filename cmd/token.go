package cmd

import (
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-mouse/api/identity"
	"github.com/spf13/cobra"
)

var tokenFlags struct {
	subject string
	scope   string
	ttl     time.Duration
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the protected API routes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := initJWTTokenizer(); err != nil {
			return err
		}
		signed, err := jwtTokenizer.Generate(tokenFlags.subject, map[string]any{identity.ScopeClaim: tokenFlags.scope}, tokenFlags.ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), signed)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenFlags.subject, "subject", "viewer", "subject claim of the token")
	tokenCmd.Flags().StringVar(&tokenFlags.scope, "scope", identity.ScopeJourney, "space separated scopes granted by the token")
	tokenCmd.Flags().DurationVar(&tokenFlags.ttl, "ttl", 24*time.Hour, "token lifetime")
	rootCmd.AddCommand(tokenCmd)
}
