package cmd

import (
	"errors"
	"time"

	"dsc/service/session"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token <account>",
	Short: "issue an access token for account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.App.JWTSecret == "" {
			return errors.New("app.jwt_secret not configured")
		}

		issuer, _ := cmd.Flags().GetString("issuer")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		token, err := session.Issue(cfg.App.JWTSecret, issuer, args[0], ttl)
		if err != nil {
			return err
		}

		cmd.Println(token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().String("issuer", "dsc", "token issuer")
	tokenCmd.Flags().Duration("ttl", 24*time.Hour, "token lifetime")
}
