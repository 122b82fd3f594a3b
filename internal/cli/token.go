package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"roga/config"
	"roga/utils"
)

// NewTokenCommand creates 'rogactl token'.
func NewTokenCommand() *cobra.Command {
	var (
		configPath string
		secret     string
		userID     string
		email      string
		ttl        time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development JWT for the API",
		Long: `Sign an HS256 token the server's auth middleware accepts. The secret
comes from --secret, else from the config file and JWT_SECRET.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return fmt.Errorf("--user is required")
			}
			if secret == "" {
				cfg, err := config.LoadConfig(configPath)
				if err != nil {
					return err
				}
				secret = cfg.JWT.Secret
				if ttl == 0 {
					ttl = time.Duration(cfg.JWT.Expiry) * time.Minute
				}
			}
			if ttl <= 0 {
				ttl = 24 * time.Hour
			}

			utils.SetJWTSecret(secret)
			token, err := utils.GenerateJWTToken(userID, email, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	cmd.Flags().StringVar(&secret, "secret", "", "Signing secret (overrides config)")
	cmd.Flags().StringVarP(&userID, "user", "u", "", "User id to embed (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email to embed")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default from config, else 24h)")

	return cmd
}
