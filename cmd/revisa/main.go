// Command revisa is a terminal client for the review API.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/andrewpaige1/revisa-api/client"
)

var (
	apiURL   string
	apiToken string

	tokenSecret   string
	tokenIssuer   string
	tokenAudience string
	tokenSubject  string
	tokenNickname string
	tokenTTL      time.Duration

	rootCmd = &cobra.Command{
		Use:           "revisa",
		Short:         "Review your flashcards from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// A missing .env is fine; flags and the environment still apply.
			_ = godotenv.Load()
		},
	}

	dueCmd = &cobra.Command{
		Use:   "due",
		Short: "List the flashcards due now",
		RunE:  runDue,
	}

	reviewCmd = &cobra.Command{
		Use:   "review",
		Short: "Start an interactive review session over the due flashcards",
		RunE:  runReview,
	}

	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Mint a locally signed development token",
		RunE:  runToken,
	}

	verifyTokenCmd = &cobra.Command{
		Use:   "verify [token]",
		Short: "Check a locally signed token and print its subject",
		Args:  cobra.ExactArgs(1),
		RunE:  runVerifyToken,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", envOr("REVISA_API_URL", "http://localhost:8080"), "Base URL of the API")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", os.Getenv("REVISA_TOKEN"), "Bearer token (defaults to $REVISA_TOKEN)")

	tokenCmd.PersistentFlags().StringVar(&tokenSecret, "secret", os.Getenv("JWT_SECRET_KEY"), "HS256 signing secret (defaults to $JWT_SECRET_KEY)")
	tokenCmd.PersistentFlags().StringVar(&tokenIssuer, "issuer", envOr("JWT_ISSUER", "revisa-api"), "Token issuer")
	tokenCmd.PersistentFlags().StringVar(&tokenAudience, "audience", envOr("JWT_AUDIENCE", "revisa"), "Token audience")
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "local|dev", "Token subject, used as the user id")
	tokenCmd.Flags().StringVar(&tokenNickname, "nickname", "", "Nickname claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")

	tokenCmd.AddCommand(verifyTokenCmd)
	rootCmd.AddCommand(dueCmd, reviewCmd, tokenCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newClient() (*client.Client, error) {
	if apiToken == "" {
		return nil, fmt.Errorf("no token: pass --token or set REVISA_TOKEN (see `revisa token`)")
	}
	return client.New(apiURL, apiToken), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.Error.Render("erro: "+err.Error()))
		os.Exit(1)
	}
}
