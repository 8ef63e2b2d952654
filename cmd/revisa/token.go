package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrewpaige1/revisa-api/auth"
)

func tokenOptions() auth.TokenOptions {
	return auth.TokenOptions{
		Secret:   tokenSecret,
		Issuer:   tokenIssuer,
		Audience: tokenAudience,
		TTL:      tokenTTL,
	}
}

func runToken(cmd *cobra.Command, args []string) error {
	token, err := auth.CreateToken(tokenOptions(), tokenSubject, tokenNickname)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func runVerifyToken(cmd *cobra.Command, args []string) error {
	subject, err := auth.VerifyToken(tokenOptions(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), subject)
	return nil
}
