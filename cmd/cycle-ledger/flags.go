package main

import (
	"errors"

	"github.com/spf13/cobra"

	"cycle-ledger/core"
)

var errBatchTransferArgMismatch = errors.New("cycle-ledger: --to and --amt must repeat the same number of times")

func clgPrincipalFlag(cmd *cobra.Command, name string) (core.Principal, error) {
	raw, err := cmd.Flags().GetString(name)
	if err != nil {
		return core.Principal{}, err
	}
	return core.ParsePrincipalHex(raw)
}

func clgOptionalPrincipalFlag(cmd *cobra.Command, name string) (*core.Principal, error) {
	raw, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	p, err := core.ParsePrincipalHex(raw)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func clgTokensFlag(cmd *cobra.Command, name string) (core.Tokens128, error) {
	raw, err := cmd.Flags().GetString(name)
	if err != nil {
		return core.Tokens128{}, err
	}
	return core.TokensFromString(raw)
}
