package api

import "errors"

var (
	errTransactionNotFound = errors.New("transaction not found")
	errAuctionNotFound     = errors.New("auction not found")
)
