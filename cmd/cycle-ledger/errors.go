package main

import "errors"

var (
	errAuctionNotFound     = errors.New("cycle-ledger: auction round not found")
	errTransactionNotFound = errors.New("cycle-ledger: transaction not found")
)
