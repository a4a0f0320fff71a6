package service

import (
	"time"

	"github.com/sangkips/posledger/internal/config"
)

// LedgerOptions tunes the write path of the order and reversal services
type LedgerOptions struct {
	AllowNegativeStock bool
	MaxRetries         int
	RetryBackoff       time.Duration
	CashAccountCode    string
	BankAccountCode    string
}

// LedgerOptionsFromConfig maps the ledger configuration section
func LedgerOptionsFromConfig(cfg config.LedgerConfig) LedgerOptions {
	return LedgerOptions{
		AllowNegativeStock: cfg.AllowNegativeStock,
		MaxRetries:         cfg.MaxRetries,
		RetryBackoff:       cfg.RetryBackoff,
		CashAccountCode:    cfg.CashAccountCode,
		BankAccountCode:    cfg.BankAccountCode,
	}
}

// DefaultLedgerOptions returns the defaults used when no configuration is loaded
func DefaultLedgerOptions() LedgerOptions {
	return LedgerOptions{
		MaxRetries:      3,
		RetryBackoff:    25 * time.Millisecond,
		CashAccountCode: "CASH",
		BankAccountCode: "BANK",
	}
}
