package explorer

import (
	"fmt"
	"strings"

	"github.com/chainscope/chainscope/internal/pkg/validator"
)

// QueryKind identifies one of the query surfaces exposed by the explorer.
type QueryKind string

const (
	QueryAddressActivity    QueryKind = "address-activity"
	QueryRecentTransactions QueryKind = "recent-transactions"
	QueryBlockPage          QueryKind = "block-page"
	QueryContractList       QueryKind = "contract-list"
)

// ScanQuery is the normalized description of a windowed scan request. Its
// fingerprint is the only key under which results are cached, so two queries
// that differ in any parameter never share an entry.
type ScanQuery struct {
	Kind     QueryKind
	Address  string
	Page     uint64
	PageSize uint64
	Limit    int
}

// Fingerprint derives a stable cache key from the query kind and parameters.
// Addresses are lowercased so that case-variant spellings of the same address
// hit the same entry.
func (q ScanQuery) Fingerprint() string {
	return fmt.Sprintf("%s|addr=%s|page=%d|size=%d|limit=%d",
		q.Kind,
		strings.ToLower(q.Address),
		q.Page,
		q.PageSize,
		q.Limit,
	)
}

// addressInput carries the format rules for a ledger address:
// "0x" followed by 40 hexadecimal characters, compared case-insensitively.
type addressInput struct {
	Address string `validate:"required,len=42,startswith=0x,hexadecimal"`
}

// txHashInput carries the format rules for a transaction or block hash:
// "0x" followed by 64 hexadecimal characters.
type txHashInput struct {
	Hash string `validate:"required,len=66,startswith=0x,hexadecimal"`
}

// validateAddress rejects malformed addresses with ErrInvalidInput before any
// remote call is made.
func validateAddress(address string) error {
	if err := validator.Validate(addressInput{Address: address}); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// validateHash rejects malformed 32-byte hashes with ErrInvalidInput before
// any remote call is made.
func validateHash(hash string) error {
	if err := validator.Validate(txHashInput{Hash: hash}); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
