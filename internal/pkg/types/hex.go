package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Hex represents a hexadecimal-encoded quantity as a string (e.g., "0x1a").
// It is meant for values that fit in 64 bits, such as block heights, gas
// amounts, and peer counts. For arbitrary-precision quantities (balances,
// transaction values) use HexToDecimal instead.
type Hex string

// HexFromUint64 encodes n as a "0x"-prefixed hexadecimal string.
func HexFromUint64(n uint64) Hex {
	return Hex(fmt.Sprintf("0x%x", n))
}

// HexFromString validates the input string and returns a Hex value if valid.
func HexFromString(s string) (Hex, error) {
	if err := validateHex(s); err != nil {
		return "", err
	}
	return Hex(s), nil
}

// validateHex checks whether a string is a valid hexadecimal quantity starting with "0x" or "0X".
func validateHex(s string) error {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return fmt.Errorf("hex string must start with 0x")
	}

	if _, err := strconv.ParseUint(s[2:], 16, 64); err != nil {
		return fmt.Errorf("invalid hexadecimal value: %w", err)
	}

	return nil
}

// MarshalJSON encodes the Hex as a JSON string.
func (h Hex) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(h))
}

// UnmarshalJSON parses and validates a JSON-encoded hexadecimal string.
func (h *Hex) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid hex string: %w", err)
	}

	if err := validateHex(s); err != nil {
		return err
	}

	*h = Hex(s)
	return nil
}

// Uint64 returns the decoded uint64 value from the hexadecimal string.
// If parsing fails, it returns zero.
func (h Hex) Uint64() uint64 {
	if len(h) < 3 {
		return 0
	}
	v, _ := strconv.ParseUint(string(h)[2:], 16, 64)
	return v
}

// HexToDecimal converts a "0x"-prefixed hexadecimal quantity of arbitrary
// precision into its base-10 string representation. Ledger values and
// balances routinely exceed 64 bits, so the conversion goes through big.Int.
// An empty or "0x" input decodes to "0".
func HexToDecimal(s string) (string, error) {
	if s == "" || s == "0x" || s == "0X" {
		return "0", nil
	}

	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return "", fmt.Errorf("hex quantity must start with 0x")
	}

	v, ok := new(big.Int).SetString(s[2:], 16)
	if !ok {
		return "", fmt.Errorf("invalid hexadecimal quantity: %q", s)
	}

	return v.String(), nil
}

// HexToBytes decodes a "0x"-prefixed hexadecimal byte string (e.g., contract
// code returned by the node) into raw bytes. The empty payloads "" and "0x"
// decode to a nil slice.
func HexToBytes(s string) ([]byte, error) {
	if s == "" || s == "0x" || s == "0X" {
		return nil, nil
	}

	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return nil, fmt.Errorf("hex byte string must start with 0x")
	}

	return hex.DecodeString(s[2:])
}
