package core

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Asset is a chain token amount in the "12.000 STEEM" wire form.
type Asset struct {
	Amount decimal.Decimal
	Symbol string
}

func (a Asset) String() string {
	return a.Amount.String() + " " + a.Symbol
}

func (a Asset) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Asset) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return fmt.Errorf("asset %q: want \"<amount> <symbol>\"", s)
	}
	amount, err := decimal.NewFromString(parts[0])
	if err != nil {
		return fmt.Errorf("asset amount %q: %w", parts[0], err)
	}
	a.Amount = amount
	a.Symbol = parts[1]
	return nil
}
