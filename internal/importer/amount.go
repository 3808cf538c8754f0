package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseBRLAmount parses a Brazilian-formatted amount string into cents.
// Examples: "1.234,56" -> 123456, "-588,74" -> -58874, "R$ 10,00" -> 1000.
func parseBRLAmount(s string) (int64, error) {
	clean := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
