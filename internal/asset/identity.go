package asset

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

const srSuffixLength = 4

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateSRNumber mints a service reference of the form
// {PREFIX}-SR-{year}-{XXXX} where the suffix is a random base36 string.
// The suffix space is small, so the unique index on sr_number remains the
// final arbiter against collisions.
func GenerateSRNumber(prefix string, now time.Time) (string, error) {
	var suffix strings.Builder
	for i := 0; i < srSuffixLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(base36Alphabet))))
		if err != nil {
			return "", fmt.Errorf("generate sr suffix: %w", err)
		}
		suffix.WriteByte(base36Alphabet[n.Int64()])
	}
	return fmt.Sprintf("%s-SR-%d-%s", strings.ToUpper(prefix), now.Year(), suffix.String()), nil
}

// applyLifecycleDefaults fills warranty and disposal projections from the
// purchase date when the caller left them unset. One year of warranty and a
// three-year replacement cycle.
func applyLifecycleDefaults(a *Asset) {
	if a.PurchaseDate == nil {
		return
	}
	if a.WarrantyExpiry == nil {
		warranty := a.PurchaseDate.AddDate(1, 0, 0)
		a.WarrantyExpiry = &warranty
	}
	if a.DisposalDate == nil {
		disposal := a.PurchaseDate.AddDate(3, 0, 0)
		a.DisposalDate = &disposal
	}
}
