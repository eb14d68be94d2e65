package utils

import (
	"fmt"
	"math/rand/v2"
)

// FacilityCode is embedded in every order identifier.
const FacilityCode = "RDA"

const suffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewOrderID builds an order identifier tied to the session token number,
// e.g. "#42-RDA-7QX1". The random suffix keeps ids unique when a token is
// reused across sessions.
func NewOrderID(tokenNumber int) string {
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = suffixAlphabet[rand.IntN(len(suffixAlphabet))]
	}
	return fmt.Sprintf("#%d-%s-%s", tokenNumber, FacilityCode, suffix)
}
