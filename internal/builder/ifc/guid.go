package ifc

import (
	"math/big"

	"github.com/google/uuid"
)

// ============================================================
// Compressed GUID
// ============================================================

// Алфавит IFC base64 (отличается от RFC 4648).
const guidAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_$"

var guidRadix = big.NewInt(64)

// NewGlobalID выдает 22-символьный сжатый GUID для IfcRoot.
// 128 бит uuid кодируются по основанию 64: старший символ несет
// два бита, остальные двадцать один — по шесть.
func NewGlobalID() string {
	u := uuid.New()
	return compressGUID(u)
}

func compressGUID(u uuid.UUID) string {
	n := new(big.Int).SetBytes(u[:])
	rem := new(big.Int)

	out := make([]byte, 22)
	for i := 21; i >= 0; i-- {
		n.DivMod(n, guidRadix, rem)
		out[i] = guidAlphabet[rem.Int64()]
	}
	return string(out)
}
