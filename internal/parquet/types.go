package parquet

import (
	"fmt"
	"math/big"
	"strings"
)

// DecimalStringToInt converts a decimal string like "-12.34" into its
// unscaled integer representation (-1234 at scale 2).
func DecimalStringToInt(decimalStr string, precision, scale int) (*big.Int, error) {
	negative := strings.HasPrefix(decimalStr, "-")
	if negative {
		decimalStr = decimalStr[1:]
	}

	parts := strings.Split(decimalStr, ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("invalid decimal string format: %q", decimalStr)
	}

	integerPart := parts[0]
	fractionalPart := ""
	if len(parts) == 2 {
		fractionalPart = parts[1]
	}

	// Pad or truncate the fractional part to match the scale.
	if len(fractionalPart) < scale {
		fractionalPart += strings.Repeat("0", scale-len(fractionalPart))
	} else if len(fractionalPart) > scale {
		fractionalPart = fractionalPart[:scale]
	}

	unscaled := new(big.Int)
	if _, ok := unscaled.SetString(integerPart+fractionalPart, 10); !ok {
		return nil, fmt.Errorf("invalid number format: %q", decimalStr)
	}

	if negative {
		unscaled.Neg(unscaled)
	}

	return unscaled, nil
}

// StringToDecimalByteArray converts a decimal string into the big-endian
// two's-complement byte array the parquet DECIMAL BYTE_ARRAY encoding
// requires.
func StringToDecimalByteArray(decimalStr string, precision, scale int) ([]byte, error) {
	unscaled, err := DecimalStringToInt(decimalStr, precision, scale)
	if err != nil {
		return nil, err
	}

	negative := unscaled.Sign() < 0
	if negative {
		unscaled = new(big.Int).Neg(unscaled)
	}

	byteSize := (precision + 1) / 2
	bs := unscaled.Bytes()
	if len(bs) > byteSize {
		return nil, fmt.Errorf("decimal %q overflows precision %d", decimalStr, precision)
	}

	padded := make([]byte, byteSize)
	copy(padded[byteSize-len(bs):], bs)

	if negative {
		for i := range padded {
			padded[i] ^= 0xff
		}
		for i := len(padded) - 1; i >= 0; i-- {
			padded[i]++
			if padded[i] != 0 {
				break
			}
		}
	}

	return padded, nil
}
