package utils

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// Formats an unsigned value as uppercase hexadecimal digits, without prefix or padding
func FormatHex[T constraints.Unsigned](value T) string {
	return strings.ToUpper(strconv.FormatUint(uint64(value), 16))
}

// Formats an unsigned value as uppercase hexadecimal digits left-padded with zeros to a given width
func FormatHexPadded[T constraints.Unsigned](value T, digits int) string {
	return fmt.Sprintf("%0*X", digits, uint64(value))
}

// Returns an string containing all formatted sequence items separated by a given separator
func FormatSlice[T any](input []T, separator string) string {
	var builder strings.Builder

	for i, value := range input {
		builder.WriteString(fmt.Sprint(value))

		if i < len(input)-1 {
			builder.WriteString(separator)
		}
	}

	return builder.String()
}
