package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeError(t *testing.T) {
	base := errors.New("invalid number")
	err := MakeError(base, "%q at %v", "0xZZ", 3)

	assert.ErrorIs(t, err, base)
	assert.EqualError(t, err, `invalid number: "0xZZ" at 3`)
}
