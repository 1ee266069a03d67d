package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringOrNil(t *testing.T) {
	assert.Nil(t, StringOrNil(""))
	assert.Nil(t, StringOrNil("   "))

	v := StringOrNil("  Rossi ")
	if assert.NotNil(t, v) {
		assert.Equal(t, "Rossi", *v)
	}
}

func TestOrZero(t *testing.T) {
	assert.Equal(t, "", OrZero[string](nil))
	assert.Equal(t, "LEGA A", OrZero(StringOrNil("LEGA A")))
}
