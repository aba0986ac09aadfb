package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint_Deterministic(t *testing.T) {
	text := "Mula Daily Digest - Oct 1\n\nHello world"

	first := Fingerprint(text)
	second := Fingerprint(text)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestFingerprint_EmptyTextSentinel(t *testing.T) {
	assert.Equal(t, EmptyFingerprint, Fingerprint(""))
}

func TestFingerprint_DistinctText(t *testing.T) {
	a := Fingerprint("Hello world")
	b := Fingerprint("Hello world!")
	c := Fingerprint("hello world")

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, b, c)
}

func TestFingerprint_SingleCharacter(t *testing.T) {
	// Accumulator after one step is the character code itself.
	assert.Equal(t, "97", Fingerprint("a"))
}

func TestFingerprint_LongTextStaysBounded(t *testing.T) {
	long := make([]byte, 0, 64*1024)
	for i := 0; i < 64*1024; i++ {
		long = append(long, byte('a'+i%26))
	}

	fp := Fingerprint(string(long))

	// A 32-bit signed accumulator never renders longer than "-2147483648".
	assert.LessOrEqual(t, len(fp), 11)
	assert.Equal(t, fp, Fingerprint(string(long)))
}
