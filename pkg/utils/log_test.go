package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	out := new(bytes.Buffer)
	Log(out, "Scanning...")
	Logf(out, "Found: %s", "Joy-Con (L)")
	assert.Equal(t, "==> Scanning...\n==> Found: Joy-Con (L)\n", out.String())

	assert.NotPanics(t, func() {
		Log(nil, "ignored")
	})
}
