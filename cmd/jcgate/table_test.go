package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable(t *testing.T) {
	tbl := newTable("CAPABILITY", "STATE")
	tbl.add("location service", "missing").add("ready", "no")

	assert.Equal(t, ""+
		"CAPABILITY         STATE\n"+
		"location service   missing\n"+
		"ready              no\n", tbl.string())
}
