package main

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRejectsArguments(t *testing.T) {
	cmd := newCommand()
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	assert.Error(t, err)
	assert.Equal(t, "inspect-recipe", cmd.Use)
}
