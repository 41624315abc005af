package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	fallback := Nop{}
	assert.Equal(t, Logger(fallback), FromContext(context.Background(), fallback))

	var buf bytes.Buffer
	reqLog := NewJSONLogger(&buf, "info").With("request_id", "r-1")
	ctx := NewContext(context.Background(), reqLog)

	FromContext(ctx, fallback).Info(ctx, "handled")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "r-1", lines[0]["request_id"])
}
