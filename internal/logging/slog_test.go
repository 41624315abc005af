package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeLines parses JSON log output into one map per line.
func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var m map[string]any
		require.NoError(t, dec.Decode(&m))
		lines = append(lines, m)
	}
	return lines
}

func TestSlogLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, "debug")
	ctx := context.Background()

	log.Debug(ctx, "loading config", "path", "server.json")
	log.Info(ctx, "listening", "addr", ":8080")
	log.Warn(ctx, "slow query", "ms", 250)
	log.Error(ctx, "store failed", "item_id", "i-1")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 4)

	want := []struct{ level, msg, key string }{
		{"DEBUG", "loading config", "path"},
		{"INFO", "listening", "addr"},
		{"WARN", "slow query", "ms"},
		{"ERROR", "store failed", "item_id"},
	}
	for i, w := range want {
		assert.Equal(t, w.level, lines[i]["level"])
		assert.Equal(t, w.msg, lines[i]["msg"])
		assert.Contains(t, lines[i], w.key)
	}
}

func TestSlogLogger_WithIsSticky(t *testing.T) {
	var buf bytes.Buffer
	base := NewJSONLogger(&buf, "info")
	reqLog := base.With("request_id", "r-7", "user_id", "u-1")
	ctx := context.TODO()

	reqLog.Info(ctx, "item created", "item_id", "i-9")
	base.Info(ctx, "unscoped")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "r-7", lines[0]["request_id"])
	assert.Equal(t, "u-1", lines[0]["user_id"])
	assert.Equal(t, "i-9", lines[0]["item_id"])
	assert.NotContains(t, lines[1], "request_id")
}

func TestNewSlogLogger_WrapsGivenLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	l.Info(context.Background(), "text handler", "k", "v")
	assert.Contains(t, buf.String(), "msg=\"text handler\" k=v")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNewJSONLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, "warn")
	ctx := context.Background()

	log.Info(ctx, "hidden")
	log.Warn(ctx, "shown", "item_id", "i-1")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["msg"])
	assert.Equal(t, "i-1", lines[0]["item_id"])
}

func TestNop_SatisfiesLogger(t *testing.T) {
	var l Logger = Nop{}
	l.With("k", "v").Info(context.Background(), "nothing")
}
