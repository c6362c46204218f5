package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		msg      string
		fields   []zapcore.Field
		contains string
	}{
		{"Launch state changed", []zapcore.Field{zap.String("state", "Broadcasting")}, "Broadcasting"},
		{"Launch failed", []zapcore.Field{zap.String("reason", "rejected")}, "rejected"},
		{"Launch completed", []zapcore.Field{zap.String("symbol", "CAT")}, "CAT"},
		{"Transaction broadcast", []zapcore.Field{zap.String("signature", "5VERYLONGSIGNATUREVALUE1234567890")}, "5VERYLON...34567890"},
		{"something else", nil, "something else"},
	}

	for _, tt := range tests {
		assert.Contains(t, FormatMessage(tt.msg, tt.fields...), tt.contains)
	}
}

func TestFieldFilterCoreDropsFields(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(&FieldFilterCore{core: obs}).With(zap.String("state", "Done"))

	log.Info("Launch state changed", zap.String("extra", "x"))

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Contains(t, entries[0].Message, "Done")
		assert.Empty(t, entries[0].Context)
	}
}

func TestShorten(t *testing.T) {
	assert.Equal(t, "abc", shortenAddress("abc"))
	assert.Equal(t, "So11...1112", shortenAddress("So11111111111111111111111111111111111111112"))
}
