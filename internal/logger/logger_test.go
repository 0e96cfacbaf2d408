package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Run("json output honours level", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(WithOutput(&buf), WithLevel("info"), WithConsoleWriter(false))

		log.Debug().Msg("hidden")
		log.Info().Str("step", "basicInfo").Msg("step advanced")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, `"message":"step advanced"`)
		assert.Contains(t, out, `"step":"basicInfo"`)
	})

	t.Run("console writer drops timestamp and level", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(WithOutput(&buf), WithLevel("debug"), WithConsoleWriter(true))

		log.Info().Msg("pretty message")

		out := buf.String()
		assert.Contains(t, out, "pretty message")
		assert.NotContains(t, out, "INF")
		assert.False(t, strings.HasPrefix(out, "{"))
	})

	t.Run("component tags entries", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(WithOutput(&buf), WithConsoleWriter(false), WithComponent("wizard"))

		log.Info().Msg("submitted")
		assert.Contains(t, buf.String(), `"component":"wizard"`)
	})
}

func TestFieldsWrapperMasksSecrets(t *testing.T) {
	var buf bytes.Buffer
	log := New(WithOutput(&buf), WithLevel("debug"), WithConsoleWriter(false))

	log.Info().
		Object("payload", FieldsWrapper{Fields: map[string]any{
			"brand":        "Acme",
			"tags":         []string{"green", "tech"},
			"acceptTerms":  true,
			"password":     "hunter2",
			"access_token": "secret-token",
		}}).
		Msg("Submitting")
	out := buf.String()

	assert.Contains(t, out, `"brand":"Acme"`)
	assert.Contains(t, out, `"tags":["green","tech"]`)
	assert.Contains(t, out, `"password":"[REDACTED]"`)
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "secret-token")
	assert.Less(t, strings.Index(out, "acceptTerms"), strings.Index(out, "brand"))
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		"debug":    zerolog.DebugLevel,
		"info":     zerolog.InfoLevel,
		"warn":     zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"off":      zerolog.Disabled,
		"disabled": zerolog.Disabled,
		"loud":     zerolog.InfoLevel,
	} {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestNewConsoleLoggerReadsLevelFromEnv(t *testing.T) {
	t.Setenv(EnvVarLogLevel, "error")
	assert.Equal(t, zerolog.ErrorLevel, NewConsoleLogger().GetLevel())

	t.Setenv(EnvVarLogLevel, "")
	assert.Equal(t, zerolog.InfoLevel, NewConsoleLogger().GetLevel())
}
