package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadStringDecodesClosedOptionSet(t *testing.T) {
	doc := `
strict_mode = false
preserve_comments = true
debug_trace = false
max_input_bytes = 2048
max_translate_duration_ms = 500
`
	opts, err := LoadString(doc)
	assert.NoError(t, err)
	assert.True(t, opts.PreserveComments)
	assert.Equal(t, 2048, opts.MaxInputBytes)
	assert.Equal(t, 500, opts.MaxTranslateDurationMS)
}

func TestLoadStringRejectsMalformedToml(t *testing.T) {
	_, err := LoadString("not = valid = toml = =")
	assert.Error(t, err)
}

func TestLoadStringDefaultsWhenFieldsAbsent(t *testing.T) {
	opts, err := LoadString("")
	assert.NoError(t, err)
	assert.False(t, opts.PreserveComments)
	assert.Equal(t, 0, opts.MaxInputBytes)
}
