package config

import (
	"testing"

	"github.com/aurelia/aurelia-ls-sub004/internal/patterns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyAttributePatternsRegistersKnownHandlers(t *testing.T) {
	registry := patterns.NewRegistry()
	cfg := ServerConfig{
		AttributePatterns: []PatternSpec{
			{Template: "$PART", Handler: "bind-implicit"},
		},
	}

	require.NoError(t, ApplyAttributePatterns(cfg, registry))

	result, ok := registry.Analyze("$greeting")
	require.True(t, ok)
	assert.Equal(t, "greeting", result.Target)
	assert.Equal(t, "bind", result.Command)
}

func TestApplyAttributePatternsRejectsUnknownHandler(t *testing.T) {
	registry := patterns.NewRegistry()
	cfg := ServerConfig{
		AttributePatterns: []PatternSpec{
			{Template: "$PART", Handler: "nonexistent"},
		},
	}

	err := ApplyAttributePatterns(cfg, registry)
	assert.Error(t, err)
}
