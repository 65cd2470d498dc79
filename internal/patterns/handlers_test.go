package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerByNameKnownShapes(t *testing.T) {
	for _, name := range []string{"target-command", "bind-implicit", "trigger-implicit", "trigger-modifier"} {
		_, ok := HandlerByName(name)
		assert.True(t, ok, "expected a handler for %q", name)
	}
}

func TestHandlerByNameUnknown(t *testing.T) {
	_, ok := HandlerByName("nonexistent")
	assert.False(t, ok)
}
