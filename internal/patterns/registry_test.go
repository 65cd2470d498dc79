package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetCommandPattern(t *testing.T) {
	r := NewRegistry()
	res, ok := r.Analyze("value.bind")
	assert.True(t, ok)
	assert.Equal(t, "PART.PART", res.Syntax)
	assert.Equal(t, "value", res.Target)
	assert.Equal(t, "bind", res.Command)
}

func TestBindShorthand(t *testing.T) {
	r := NewRegistry()
	res, ok := r.Analyze(":show")
	assert.True(t, ok)
	assert.Equal(t, "show", res.Target)
	assert.Equal(t, "bind", res.Command)
}

func TestTriggerShorthand(t *testing.T) {
	r := NewRegistry()
	res, ok := r.Analyze("@click")
	assert.True(t, ok)
	assert.Equal(t, "click", res.Target)
	assert.Equal(t, "trigger", res.Command)
}

func TestTriggerModifier(t *testing.T) {
	r := NewRegistry()
	res, ok := r.Analyze("@click:once")
	assert.True(t, ok)
	assert.Equal(t, "click", res.Target)
	assert.Equal(t, "trigger", res.Command)
	assert.Equal(t, []string{"click", "once"}, res.Parts)
}

func TestNoMatchForPlainAttribute(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Analyze("disabled")
	assert.False(t, ok)
}

func TestRegisterPatternPanicsAfterFreeze(t *testing.T) {
	r := NewRegistry()
	r.Analyze("value.bind")
	assert.Panics(t, func() {
		r.RegisterPattern("PART$PART", targetCommandHandler)
	})
}

func TestAnalyzeMemoizesButHandlerRunsAgain(t *testing.T) {
	calls := 0
	r := NewRegistry()
	r.RegisterPattern("PART!custom", func(name string, parts []string) Result {
		calls++
		return Result{Target: parts[0], Command: "custom"}
	})
	_, _ = r.Analyze("foo!custom")
	_, _ = r.Analyze("foo!custom")
	assert.Equal(t, 2, calls)
}

func TestPartMustBeNonEmpty(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Analyze(".bind")
	assert.False(t, ok)
}
