package envelope

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOKWithNoGapsIsExact(t *testing.T) {
	start := time.Unix(0, 0)
	b := NewBuilder("hover", start)
	env := OK(b, start.Add(5*time.Millisecond), "hello", ConfidenceExact)

	assert.Equal(t, StatusOK, env.Status)
	assert.Equal(t, "hello", env.Result)
	assert.Equal(t, ConfidenceExact, env.Epistemic.Confidence)
	assert.Empty(t, env.Epistemic.Gaps)
	assert.Equal(t, int64(5), env.Meta.DurationMs)
	assert.Equal(t, SchemaVersion, env.SchemaVersion)
	assert.Equal(t, "hover", env.Command)
}

func TestOKWithGapsDegrades(t *testing.T) {
	start := time.Unix(0, 0)
	b := NewBuilder("definition", start)
	b.AddGap("no-provenance", "no provenance edge covers this overlay span")
	env := OK(b, start, 42, ConfidenceExact)

	assert.Equal(t, StatusDegraded, env.Status)
	assert.Equal(t, ConfidencePartial, env.Epistemic.Confidence)
	assert.Len(t, env.Epistemic.Gaps, 1)
	assert.Equal(t, "no-provenance", env.Epistemic.Gaps[0].Code)
}

func TestErrorEnvelope(t *testing.T) {
	start := time.Unix(0, 0)
	b := NewBuilder("rename", start)
	env := Error[any](b, start, "unknown-session", "no session for this URI")

	assert.Equal(t, StatusError, env.Status)
	assert.Equal(t, ConfidenceUnknown, env.Epistemic.Confidence)
	require := assert.New(t)
	require.Len(env.Errors, 1)
	require.Equal("unknown-session", env.Errors[0].Code)
}

func TestHasGaps(t *testing.T) {
	b := NewBuilder("query", time.Unix(0, 0))
	assert.False(t, b.HasGaps())
	b.AddGap("x", "y")
	assert.True(t, b.HasGaps())
}
