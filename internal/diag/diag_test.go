package diag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestReportCarriesKind(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := New(zap.New(core))

	r.Report(KindShaderCompile, errors.New("0:1: syntax error"))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "shader_compile", entries[0].ContextMap()["kind"])
	assert.Contains(t, entries[0].ContextMap()["error"], "syntax error")
}

func TestReportWithoutCause(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := New(zap.New(core))

	r.Report(KindInvalidViewport, nil)

	entries := logs.All()
	require.Len(t, entries, 1)
	_, hasErr := entries[0].ContextMap()["error"]
	assert.False(t, hasErr)
}

func TestNilReporterIsSafe(t *testing.T) {
	var r *Reporter
	r.Report(KindUnsupportedContext, errors.New("no context"))

	New(nil).Report(KindUnsupportedContext, nil)
}
