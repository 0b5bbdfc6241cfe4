package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_Levels(t *testing.T) {
	quiet, err := New(false)
	require.NoError(t, err)
	assert.False(t, quiet.Core().Enabled(zap.InfoLevel))
	assert.True(t, quiet.Core().Enabled(zap.WarnLevel))

	loud, err := New(true)
	require.NoError(t, err)
	assert.True(t, loud.Core().Enabled(zap.DebugLevel))
}
