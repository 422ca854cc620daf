package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatchStatesOmitsFalse(t *testing.T) {
	bits := uint32(StateVisible) | uint32(StateEnabled) | uint32(StateChecked)
	states := NewMatchStates(bits)

	assert.True(t, states.Visible)
	assert.True(t, states.Enabled)
	require.NotNil(t, states.Checked)
	assert.True(t, *states.Checked)
	assert.Nil(t, states.Expanded)
	assert.Nil(t, states.Focused)
	assert.Nil(t, states.Selected)
}

func TestMatchStatesJSONOmitsUnsetFlags(t *testing.T) {
	states := NewMatchStates(uint32(StateVisible))
	data, err := json.Marshal(states)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Contains(t, raw, "visible")
	assert.Contains(t, raw, "enabled")
	assert.NotContains(t, raw, "checked")
	assert.NotContains(t, raw, "expanded")
	assert.NotContains(t, raw, "focused")
	assert.NotContains(t, raw, "selected")
}
