// File: api/schemas/turn_test.go
package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTurnRequestDefaults(t *testing.T) {
	req, err := DecodeTurnRequest([]byte(`{"raw": "ACTIONS:\nfocus()"}`))
	require.NoError(t, err)

	// Execute and marks default on; everything else defaults off/zero.
	assert.True(t, req.Execute)
	assert.True(t, req.Marks)
	assert.False(t, req.Physical)
	assert.False(t, req.Sandbox)
	assert.Nil(t, req.Tools)
	assert.Zero(t, req.Width)
	assert.Equal(t, "ACTIONS:\nfocus()", req.Raw)
}

func TestDecodeTurnRequestExplicitFalse(t *testing.T) {
	req, err := DecodeTurnRequest([]byte(`{"raw": "x", "execute": false, "marks": false}`))
	require.NoError(t, err)
	assert.False(t, req.Execute)
	assert.False(t, req.Marks)
}

func TestDecodeTurnRequestFull(t *testing.T) {
	req, err := DecodeTurnRequest([]byte(`{
		"raw": "left_click(1, 2)",
		"tools": {"left_click": true, "drag": false},
		"physical_execution": true,
		"sandbox": true,
		"sandbox_reset": true,
		"width": 800,
		"height": 600
	}`))
	require.NoError(t, err)

	assert.True(t, req.Physical)
	assert.True(t, req.Sandbox)
	assert.True(t, req.SandboxReset)
	assert.Equal(t, 800, req.Width)
	assert.Equal(t, 600, req.Height)
	assert.Equal(t, map[string]bool{"left_click": true, "drag": false}, req.Tools)
}

func TestDecodeTurnRequestMalformed(t *testing.T) {
	for _, data := range []string{
		"",
		"{",
		`{"raw": 42}`,
		`not json at all`,
	} {
		_, err := DecodeTurnRequest([]byte(data))
		assert.Error(t, err, "input %q", data)
	}
}

func TestDecodeCaptureRequestDefaults(t *testing.T) {
	req, err := DecodeCaptureRequest([]byte(`{"actions": ["focus()"]}`))
	require.NoError(t, err)

	assert.True(t, req.Marks)
	assert.False(t, req.Sandbox)
	assert.Equal(t, []string{"focus()"}, req.Actions)
}

func TestDecodeCaptureRequestExplicit(t *testing.T) {
	req, err := DecodeCaptureRequest([]byte(`{
		"actions": [],
		"width": 640,
		"height": 360,
		"marks": false,
		"sandbox": true,
		"sandbox_reset": true
	}`))
	require.NoError(t, err)

	assert.False(t, req.Marks)
	assert.True(t, req.Sandbox)
	assert.True(t, req.SandboxReset)
	assert.Equal(t, 640, req.Width)
	assert.Equal(t, 360, req.Height)
}

func TestDecodeCaptureRequestMalformed(t *testing.T) {
	_, err := DecodeCaptureRequest([]byte(`{"actions": "not a list"}`))
	assert.Error(t, err)
}

func TestEncodeTurnResult(t *testing.T) {
	data, err := Encode(TurnResult{
		Executed: []string{"left_click(1, 2)"},
		Noted:    []string{},
	})
	require.NoError(t, err)

	// Field names are part of the wire contract.
	s := string(data)
	assert.Contains(t, s, `"executed"`)
	assert.Contains(t, s, `"noted"`)
	assert.Contains(t, s, `"wants_screenshot"`)
	assert.Contains(t, s, `"screenshot_b64"`)
}
