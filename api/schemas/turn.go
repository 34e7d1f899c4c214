// File: api/schemas/turn.go

// Package schemas defines the turn-level wire records exchanged with the
// orchestration loop. Both directions are structured JSON, never free
// text.
package schemas

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CaptureRequest asks for one screenshot, optionally applying canonical
// action strings to the sandbox first. Width/height of 0 mean "use the
// native surface size".
type CaptureRequest struct {
	Actions      []string `json:"actions"`
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	Marks        bool     `json:"marks"`
	Sandbox      bool     `json:"sandbox"`
	SandboxReset bool     `json:"sandbox_reset"`
}

// CaptureResponse carries the encoded frame and the applied subset.
type CaptureResponse struct {
	Screenshot string   `json:"screenshot"` // base64 PNG
	Applied    []string `json:"applied"`
}

// TurnRequest is the executor-level record: raw model text in, with the
// gating switches the orchestrator controls.
type TurnRequest struct {
	Raw          string          `json:"raw"`
	Tools        map[string]bool `json:"tools"`
	Execute      bool            `json:"execute"`
	Physical     bool            `json:"physical_execution"`
	Sandbox      bool            `json:"sandbox"`
	SandboxReset bool            `json:"sandbox_reset"`
	Width        int             `json:"width"`
	Height       int             `json:"height"`
	Marks        bool            `json:"marks"`
}

// TurnResult reports what actually happened this turn.
type TurnResult struct {
	Executed        []string `json:"executed"`
	Noted           []string `json:"noted"`
	WantsScreenshot bool     `json:"wants_screenshot"`
	Screenshot      string   `json:"screenshot_b64"`
}

// DecodeCaptureRequest parses a capture request. A malformed record is
// fatal to the caller: guessing defaults here would silently corrupt
// downstream sandbox state. Absent optional fields keep their documented
// defaults (marks on).
func DecodeCaptureRequest(data []byte) (CaptureRequest, error) {
	aux := struct {
		Actions      []string `json:"actions"`
		Width        int      `json:"width"`
		Height       int      `json:"height"`
		Marks        *bool    `json:"marks"`
		Sandbox      bool     `json:"sandbox"`
		SandboxReset bool     `json:"sandbox_reset"`
	}{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return CaptureRequest{}, fmt.Errorf("schemas: malformed capture request: %w", err)
	}
	req := CaptureRequest{
		Actions:      aux.Actions,
		Width:        aux.Width,
		Height:       aux.Height,
		Marks:        true,
		Sandbox:      aux.Sandbox,
		SandboxReset: aux.SandboxReset,
	}
	if aux.Marks != nil {
		req.Marks = *aux.Marks
	}
	return req, nil
}

// DecodeTurnRequest parses a turn request; execute and marks default on.
func DecodeTurnRequest(data []byte) (TurnRequest, error) {
	aux := struct {
		Raw          string          `json:"raw"`
		Tools        map[string]bool `json:"tools"`
		Execute      *bool           `json:"execute"`
		Physical     bool            `json:"physical_execution"`
		Sandbox      bool            `json:"sandbox"`
		SandboxReset bool            `json:"sandbox_reset"`
		Width        int             `json:"width"`
		Height       int             `json:"height"`
		Marks        *bool           `json:"marks"`
	}{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return TurnRequest{}, fmt.Errorf("schemas: malformed turn request: %w", err)
	}
	req := TurnRequest{
		Raw:          aux.Raw,
		Tools:        aux.Tools,
		Execute:      true,
		Physical:     aux.Physical,
		Sandbox:      aux.Sandbox,
		SandboxReset: aux.SandboxReset,
		Width:        aux.Width,
		Height:       aux.Height,
		Marks:        true,
	}
	if aux.Execute != nil {
		req.Execute = *aux.Execute
	}
	if aux.Marks != nil {
		req.Marks = *aux.Marks
	}
	return req, nil
}

// Encode marshals any wire record.
func Encode(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("schemas: encode: %w", err)
	}
	return data, nil
}
