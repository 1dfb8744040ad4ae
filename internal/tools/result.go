package tools

import (
	"encoding/json"
	"fmt"

	"telekom-gateway/internal/gateway"
	"telekom-gateway/pkg/logger"
)

// ErrorResult is what a failed tool call returns to the agent. Failures are
// reported as results so a running graph is not interrupted.
type ErrorResult struct {
	Success  bool   `json:"success"`
	Error    string `json:"error"`
	Kind     string `json:"kind,omitempty"`
	ToolName string `json:"tool_name"`
}

type successResult struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func errorResult(toolName string, err error) string {
	res := ErrorResult{
		Success:  false,
		Error:    err.Error(),
		Kind:     string(gateway.KindOf(err)),
		ToolName: toolName,
	}

	data, mErr := json.Marshal(res)
	if mErr != nil {
		logger.Errorf("Failed to marshal error result for tool %s: %v", toolName, mErr)
		return fmt.Sprintf(`{"success":false,"error":%q,"tool_name":%q}`, err.Error(), toolName)
	}
	return string(data)
}

func dataResult(payload json.RawMessage) (string, error) {
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	} else if !json.Valid(payload) {
		quoted, err := json.Marshal(string(payload))
		if err != nil {
			return "", fmt.Errorf("failed to marshal result: %w", err)
		}
		payload = quoted
	}
	data, err := json.Marshal(successResult{Success: true, Data: payload})
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(data), nil
}

// IsErrorResult reports whether resultText is a failed tool result.
func IsErrorResult(resultText string) (bool, *ErrorResult) {
	var res ErrorResult
	if err := json.Unmarshal([]byte(resultText), &res); err != nil {
		return false, nil
	}
	if !res.Success && res.Error != "" {
		return true, &res
	}
	return false, nil
}
