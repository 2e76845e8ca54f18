package testutil

import (
	"context"
	"errors"
	"sync"
)

// ScriptedAssistant returns canned responses in order, recording each
// prompt it receives. When the script runs out it returns an error, so a
// test that makes more LLM calls than expected fails loudly.
//
// ScriptedAssistant is safe for concurrent use.
type ScriptedAssistant struct {
	mu        sync.Mutex
	responses []string
	// Prompts records every (system, user) prompt pair received.
	Prompts [][2]string
	// Err, when set, is returned instead of a response.
	Err error
}

// NewScriptedAssistant creates an assistant that replays responses in order.
func NewScriptedAssistant(responses ...string) *ScriptedAssistant {
	return &ScriptedAssistant{responses: responses}
}

// Add appends responses to the script.
func (a *ScriptedAssistant) Add(responses ...string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses = append(a.responses, responses...)
}

// Generate pops the next scripted response.
func (a *ScriptedAssistant) Generate(_ context.Context, system, prompt string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.Prompts = append(a.Prompts, [2]string{system, prompt})

	if a.Err != nil {
		return "", a.Err
	}
	if len(a.responses) == 0 {
		return "", errors.New("scripted assistant: no responses left")
	}
	resp := a.responses[0]
	a.responses = a.responses[1:]
	return resp, nil
}
