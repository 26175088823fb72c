package assist

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkroomhq/inkroom/internal/providers"
)

// Call is one recorded model call, kept for traceability and the manual
// retry UI. Records live only for the session.
type Call struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	LatencyMs int       `json:"latency_ms"`

	// Feature identifies the assist operation that issued the call.
	Feature string `json:"feature"`

	Provider string `json:"provider"`
	Model    string `json:"model"`

	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`

	Response string `json:"response"`

	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// DefaultCallLogCapacity bounds the in-memory call history.
const DefaultCallLogCapacity = 200

// CallLog is a bounded, newest-first record of model calls.
type CallLog struct {
	mu       sync.RWMutex
	capacity int
	calls    []Call
}

// NewCallLog creates a call log. capacity <= 0 uses the default.
func NewCallLog(capacity int) *CallLog {
	if capacity <= 0 {
		capacity = DefaultCallLogCapacity
	}
	return &CallLog{capacity: capacity}
}

// Record captures a ChatResult under the given feature key.
func (l *CallLog) Record(result *providers.ChatResult, feature string) {
	call := Call{
		ID:           uuid.New().String(),
		Timestamp:    time.Now(),
		LatencyMs:    int(result.ExecutionTime.Milliseconds()),
		Feature:      feature,
		Provider:     result.Provider,
		Model:        result.ModelUsed,
		InputTokens:  result.PromptTokens,
		OutputTokens: result.CompletionTokens,
		Response:     result.Content,
		Success:      result.Success,
	}
	if !result.Success {
		call.Error = result.ErrorMessage
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
	if len(l.calls) > l.capacity {
		l.calls = l.calls[len(l.calls)-l.capacity:]
	}
}

// List returns up to limit records, newest first. limit <= 0 returns all.
func (l *CallLog) List(limit int) []Call {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := len(l.calls)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]Call, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, l.calls[i])
	}
	return out
}

// Get returns a record by id.
func (l *CallLog) Get(id string) (Call, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i := len(l.calls) - 1; i >= 0; i-- {
		if l.calls[i].ID == id {
			return l.calls[i], true
		}
	}
	return Call{}, false
}
