package fake

import (
	"sync"
)

type (
	// Message is a recorded log message
	Message struct {
		Prefix   string
		Value    uint32
		HasValue bool
	}

	// Logger records every debug message
	Logger struct {
		mu       sync.Mutex
		messages []Message
	}
)

// NewLogger creates a new instance of Logger
//
// Returns:
//
// An instance of Logger with no recorded message
func NewLogger() *Logger {
	return &Logger{}
}

// Debug records a message without a value.
func (l *Logger) Debug(prefix []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, Message{Prefix: string(prefix)})
}

// DebugUint32 records a message with a value.
func (l *Logger) DebugUint32(prefix []byte, value uint32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, Message{Prefix: string(prefix), Value: value, HasValue: true})
}

// Messages returns the recorded messages.
func (l *Logger) Messages() []Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	messages := make([]Message, len(l.messages))
	copy(messages, l.messages)
	return messages
}
