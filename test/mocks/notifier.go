package mocks

import (
	"sync"

	"github.com/toh-yonetim/dashboard/internal/discord"
)

// MockNotifier records action logs instead of delivering them
type MockNotifier struct {
	mu   sync.Mutex
	logs []discord.Log
}

// Notify records the log
func (m *MockNotifier) Notify(l discord.Log) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, l)
}

// Logs returns the recorded logs in order
func (m *MockNotifier) Logs() []discord.Log {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]discord.Log(nil), m.logs...)
}

// Last returns the most recent log, or a zero Log if none was recorded
func (m *MockNotifier) Last() discord.Log {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.logs) == 0 {
		return discord.Log{}
	}
	return m.logs[len(m.logs)-1]
}
