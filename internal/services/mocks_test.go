package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/vvka-141/stamp/pkg/stamp"
)

// recordingLogger keeps every message so tests can assert on warnings.
type recordingLogger struct {
	mu    sync.Mutex
	infos []string
	warns []string
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) {}

func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Warn(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Error(format string, args ...interface{}) {}

func (l *recordingLogger) infoContaining(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, msg := range l.infos {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

type mockFileScanner struct {
	result stamp.ScanResult
	err    error
	calls  int
}

func (m *mockFileScanner) Scan(_ string, _ []string, _ []string) (stamp.ScanResult, error) {
	m.calls++
	return m.result, m.err
}
