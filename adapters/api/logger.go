package api

import (
	"log"
	"sync"
	"time"
)

// HTTPLogger provides debug logging for outgoing requests. It is disabled
// by default; error signaling stays entirely in returned errors, this is a
// trace for development.
type HTTPLogger struct {
	enabled bool
	mu      sync.RWMutex
}

// NewHTTPLogger creates a new HTTP logger.
func NewHTTPLogger(enabled bool) *HTTPLogger {
	return &HTTPLogger{enabled: enabled}
}

// IsEnabled returns whether request logging is enabled.
func (l *HTTPLogger) IsEnabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.enabled
}

// SetEnabled enables or disables request logging.
func (l *HTTPLogger) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

// LogRequest logs a completed request with its status and duration.
func (l *HTTPLogger) LogRequest(method, url string, duration time.Duration, status int) {
	if !l.IsEnabled() {
		return
	}
	log.Printf("[HTTP] [%.2fms] [%d] %s %s",
		float64(duration.Nanoseconds())/1e6, status, method, url)
}

// LogError logs a request that failed before producing a response.
func (l *HTTPLogger) LogError(method, url string, duration time.Duration, err error) {
	if !l.IsEnabled() {
		return
	}
	log.Printf("[HTTP] [%.2fms] [ERROR] %s %s - %v",
		float64(duration.Nanoseconds())/1e6, method, url, err)
}
