package server

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/df07/go-raytracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// Console keeps the most recent render log messages
type Console struct {
	mu       sync.Mutex
	messages []ConsoleMessage
	limit    int
}

// NewConsole creates a console holding at most limit messages
func NewConsole(limit int) *Console {
	if limit < 1 {
		limit = 1
	}
	return &Console{limit: limit}
}

// Add appends a message, dropping the oldest once the limit is reached
func (c *Console) Add(msg ConsoleMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
	if over := len(c.messages) - c.limit; over > 0 {
		c.messages = append(c.messages[:0], c.messages[over:]...)
	}
}

// Recent returns a copy of the retained messages, oldest first
func (c *Console) Recent() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ConsoleMessage(nil), c.messages...)
}

// WebLogger implements core.Logger by writing to the server log and a console
type WebLogger struct {
	renderID string
	console  *Console
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, console *Console) core.Logger {
	return &WebLogger{
		renderID: renderID,
		console:  console,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")

	log.Printf("[%s] %s", wl.renderID, message)

	if wl.console != nil {
		wl.console.Add(ConsoleMessage{
			RenderID:  wl.renderID,
			Message:   message,
			Timestamp: time.Now(),
			Level:     "info",
		})
	}
}
