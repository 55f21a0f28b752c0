package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"seleniumguide/i18n"
)

// Notification levels
const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelError   = "error"
)

// Error code constants shown with error notifications
const (
	ErrorCodeSectionNotFound   = "SECTION_NOT_FOUND"
	ErrorCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	ErrorCodeExportFailed      = "EXPORT_FAILED"
	ErrorCodeInvalidSelector   = "INVALID_SELECTOR"
)

// DefaultNotificationLimit bounds how many notifications are kept.
const DefaultNotificationLimit = 100

// ErrorInfo carries the error code and recovery suggestions of an error
// notification
type ErrorInfo struct {
	Code                string   `json:"code"`
	Details             string   `json:"details,omitempty"`
	RecoverySuggestions []string `json:"recoverySuggestions"`
}

// Notification is one user-facing toast.
type Notification struct {
	ID      string     `json:"id"`
	Level   string     `json:"level"`
	Message string     `json:"message"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Time    time.Time  `json:"time"`
}

// recoverySuggestionKeys maps error codes to translated suggestions
var recoverySuggestionKeys = map[string][]string{
	ErrorCodeSectionNotFound: {
		"suggest.check_section_id",
		"suggest.list_sections",
	},
	ErrorCodeUnsupportedFormat: {
		"suggest.use_supported_format",
	},
	ErrorCodeExportFailed: {
		"suggest.try_again",
		"suggest.check_logs",
	},
	ErrorCodeInvalidSelector: {
		"suggest.check_selector_syntax",
	},
}

// NotificationCenter keeps the most recent notifications in memory, newest
// last.
type NotificationCenter struct {
	mu     sync.RWMutex
	items  []Notification
	limit  int
	lang   i18n.Language
	seq    uint64
	logger func(string)
	now    func() time.Time
}

// NewNotificationCenter creates a center that keeps at most limit entries.
func NewNotificationCenter(limit int, lang i18n.Language, logger func(string)) *NotificationCenter {
	if limit <= 0 {
		limit = DefaultNotificationLimit
	}
	if logger == nil {
		logger = func(string) {}
	}
	return &NotificationCenter{
		limit:  limit,
		lang:   lang,
		logger: logger,
		now:    time.Now,
	}
}

// Name implements Service.
func (n *NotificationCenter) Name() string { return "notifications" }

// Initialize implements Service.
func (n *NotificationCenter) Initialize(ctx context.Context) error { return nil }

// Shutdown implements Service.
func (n *NotificationCenter) Shutdown() error { return nil }

// Language returns the language notifications are written in.
func (n *NotificationCenter) Language() i18n.Language {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.lang
}

// SetLanguage switches the language of future notifications.
func (n *NotificationCenter) SetLanguage(lang i18n.Language) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.lang = lang
}

// Info publishes an informational notification.
func (n *NotificationCenter) Info(key string, params ...interface{}) Notification {
	return n.push(LevelInfo, nil, key, params...)
}

// Success publishes a success notification.
func (n *NotificationCenter) Success(key string, params ...interface{}) Notification {
	return n.push(LevelSuccess, nil, key, params...)
}

// Error publishes an error notification with recovery suggestions for code.
func (n *NotificationCenter) Error(code, details, key string, params ...interface{}) Notification {
	lang := n.Language()
	info := &ErrorInfo{Code: code, Details: details, RecoverySuggestions: make([]string, 0)}
	keys, ok := recoverySuggestionKeys[code]
	if !ok {
		keys = []string{"suggest.try_again"}
	}
	for _, k := range keys {
		info.RecoverySuggestions = append(info.RecoverySuggestions, i18n.In(lang, k))
	}
	return n.push(LevelError, info, key, params...)
}

func (n *NotificationCenter) push(level string, info *ErrorInfo, key string, params ...interface{}) Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.seq++
	item := Notification{
		ID:      fmt.Sprintf("n-%d", n.seq),
		Level:   level,
		Message: i18n.In(n.lang, key, params...),
		Error:   info,
		Time:    n.now(),
	}
	n.items = append(n.items, item)
	if len(n.items) > n.limit {
		n.items = n.items[len(n.items)-n.limit:]
	}
	n.logger(fmt.Sprintf("[notify] %s: %s", level, item.Message))
	return item
}

// Recent returns up to limit notifications, newest first. limit <= 0
// returns all of them.
func (n *NotificationCenter) Recent(limit int) []Notification {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if limit <= 0 || limit > len(n.items) {
		limit = len(n.items)
	}
	out := make([]Notification, 0, limit)
	for i := len(n.items) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, n.items[i])
	}
	return out
}

// Clear drops every notification.
func (n *NotificationCenter) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = nil
}
