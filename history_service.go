package main

import (
	"context"
	"fmt"
	"sync"

	"seleniumguide/config"
	"seleniumguide/history"
)

// HistoryRecorder stores and lists export outcomes.
type HistoryRecorder interface {
	Add(ctx context.Context, r *history.Record) error
	List(ctx context.Context, limit int) ([]history.Record, error)
	CountBySection(ctx context.Context) ([]history.SectionCount, error)
}

// HistoryService owns the history store. It is registered as non-critical:
// when the database cannot be opened, exports keep working without history.
type HistoryService struct {
	cfg    config.HistoryConfig
	logger func(string)

	mu    sync.RWMutex
	store *history.Store
}

// NewHistoryService creates a history service for cfg
func NewHistoryService(cfg config.HistoryConfig, logger func(string)) *HistoryService {
	if logger == nil {
		logger = func(string) {}
	}
	return &HistoryService{cfg: cfg, logger: logger}
}

// Name implements Service.
func (h *HistoryService) Name() string { return "history" }

// Initialize opens the database and applies migrations.
func (h *HistoryService) Initialize(ctx context.Context) error {
	if !h.cfg.Enabled {
		h.logger("[history] disabled by config")
		return nil
	}
	store, err := history.Open(ctx, h.cfg, h.logger)
	if err != nil {
		return WrapError("HistoryService", "Initialize", err)
	}
	h.mu.Lock()
	h.store = store
	h.mu.Unlock()
	h.logger(fmt.Sprintf("[history] using %s", h.cfg.Engine))
	return nil
}

// Shutdown closes the database.
func (h *HistoryService) Shutdown() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.store == nil {
		return nil
	}
	err := h.store.Close()
	h.store = nil
	return err
}

// Available reports whether records are being stored.
func (h *HistoryService) Available() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.store != nil
}

// Add implements HistoryRecorder. Without a store it is a no-op.
func (h *HistoryService) Add(ctx context.Context, r *history.Record) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.store == nil {
		return nil
	}
	return h.store.Add(ctx, r)
}

// List implements HistoryRecorder.
func (h *HistoryService) List(ctx context.Context, limit int) ([]history.Record, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.store == nil {
		return []history.Record{}, nil
	}
	return h.store.List(ctx, limit)
}

// CountBySection implements HistoryRecorder.
func (h *HistoryService) CountBySection(ctx context.Context) ([]history.SectionCount, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.store == nil {
		return []history.SectionCount{}, nil
	}
	return h.store.CountBySection(ctx)
}
