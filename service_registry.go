package main

import (
	"context"
	"fmt"
	"sync"
)

// Service is the lifecycle every registered component implements.
type Service interface {
	// Name identifies the service in logs and errors
	Name() string
	// Initialize runs after all dependencies are wired
	Initialize(ctx context.Context) error
	// Shutdown releases resources
	Shutdown() error
}

// serviceEntry is the registry's bookkeeping for one service
type serviceEntry struct {
	service  Service
	name     string
	critical bool // a failed critical service aborts startup
	healthy  bool
	lastErr  error
}

// ServiceStatus is reported by /healthz.
type ServiceStatus struct {
	Name     string `json:"name"`
	Critical bool   `json:"critical"`
	Healthy  bool   `json:"healthy"`
	Error    string `json:"error,omitempty"`
}

// ServiceRegistry owns every service instance
type ServiceRegistry struct {
	ctx      context.Context
	logger   func(string)
	services []serviceEntry     // registration order
	byName   map[string]Service // lookup by name
	mu       sync.RWMutex
}

// NewServiceRegistry creates an empty registry
func NewServiceRegistry(ctx context.Context, logger func(string)) *ServiceRegistry {
	if logger == nil {
		logger = func(string) {}
	}
	return &ServiceRegistry{
		ctx:      ctx,
		logger:   logger,
		services: make([]serviceEntry, 0),
		byName:   make(map[string]Service),
	}
}

// Register adds a non-critical service. Duplicate names are rejected.
func (r *ServiceRegistry) Register(svc Service) error {
	return r.register(svc, false)
}

// RegisterCritical adds a service whose initialization failure stops startup.
func (r *ServiceRegistry) RegisterCritical(svc Service) error {
	return r.register(svc, true)
}

func (r *ServiceRegistry) register(svc Service, critical bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := svc.Name()
	if _, exists := r.byName[name]; exists {
		return WrapError("ServiceRegistry", "Register", fmt.Errorf("service %q already registered", name))
	}

	r.services = append(r.services, serviceEntry{
		service:  svc,
		name:     name,
		critical: critical,
	})
	r.byName[name] = svc
	return nil
}

// Get looks a service up by name; callers do the type assertion. Thread safe.
func (r *ServiceRegistry) Get(name string) (Service, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	svc, ok := r.byName[name]
	return svc, ok
}

// Names lists services in registration order.
func (r *ServiceRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.services))
	for i, e := range r.services {
		names[i] = e.name
	}
	return names
}

// InitializeAll initializes services in registration order.
// A critical failure returns immediately; other failures are logged and the
// service is marked unhealthy.
func (r *ServiceRegistry) InitializeAll() error {
	r.mu.RLock()
	entries := make([]serviceEntry, len(r.services))
	copy(entries, r.services)
	r.mu.RUnlock()

	for i, entry := range entries {
		err := entry.service.Initialize(r.ctx)
		r.setStatus(i, err)
		if err != nil {
			if entry.critical {
				r.logger(fmt.Sprintf("Critical service %q failed to initialize: %v", entry.name, err))
				return WrapError("ServiceRegistry", "InitializeAll", fmt.Errorf("critical service %q failed: %w", entry.name, err))
			}
			r.logger(fmt.Sprintf("Non-critical service %q failed to initialize (degraded): %v", entry.name, err))
		}
	}
	return nil
}

func (r *ServiceRegistry) setStatus(i int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[i].healthy = err == nil
	r.services[i].lastErr = err
}

// Health reports the initialization outcome of every service.
func (r *ServiceRegistry) Health() []ServiceStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ServiceStatus, 0, len(r.services))
	for _, e := range r.services {
		st := ServiceStatus{Name: e.name, Critical: e.critical, Healthy: e.healthy}
		if e.lastErr != nil {
			st.Error = e.lastErr.Error()
		}
		out = append(out, st)
	}
	return out
}

// ShutdownAll shuts services down in reverse registration order.
// Errors are logged and do not stop the remaining shutdowns.
func (r *ServiceRegistry) ShutdownAll() {
	r.mu.RLock()
	entries := make([]serviceEntry, len(r.services))
	copy(entries, r.services)
	r.mu.RUnlock()

	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		if err := entry.service.Shutdown(); err != nil {
			r.logger(fmt.Sprintf("Service %q shutdown error: %v", entry.name, err))
		}
	}
}
