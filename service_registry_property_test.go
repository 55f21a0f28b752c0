package main

import (
	"context"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func registerN(reg *ServiceRegistry, count int, initOrder, shutdownOrder *[]string) ([]*mockService, error) {
	services := make([]*mockService, count)
	for i := 0; i < count; i++ {
		svc := &mockService{name: fmt.Sprintf("svc-%d", i), initOrder: initOrder, shutdownOrder: shutdownOrder}
		if err := reg.Register(svc); err != nil {
			return nil, err
		}
		services[i] = svc
	}
	return services, nil
}

func TestProperty_ServiceRegistry(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("every registered service is found by name", prop.ForAll(
		func(count int) bool {
			logger, _ := newTestLogger()
			reg := NewServiceRegistry(context.Background(), logger)
			services, err := registerN(reg, count, nil, nil)
			if err != nil {
				return false
			}
			for _, svc := range services {
				got, ok := reg.Get(svc.name)
				if !ok || got != svc {
					return false
				}
			}
			_, ok := reg.Get(fmt.Sprintf("svc-%d", count))
			return !ok
		},
		gen.IntRange(1, 50),
	))

	properties.Property("initialization follows registration order", prop.ForAll(
		func(count int) bool {
			logger, _ := newTestLogger()
			reg := NewServiceRegistry(context.Background(), logger)
			var initOrder []string
			services, err := registerN(reg, count, &initOrder, nil)
			if err != nil || reg.InitializeAll() != nil || len(initOrder) != count {
				return false
			}
			for i, svc := range services {
				if initOrder[i] != svc.name {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 50),
	))

	properties.Property("a failing critical service stops initialization", prop.ForAll(
		func(count, critical int) bool {
			critical = critical % count
			logger, _ := newTestLogger()
			reg := NewServiceRegistry(context.Background(), logger)
			var initOrder []string
			for i := 0; i < count; i++ {
				svc := &mockService{name: fmt.Sprintf("svc-%d", i), initOrder: &initOrder}
				if i == critical {
					svc.initErr = fmt.Errorf("critical init error")
					_ = reg.RegisterCritical(svc)
					continue
				}
				_ = reg.Register(svc)
			}
			return reg.InitializeAll() != nil && len(initOrder) == critical+1
		},
		gen.IntRange(2, 30), gen.IntRange(0, 1000),
	))

	properties.Property("shutdown runs in reverse registration order", prop.ForAll(
		func(count int) bool {
			logger, _ := newTestLogger()
			reg := NewServiceRegistry(context.Background(), logger)
			var shutdownOrder []string
			services, err := registerN(reg, count, nil, &shutdownOrder)
			if err != nil {
				return false
			}
			reg.ShutdownAll()
			if len(shutdownOrder) != count {
				return false
			}
			for i := range services {
				if shutdownOrder[i] != services[count-1-i].name {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 50),
	))

	properties.TestingRun(t)
}
