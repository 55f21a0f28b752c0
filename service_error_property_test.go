package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// For any service and operation name, WrapError formats as
// [Service.Operation] message, keeps its fields and unwraps to the original.
func TestProperty_ServiceErrorFormat(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("Error() is [Service.Operation] message", prop.ForAll(
		func(service, operation, msg string) bool {
			wrapped := WrapError(service, operation, errors.New(msg))
			return wrapped.Error() == fmt.Sprintf("[%s.%s] %s", service, operation, msg)
		},
		gen.AnyString(), gen.AnyString(), gen.AnyString(),
	))

	properties.Property("fields are preserved and Unwrap returns the original", prop.ForAll(
		func(service, operation, msg string) bool {
			original := errors.New(msg)
			var se *ServiceError
			if !errors.As(WrapError(service, operation, original), &se) {
				return false
			}
			return se.Service == service && se.Operation == operation && se.Unwrap() == original
		},
		gen.AnyString(), gen.AnyString(), gen.AnyString(),
	))

	properties.Property("nil stays nil", prop.ForAll(
		func(service, operation string) bool {
			return WrapError(service, operation, nil) == nil
		},
		gen.AnyString(), gen.AnyString(),
	))

	properties.TestingRun(t)
}
