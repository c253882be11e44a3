// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/reconciliation-service/internal/domain/model"
)

// MockReconciler is a mock of service.Reconciler.
type MockReconciler struct {
	mock.Mock
}

// NewMockReconciler creates a mock that asserts its expectations on cleanup.
func NewMockReconciler(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockReconciler {
	m := &MockReconciler{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockReconciler) Reconcile(ctx context.Context, input model.ReconcileInput) model.Report {
	args := m.Called(ctx, input)
	return args.Get(0).(model.Report)
}
