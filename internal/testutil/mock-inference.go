package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"answer-relay-service/internal/core/domain"
)

// MockInferenceClient is a mock of ports.InferenceClient.
type MockInferenceClient struct {
	mock.Mock
}

func (m *MockInferenceClient) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockInferenceClient) Generate(ctx context.Context, question, selector string) (string, error) {
	args := m.Called(ctx, question, selector)
	return args.String(0), args.Error(1)
}

func (m *MockInferenceClient) IsAvailable(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockInferenceClient) Models() domain.ModelList {
	args := m.Called()
	return args.Get(0).(domain.ModelList)
}

// MockAvailabilityProber is a mock of ports.AvailabilityProber.
type MockAvailabilityProber struct {
	mock.Mock
}

func (m *MockAvailabilityProber) IsAlive(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockAvailabilityProber) ModelInstalled(ctx context.Context, name string) bool {
	args := m.Called(ctx, name)
	return args.Bool(0)
}
