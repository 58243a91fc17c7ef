package engine

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/autodraft/internal/champion"
)

// --- MockActionClient ---

type MockActionClient struct {
	mock.Mock
}

func (m *MockActionClient) SubmitAction(ctx context.Context, actionID int64, championID champion.ID, completed bool) error {
	args := m.Called(ctx, actionID, championID, completed)
	return args.Error(0)
}

func (m *MockActionClient) AcceptReadyCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockChecker ---

type MockChecker struct {
	mock.Mock
}

func (m *MockChecker) CheckStarted(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}
