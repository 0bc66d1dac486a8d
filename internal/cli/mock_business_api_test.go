package cli

import (
	"context"

	"worktime/internal/api"
	"worktime/internal/domain"
)

// mockBusinessAPI delegates to a real API and lets tests override single calls
type mockBusinessAPI struct {
	api.BusinessAPI

	startWorkFunc func(ctx context.Context) (*api.Status, error)
	stopWorkFunc  func(ctx context.Context) (*domain.TimeEntry, error)
	reloadCalls   int
}

func (m *mockBusinessAPI) StartWork(ctx context.Context) (*api.Status, error) {
	if m.startWorkFunc != nil {
		return m.startWorkFunc(ctx)
	}
	return m.BusinessAPI.StartWork(ctx)
}

func (m *mockBusinessAPI) StopWork(ctx context.Context) (*domain.TimeEntry, error) {
	if m.stopWorkFunc != nil {
		return m.stopWorkFunc(ctx)
	}
	return m.BusinessAPI.StopWork(ctx)
}

func (m *mockBusinessAPI) Reload(ctx context.Context) error {
	m.reloadCalls++
	return m.BusinessAPI.Reload(ctx)
}
