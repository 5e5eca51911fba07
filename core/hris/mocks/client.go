package mocks

import (
	"context"

	"hr-eval/core/hris"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of hris.Client
type Client struct {
	mock.Mock
}

func (m *Client) FetchEmployees(ctx context.Context) ([]hris.Employee, error) {
	args := m.Called(ctx)
	if emps, ok := args.Get(0).([]hris.Employee); ok {
		return emps, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) FetchRanks(ctx context.Context) ([]hris.RefEntry, error) {
	args := m.Called(ctx)
	if entries, ok := args.Get(0).([]hris.RefEntry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) FetchDepartments(ctx context.Context) ([]hris.RefEntry, error) {
	args := m.Called(ctx)
	if entries, ok := args.Get(0).([]hris.RefEntry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}
