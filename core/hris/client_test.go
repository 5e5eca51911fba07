package hris_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"hr-eval/core/hris"

	"github.com/stretchr/testify/assert"
)

func TestFetchEmployees(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/employees", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{
				"externalId": "E1",
				"employeeNo": "1001",
				"name": "Alice Kim",
				"email": "alice@example.com",
				"status": "ACTIVE",
				"updatedAt": "2026-01-10T09:00:00Z",
				"rank": {"externalId": "R1", "code": "SR", "name": "Senior", "level": 3},
				"department": {"code": "ENG"}
			}
		]`))
	}))
	defer srv.Close()

	client := hris.NewClient(hris.Config{BaseURL: srv.URL, ApiKey: "secret"})

	employees, err := client.FetchEmployees(context.Background())
	assert.NoError(t, err)
	assert.Len(t, employees, 1)

	emp := employees[0]
	assert.Equal(t, "E1", emp.ExternalID)
	assert.Equal(t, "1001", emp.EmployeeNo)
	assert.Equal(t, "alice@example.com", emp.Email)
	assert.NotNil(t, emp.UpdatedAt)

	// Full summary inline
	assert.True(t, emp.Rank.Present())
	assert.Equal(t, "R1", *emp.Rank.ExternalID)
	assert.Equal(t, 3, *emp.Rank.Level)

	// Code-only summary: id stays absent for the mapper to resolve
	assert.True(t, emp.Department.Present())
	assert.Nil(t, emp.Department.ExternalID)
	assert.Equal(t, "ENG", *emp.Department.Code)

	// Position omitted entirely
	assert.False(t, emp.Position.Present())
}

func TestFetchRanks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ranks", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"externalId": "R1", "code": "JR", "name": "Junior", "level": 1},
			{"externalId": "R2", "code": "SR", "name": "Senior", "level": 3}
		]`))
	}))
	defer srv.Close()

	client := hris.NewClient(hris.Config{BaseURL: srv.URL})

	ranks, err := client.FetchRanks(context.Background())
	assert.NoError(t, err)
	assert.Len(t, ranks, 2)
	assert.Equal(t, "JR", ranks[0].Code)
	assert.Equal(t, 3, ranks[1].Level)
}

func TestFetchDepartments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/departments", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"externalId": "D1", "code": "ENG", "name": "Engineering", "level": 1},
			{"externalId": "D2", "code": "ENG-BE", "name": "Backend", "level": 2, "parentExternalId": "D1"}
		]`))
	}))
	defer srv.Close()

	client := hris.NewClient(hris.Config{BaseURL: srv.URL})

	departments, err := client.FetchDepartments(context.Background())
	assert.NoError(t, err)
	assert.Len(t, departments, 2)
	assert.Nil(t, departments[0].ParentExternalID)
	assert.Equal(t, "D1", *departments[1].ParentExternalID)
}

func TestFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := hris.NewClient(hris.Config{BaseURL: srv.URL})

	_, err := client.FetchEmployees(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestFetchUnreachable(t *testing.T) {
	// Closed server: connection refused
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := hris.NewClient(hris.Config{BaseURL: srv.URL, TimeoutSeconds: 1})

	_, err := client.FetchRanks(context.Background())
	assert.Error(t, err)
}
