package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smallbiznis/valora-web/internal/client"
	"github.com/smallbiznis/valora-web/internal/domain"
)

func TestGetAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/accounts/user-1", r.URL.Path)
		require.Equal(t, "Internal test-key", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(domain.Account{ID: "user-1", Email: "worker@valora.test"})
	}))
	defer srv.Close()

	c := client.NewHTTPAccountClient(srv.URL, "test-key", srv.Client())
	account, err := c.GetAccount(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, "user-1", account.ID)
	require.Equal(t, "worker@valora.test", account.Email)
}

func TestGetAccountNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := client.NewHTTPAccountClient(srv.URL, "test-key", srv.Client())
	_, err := c.GetAccount(context.Background(), "missing")
	require.ErrorIs(t, err, client.ErrAccountNotFound)
}

func TestUpdatePassword(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/accounts/user-1/password", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := client.NewHTTPAccountClient(srv.URL, "test-key", srv.Client())
	require.NoError(t, c.UpdatePassword(context.Background(), "user-1", "newpassxxx"))
	require.Equal(t, "newpassxxx", got["password"])
}

func TestUpdatePasswordServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := client.NewHTTPAccountClient(srv.URL, "test-key", srv.Client())
	require.Error(t, c.UpdatePassword(context.Background(), "user-1", "newpassxxx"))
}

func TestGetAdminOf(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/memberships/admin_of/user-1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(domain.AdminOfList{
			UserID:    "user-1",
			Companies: []domain.Company{{ID: "c1", Name: "Acme"}},
		})
	}))
	defer srv.Close()

	c := client.NewHTTPCompanyClient(srv.URL, "test-key", srv.Client())
	list, err := c.GetAdminOf(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, list.Companies, 1)
	require.Equal(t, "Acme", list.Companies[0].Name)
}

func TestGetWorkerOf(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/memberships/worker_of/user-1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(domain.WorkerOfList{
			UserID: "user-1",
			Teams:  []domain.Team{{ID: "t1", CompanyID: "c1", Name: "Night shift"}},
		})
	}))
	defer srv.Close()

	c := client.NewHTTPCompanyClient(srv.URL, "test-key", srv.Client())
	list, err := c.GetWorkerOf(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, list.Teams, 1)
	require.Equal(t, "Night shift", list.Teams[0].Name)
}
