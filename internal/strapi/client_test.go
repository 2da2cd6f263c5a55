package strapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octobees/cms-seeder/internal/config"
	"github.com/octobees/cms-seeder/internal/dto"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func respond(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body)), Header: http.Header{}}
}

func TestClient_ListRoles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users-permissions/roles", r.URL.Path)
		assert.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"roles": []map[string]any{{"id": 1, "name": "Authenticated", "type": "authenticated"}},
		})
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL+"/", "admin-token")
	roles, err := client.ListRoles(context.Background())
	require.NoError(t, err)
	require.Len(t, roles.Roles, 1)
	assert.Equal(t, "Authenticated", roles.Roles[0].Name)
}

func TestClient_ListRoles_AbsentKey(t *testing.T) {
	client := NewClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return respond(http.StatusOK, `{}`), nil
	})}, "http://cms", "t")

	roles, err := client.ListRoles(context.Background())
	require.NoError(t, err)
	assert.Nil(t, roles.Roles)
}

func TestClient_ServiceError(t *testing.T) {
	client := NewClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return respond(http.StatusForbidden, `{"data":null,"error":{"status":403,"name":"ForbiddenError","message":"Forbidden","details":{}}}`), nil
	})}, "http://cms", "t")

	_, err := client.ListRoles(context.Background())
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusForbidden, svcErr.StatusCode)
	assert.Equal(t, "ForbiddenError", svcErr.Name)
	assert.Equal(t, "Forbidden", svcErr.Message)
	assert.Contains(t, svcErr.Envelope(), `"name": "ForbiddenError"`)
	assert.Equal(t, "strapi: 403 ForbiddenError: Forbidden", svcErr.Error())
}

func TestClient_Register_NoAuthorization(t *testing.T) {
	var captured dto.RegisterRequest
	client := NewClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		assert.Empty(t, req.Header.Get("Authorization"))
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(req.Body).Decode(&captured))
		return respond(http.StatusOK, `{"jwt":"j","user":{"id":7,"username":"auth","email":"auth@test.com"}}`), nil
	})}, "http://cms", "t")

	resp, err := client.Register(context.Background(), dto.RegisterRequest{Username: "auth", Email: "auth@test.com", Password: "password123"})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, 7, resp.User.ID)
	assert.Equal(t, "auth@test.com", captured.Email)
}

func TestClient_AssignRole(t *testing.T) {
	client := NewClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, http.MethodPut, req.Method)
		assert.Equal(t, "/api/users/7", req.URL.Path)
		assert.Equal(t, "Bearer t", req.Header.Get("Authorization"))
		var body map[string]int
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.Equal(t, 3, body["role"])
		return respond(http.StatusOK, `{"id":7}`), nil
	})}, "http://cms", "t")

	require.NoError(t, client.AssignRole(context.Background(), 7, 3))
}

func TestClient_CreateEvent_Envelope(t *testing.T) {
	client := NewClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/api/events", req.URL.Path)
		var body map[string]map[string]any
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.Equal(t, "Launch", body["data"]["title"])
		return respond(http.StatusCreated, `{"data":{"id":1,"documentId":"abc","title":"Launch","slug":"launch"},"meta":{}}`), nil
	})}, "http://cms", "t")

	entry, err := client.CreateEvent(context.Background(), dto.EventCreatePayload{Title: "Launch", Slug: "launch"})
	require.NoError(t, err)
	assert.Equal(t, "abc", entry.DocumentID)
}

func TestClient_Health(t *testing.T) {
	t.Run("no content", func(t *testing.T) {
		client := NewClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			assert.Empty(t, req.Header.Get("Authorization"))
			return respond(http.StatusNoContent, ""), nil
		})}, "http://cms", "t")
		require.NoError(t, client.Health(context.Background()))
	})

	t.Run("plain text body", func(t *testing.T) {
		client := NewClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return respond(http.StatusOK, "OK"), nil
		})}, "http://cms", "t")
		require.NoError(t, client.Health(context.Background()))
	})

	t.Run("server error", func(t *testing.T) {
		client := NewClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return respond(http.StatusServiceUnavailable, "maintenance"), nil
		})}, "http://cms", "t")
		err := client.Health(context.Background())
		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "maintenance", svcErr.Message)
	})

	t.Run("network failure", func(t *testing.T) {
		client := NewClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		})}, "http://cms", "t")
		err := client.Health(context.Background())
		require.Error(t, err)
		var svcErr *ServiceError
		assert.False(t, errors.As(err, &svcErr))
	})
}

func TestClient_RateLimit(t *testing.T) {
	calls := 0
	client := NewClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return respond(http.StatusNoContent, ""), nil
	})}, "http://cms", "t", WithRateLimit(config.RateLimitConfig{Requests: 1, Interval: time.Hour}))

	require.NoError(t, client.Health(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := client.Health(ctx)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestNewServiceError(t *testing.T) {
	err := newServiceError(http.StatusBadRequest, []byte(`{"error":{"status":400,"name":"ValidationError","message":"slug must be unique"}}`))
	assert.Equal(t, "slug must be unique", err.Message)

	err = newServiceError(http.StatusBadGateway, []byte("not-json"))
	assert.Equal(t, "not-json", err.Message)
	assert.Equal(t, "not-json", err.Envelope())

	err = newServiceError(http.StatusInternalServerError, nil)
	assert.Equal(t, "Internal Server Error", err.Message)

	err = newServiceError(http.StatusNotFound, []byte(`{"data":null}`))
	assert.Equal(t, "Not Found", err.Message)
}
