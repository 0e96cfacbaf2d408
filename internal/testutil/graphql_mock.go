package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/threef-labs/threef-cli/internal/environments"
)

// GraphQLRequest is a decoded request received by a GraphQL mock server.
type GraphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
	Header    http.Header    `json:"-"`
}

// GraphQLResponder returns the "data" object for a matched request.
type GraphQLResponder func(req GraphQLRequest) any

// GraphQLMockServer answers GraphQL requests whose query contains one of
// the registered operation names, preferring the longest match, and
// records every request it receives.
type GraphQLMockServer struct {
	*httptest.Server

	mu         sync.Mutex
	responders map[string]GraphQLResponder
	requests   []GraphQLRequest
}

// NewGraphQLMockServer starts a mock server and points THREEF_GRAPHQL_URL
// at it so CLI commands use it. It is closed when the test ends.
func NewGraphQLMockServer(t *testing.T) *GraphQLMockServer {
	t.Helper()
	m := &GraphQLMockServer{responders: map[string]GraphQLResponder{}}
	m.Server = httptest.NewServer(http.HandlerFunc(m.serve))
	t.Cleanup(m.Close)
	t.Setenv(environments.EnvVarGraphQLURL, m.URL+"/graphql/v1")
	return m
}

// Handle registers a responder for requests whose query mentions operation.
func (m *GraphQLMockServer) Handle(operation string, responder GraphQLResponder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responders[operation] = responder
}

// Requests returns the requests received so far.
func (m *GraphQLMockServer) Requests() []GraphQLRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]GraphQLRequest(nil), m.requests...)
}

func (m *GraphQLMockServer) serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if !strings.HasPrefix(r.URL.Path, "/graphql") || r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var req GraphQLRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	req.Header = r.Header.Clone()

	m.mu.Lock()
	m.requests = append(m.requests, req)
	var (
		responder GraphQLResponder
		matched   string
	)
	for op, fn := range m.responders {
		if strings.Contains(req.Query, op) && len(op) > len(matched) {
			responder, matched = fn, op
		}
	}
	m.mu.Unlock()

	if responder == nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]string{{"message": "Unsupported GraphQL query"}},
		})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"data": responder(req)})
}
