// Package tests holds integration tests that drive the real client SDK
// against a sandbox backend served over httptest.
package tests

import (
	"net/http/httptest"
	"testing"

	"github.com/kazino55/client/internal/api"
	"github.com/kazino55/client/internal/auth"
	"github.com/kazino55/client/internal/event"
	"github.com/kazino55/client/internal/sandbox"
	"github.com/kazino55/client/internal/session"
)

// testEnv wires a full client stack against an in-process sandbox backend.
type testEnv struct {
	Backend *sandbox.Server
	Session *session.Manager
	Bus     *event.Bus
	API     *api.Client
	Auth    *auth.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	backend := sandbox.New(sandbox.Options{JWTSecret: "integration-test-secret-0123456789"})
	srv := httptest.NewServer(backend.Router())
	t.Cleanup(srv.Close)

	sess := session.NewManager(session.NewMemoryStore())
	bus := event.NewBus()
	client := api.New(sess, bus, api.Options{BaseURL: srv.URL + "/api/v1"})

	return &testEnv{
		Backend: backend,
		Session: sess,
		Bus:     bus,
		API:     client,
		Auth:    auth.NewService(client, sess, bus),
	}
}
