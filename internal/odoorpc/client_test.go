package odoorpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOdoo is a minimal JSON-RPC Odoo server for tests.
type fakeOdoo struct {
	t            *testing.T
	fieldsCalls  int
	authOK       bool
	denyDBList   bool
	knownModels  map[string]map[string]any // model -> fields_get result
	displayNames map[string]string         // display name -> technical name
}

func (f *fakeOdoo) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(f.t, "2.0", req.JSONRPC)
		require.NotEmpty(f.t, req.ID)

		switch req.Params.Service + "." + req.Params.Method {
		case "common.version":
			f.reply(w, map[string]any{"server_version": "17.0"})
		case "common.authenticate":
			if f.authOK {
				f.reply(w, 7)
			} else {
				f.reply(w, false)
			}
		case "db.list":
			if f.denyDBList {
				f.fault(w, "Access Denied")
				return
			}
			f.reply(w, []string{"prod", "staging"})
		case "object.execute_kw":
			f.executeKw(w, req.Params.Args)
		default:
			f.fault(w, "unknown method")
		}
	}
}

func (f *fakeOdoo) executeKw(w http.ResponseWriter, args []any) {
	require.GreaterOrEqual(f.t, len(args), 6)
	model := args[3].(string)
	method := args[4].(string)

	switch {
	case method == "fields_get":
		fields, ok := f.knownModels[model]
		if !ok {
			f.fault(w, "Object "+model+" does not exist")
			return
		}
		f.fieldsCalls++
		f.reply(w, fields)
	case model == "ir.model" && method == "search":
		var ids []int
		i := 1
		for range f.displayNames {
			ids = append(ids, i)
			i++
		}
		f.reply(w, ids)
	case model == "ir.model" && method == "read":
		var records []map[string]any
		for name, technical := range f.displayNames {
			records = append(records, map[string]any{"name": name, "model": technical})
		}
		f.reply(w, records)
	default:
		f.fault(w, "unknown model method")
	}
}

func (f *fakeOdoo) reply(w http.ResponseWriter, result any) {
	require.NoError(f.t, json.NewEncoder(w).Encode(map[string]any{
		"jsonrpc": "2.0",
		"result":  result,
	}))
}

func (f *fakeOdoo) fault(w http.ResponseWriter, message string) {
	require.NoError(f.t, json.NewEncoder(w).Encode(map[string]any{
		"jsonrpc": "2.0",
		"error": map[string]any{
			"code":    200,
			"message": "Odoo Server Error",
			"data":    map[string]any{"message": message},
		},
	}))
}

func newTestClient(t *testing.T, fake *fakeOdoo) *Client {
	t.Helper()
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)
	return NewClient(Config{
		URL:      server.URL,
		Database: "prod",
		Username: "admin",
		Password: "secret",
	})
}

func TestClientVersion(t *testing.T) {
	client := newTestClient(t, &fakeOdoo{t: t})

	version, err := client.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "17.0", version)
}

func TestClientAuthenticate(t *testing.T) {
	client := newTestClient(t, &fakeOdoo{t: t, authOK: true})

	uid, err := client.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, uid)
	assert.Equal(t, 7, client.UID())
}

func TestClientAuthenticateFailure(t *testing.T) {
	client := newTestClient(t, &fakeOdoo{t: t, authOK: false})

	_, err := client.Authenticate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")
}

func TestClientExecuteKwRequiresAuth(t *testing.T) {
	client := newTestClient(t, &fakeOdoo{t: t})

	err := client.ExecuteKw(context.Background(), "res.partner", "search", []any{}, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authenticated")
}

func TestClientFieldsCached(t *testing.T) {
	fake := &fakeOdoo{t: t, authOK: true, knownModels: map[string]map[string]any{
		"res.partner": {
			"name":       map[string]any{"type": "char", "string": "Name"},
			"company_id": map[string]any{"type": "many2one", "relation": "res.company", "string": "Company"},
		},
	}}
	client := newTestClient(t, fake)

	_, err := client.Authenticate(context.Background())
	require.NoError(t, err)

	fields, err := client.Fields(context.Background(), "res.partner")
	require.NoError(t, err)
	assert.Equal(t, "char", fields["name"].Type)
	assert.Equal(t, "res.company", fields["company_id"].Relation)
	assert.Equal(t, "Company", fields["company_id"].Label)

	_, err = client.Fields(context.Background(), "res.partner")
	require.NoError(t, err)
	assert.Equal(t, 1, fake.fieldsCalls, "second lookup should come from the cache")
}

func TestClientFieldsUnknownModel(t *testing.T) {
	fake := &fakeOdoo{t: t, authOK: true, knownModels: map[string]map[string]any{}}
	client := newTestClient(t, fake)

	_, err := client.Authenticate(context.Background())
	require.NoError(t, err)

	_, err = client.Fields(context.Background(), "no.such.model")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found or access denied")
}

func TestClientResolveModelTechnicalName(t *testing.T) {
	fake := &fakeOdoo{t: t, authOK: true, knownModels: map[string]map[string]any{
		"res.partner": {"name": map[string]any{"type": "char"}},
	}}
	client := newTestClient(t, fake)

	_, err := client.Authenticate(context.Background())
	require.NoError(t, err)

	model, err := client.ResolveModel(context.Background(), "res.partner")
	require.NoError(t, err)
	assert.Equal(t, "res.partner", model)
}

func TestClientResolveModelDisplayName(t *testing.T) {
	fake := &fakeOdoo{t: t, authOK: true,
		knownModels:  map[string]map[string]any{},
		displayNames: map[string]string{"Contact": "res.partner"},
	}
	client := newTestClient(t, fake)

	_, err := client.Authenticate(context.Background())
	require.NoError(t, err)

	model, err := client.ResolveModel(context.Background(), "Contact")
	require.NoError(t, err)
	assert.Equal(t, "res.partner", model)
}

func TestClientResolveModelAmbiguous(t *testing.T) {
	fake := &fakeOdoo{t: t, authOK: true,
		knownModels: map[string]map[string]any{},
		displayNames: map[string]string{
			"Task Stage":      "project.task.type",
			"Task Stage Kind": "project.task.kind",
		},
	}
	client := newTestClient(t, fake)

	_, err := client.Authenticate(context.Background())
	require.NoError(t, err)

	_, err = client.ResolveModel(context.Background(), "Task")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple models match")
}

func TestDatabases(t *testing.T) {
	fake := &fakeOdoo{t: t}
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	dbs, err := Databases(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, []string{"prod", "staging"}, dbs)
}

func TestDatabasesDenied(t *testing.T) {
	fake := &fakeOdoo{t: t, denyDBList: true}
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	_, err := Databases(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database listing disabled")
}
