// Package odoorpc is a client for the Odoo external JSON-RPC API. It
// implements the schema.Source interface so parsed domains can be
// validated against the field definitions of a live server.
package odoorpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/odoo-tools/domainconv/internal/observability"
	"github.com/odoo-tools/domainconv/internal/schema"
)

// Config holds the connection settings for one Odoo server. It is passed
// explicitly to NewClient; there is no shared global connection state.
type Config struct {
	URL      string `yaml:"url"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Client talks to an Odoo server over JSON-RPC.
type Client struct {
	cfg     Config
	http    *http.Client
	logger  *slog.Logger
	tracer  *observability.Tracer
	metrics *observability.Metrics

	uid    int
	fields *fieldsCache
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the structured logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithTracer sets the tracer used for RPC spans.
func WithTracer(tracer *observability.Tracer) Option {
	return func(c *Client) { c.tracer = tracer }
}

// WithMetrics sets the metric instruments for RPC calls.
func WithMetrics(metrics *observability.Metrics) Option {
	return func(c *Client) { c.metrics = metrics }
}

// NewClient creates a client for the given connection settings.
func NewClient(cfg Config, opts ...Option) *Client {
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	c := &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  slog.Default(),
		tracer:  observability.NewNoopTracer(),
		metrics: observability.NewNoopMetrics(),
		fields:  newFieldsCache(64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UID returns the user id obtained by Authenticate, or 0 when the client
// has not authenticated yet.
func (c *Client) UID() int { return c.uid }

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      string    `json:"id"`
}

type rpcParams struct {
	Service string `json:"service"`
	Method  string `json:"method"`
	Args    []any  `json:"args"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// RPCError is a fault returned by the Odoo server.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	} `json:"data"`
}

func (e *RPCError) Error() string {
	if e.Data.Message != "" {
		return e.Data.Message
	}
	return e.Message
}

// call performs one JSON-RPC round trip against the /jsonrpc endpoint.
func (c *Client) call(ctx context.Context, service, method string, args []any, out any) error {
	ctx, span := c.tracer.StartRPC(ctx, service, method)
	span.SetAttributes(observability.DatabaseAttr(c.cfg.Database))
	start := time.Now()

	err := c.doCall(ctx, service, method, args, out)

	c.metrics.RecordRPC(ctx, service, method, time.Since(start), err)
	observability.EndSpan(span, err)
	return err
}

func (c *Client) doCall(ctx context.Context, service, method string, args []any, out any) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  "call",
		Params:  rpcParams{Service: service, Method: method, Args: args},
		ID:      uuid.NewString(),
	})
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	c.logger.DebugContext(ctx, "odoo rpc call",
		slog.String("url", c.cfg.URL),
		slog.String("service", service),
		slog.String("method", method))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL+"/jsonrpc", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cannot connect to %s: %w", c.cfg.URL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s", resp.Status)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(data, &rpcResp); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}

	if out != nil && len(rpcResp.Result) > 0 {
		if err := json.Unmarshal(rpcResp.Result, out); err != nil {
			return fmt.Errorf("decoding result: %w", err)
		}
	}
	return nil
}

// Version probes the server and returns its reported version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	var result struct {
		ServerVersion string `json:"server_version"`
	}
	if err := c.call(ctx, "common", "version", []any{}, &result); err != nil {
		return "", err
	}
	if result.ServerVersion == "" {
		return "unknown", nil
	}
	return result.ServerVersion, nil
}

// Authenticate logs in with the configured credentials and stores the user
// id for later object calls. Odoo reports bad credentials by returning
// false instead of a uid.
func (c *Client) Authenticate(ctx context.Context) (int, error) {
	var result json.RawMessage
	err := c.call(ctx, "common", "authenticate",
		[]any{c.cfg.Database, c.cfg.Username, c.cfg.Password, map[string]any{}}, &result)
	if err != nil {
		return 0, err
	}

	var uid int
	if err := json.Unmarshal(result, &uid); err != nil || uid == 0 {
		return 0, fmt.Errorf("authentication failed for %q on database %q", c.cfg.Username, c.cfg.Database)
	}

	c.uid = uid
	c.logger.DebugContext(ctx, "authenticated", slog.Int("uid", uid))
	return uid, nil
}

// Databases lists the databases available on a server. Some servers
// disable listing; that fault is mapped to a friendlier error.
func Databases(ctx context.Context, url string, opts ...Option) ([]string, error) {
	c := NewClient(Config{URL: url}, opts...)

	var dbs []string
	if err := c.call(ctx, "db", "list", []any{}, &dbs); err != nil {
		if strings.Contains(err.Error(), "Access Denied") {
			return nil, fmt.Errorf("database listing disabled on this server")
		}
		return nil, err
	}
	return dbs, nil
}

// ExecuteKw invokes a model method through the object service.
func (c *Client) ExecuteKw(ctx context.Context, model, method string, args []any, kwargs map[string]any, out any) error {
	if c.uid == 0 {
		return fmt.Errorf("not authenticated: call Authenticate first")
	}
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	return c.call(ctx, "object", "execute_kw",
		[]any{c.cfg.Database, c.uid, c.cfg.Password, model, method, args, kwargs}, out)
}

// Fields returns the field definitions of a model, caching results per
// server, database and model. It implements schema.Source.
func (c *Client) Fields(ctx context.Context, model string) (map[string]schema.FieldInfo, error) {
	ctx, span := c.tracer.StartFieldsFetch(ctx, model)

	key := c.fields.key(c.cfg.URL, c.cfg.Database, model)
	if cached, ok := c.fields.get(key); ok {
		span.SetAttributes(observability.CacheHitAttr(true))
		observability.EndSpan(span, nil)
		return cached, nil
	}
	span.SetAttributes(observability.CacheHitAttr(false))

	fields, err := c.fetchFields(ctx, model)
	observability.EndSpan(span, err)
	if err != nil {
		return nil, err
	}

	c.fields.put(key, fields)
	return fields, nil
}

type rawFieldInfo struct {
	Type     string `json:"type"`
	Relation string `json:"relation"`
	String   string `json:"string"`
}

func (c *Client) fetchFields(ctx context.Context, model string) (map[string]schema.FieldInfo, error) {
	var raw map[string]rawFieldInfo
	err := c.ExecuteKw(ctx, model, "fields_get", []any{},
		map[string]any{"attributes": []string{"type", "relation", "string"}}, &raw)
	if err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "does not exist") || strings.Contains(msg, "access") {
			return nil, fmt.Errorf("model %q not found or access denied", model)
		}
		return nil, err
	}

	fields := make(map[string]schema.FieldInfo, len(raw))
	for name, info := range raw {
		fields[name] = schema.FieldInfo{Type: info.Type, Relation: info.Relation, Label: info.String}
	}
	return fields, nil
}

// ResolveModel resolves a technical model name or a display name to the
// technical name. The input is tried as a technical name first; on failure
// ir.model is searched by display name, preferring an exact match and
// rejecting ambiguous inputs with the candidate list.
func (c *Client) ResolveModel(ctx context.Context, input string) (string, error) {
	if c.uid == 0 {
		return "", fmt.Errorf("not authenticated: call Authenticate first")
	}

	input = strings.TrimSpace(input)

	var probe json.RawMessage
	err := c.ExecuteKw(ctx, input, "fields_get", []any{},
		map[string]any{"attributes": []string{"type"}}, &probe)
	if err == nil {
		return input, nil
	}

	var ids []int
	err = c.ExecuteKw(ctx, "ir.model", "search",
		[]any{[]any{[]any{"name", "ilike", input}}}, map[string]any{"limit": 10}, &ids)
	if err != nil {
		return "", fmt.Errorf("searching models: %w", err)
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("model %q not found (tried as technical name and display name)", input)
	}

	var records []struct {
		Model string `json:"model"`
		Name  string `json:"name"`
	}
	err = c.ExecuteKw(ctx, "ir.model", "read",
		[]any{ids}, map[string]any{"fields": []string{"model", "name"}}, &records)
	if err != nil {
		return "", fmt.Errorf("reading models: %w", err)
	}

	for _, record := range records {
		if strings.EqualFold(record.Name, input) {
			return record.Model, nil
		}
	}

	if len(records) == 1 {
		return records[0].Model, nil
	}

	var options []string
	for i, record := range records {
		if i >= 5 {
			break
		}
		options = append(options, fmt.Sprintf("  - %s (%s)", record.Name, record.Model))
	}
	return "", fmt.Errorf("multiple models match %q:\n%s\nuse the technical name", input, strings.Join(options, "\n"))
}
