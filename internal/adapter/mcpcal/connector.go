// Package mcpcal connects to the external calendar tool bridge over MCP
// streamable HTTP. The bridge owns the calendar tool contracts; this
// adapter fetches them, caches them briefly, and proxies calls.
package mcpcal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/daybookhq/daybook-backend/internal/domain"
)

// accountHeader carries the connected calendar account to the bridge.
const accountHeader = "X-Calendar-Account"

const (
	defaultCacheSize = 256
	defaultCacheTTL  = 5 * time.Minute
)

// Config holds bridge connection settings.
type Config struct {
	BridgeURL      string
	RequestTimeout time.Duration
	ToolCacheTTL   time.Duration
	ToolCacheSize  int
}

// Connector talks to the calendar bridge. Tool lists are cached per
// account with a short TTL so repeated agent invocations do not re-fetch
// contracts that rarely change.
type Connector struct {
	bridgeURL string
	timeout   time.Duration
	cache     *lru.Cache[string, cacheEntry]
	ttl       time.Duration
	log       *slog.Logger
}

// cacheEntry holds a fetched tool list along with the timestamp it was stored.
type cacheEntry struct {
	tools    []domain.ToolSpec
	storedAt time.Time
}

// New creates a Connector for the given bridge settings.
func New(cfg Config, logger *slog.Logger) (*Connector, error) {
	size := cfg.ToolCacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	ttl := cfg.ToolCacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	cache, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("mcpcal: create tool cache: %w", err)
	}

	return &Connector{
		bridgeURL: cfg.BridgeURL,
		timeout:   cfg.RequestTimeout,
		cache:     cache,
		ttl:       ttl,
		log:       logger.With("adapter", "mcpcal"),
	}, nil
}

// ListTools returns the bridge's tool contracts for the given account.
// Results are served from the cache while fresh.
func (c *Connector) ListTools(ctx context.Context, accountID string) ([]domain.ToolSpec, error) {
	if entry, ok := c.cache.Get(accountID); ok {
		if time.Since(entry.storedAt) < c.ttl {
			return entry.tools, nil
		}
		c.cache.Remove(accountID)
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	session, err := c.connect(ctx, accountID)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	res, err := session.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("mcpcal: list tools: %w", err)
	}

	specs := make([]domain.ToolSpec, 0, len(res.Tools))
	for _, tool := range res.Tools {
		specs = append(specs, domain.ToolSpec{
			Name:        tool.Name,
			Description: tool.Description,
			Properties:  tool.InputSchema.Properties,
			Required:    tool.InputSchema.Required,
		})
	}

	c.cache.Add(accountID, cacheEntry{tools: specs, storedAt: time.Now()})
	c.log.DebugContext(ctx, "calendar tools fetched", slog.Int("count", len(specs)))

	return specs, nil
}

// CallTool proxies one tool call to the bridge and returns the text content
// of the result. A bridge-side tool error comes back as a Go error.
func (c *Connector) CallTool(ctx context.Context, accountID, name string, args map[string]any) (string, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	session, err := c.connect(ctx, accountID)
	if err != nil {
		return "", err
	}
	defer session.Close()

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := session.CallTool(ctx, req)
	if err != nil {
		return "", fmt.Errorf("mcpcal: call tool %s: %w", name, err)
	}

	text := contentText(res.Content)
	if res.IsError {
		if text == "" {
			text = "calendar bridge reported an error"
		}
		return "", fmt.Errorf("mcpcal: tool %s: %s", name, text)
	}

	return text, nil
}

// connect opens a fresh MCP session against the bridge. The streamable HTTP
// transport is cheap to set up, so sessions are per call rather than pooled.
func (c *Connector) connect(ctx context.Context, accountID string) (*mcpclient.Client, error) {
	headers := map[string]string{}
	if accountID != "" {
		headers[accountHeader] = accountID
	}

	session, err := mcpclient.NewStreamableHttpClient(c.bridgeURL, transport.WithHTTPHeaders(headers))
	if err != nil {
		return nil, fmt.Errorf("mcpcal: create client: %w", err)
	}

	if err := session.Start(ctx); err != nil {
		return nil, fmt.Errorf("mcpcal: start transport: %w", err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "daybook-backend",
		Version: "1.0.0",
	}

	if _, err := session.Initialize(ctx, initReq); err != nil {
		session.Close()
		return nil, fmt.Errorf("mcpcal: initialize: %w", err)
	}

	return session, nil
}

func (c *Connector) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// contentText concatenates the text blocks of a tool result.
func contentText(content []mcp.Content) string {
	var sb strings.Builder
	for _, block := range content {
		if tc, ok := block.(mcp.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}
