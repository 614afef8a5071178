// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/ThinkInAIXYZ/go-mcp/server"
	"github.com/ThinkInAIXYZ/go-mcp/transport"

	"mcp-meal-plan/internal/catalog"
	"mcp-meal-plan/internal/logger"
	"mcp-meal-plan/internal/nutrition"
	"mcp-meal-plan/internal/planner"
	"mcp-meal-plan/internal/storage"
)

type Config struct {
	Transport   string
	Host        string
	Port        int
	DBPath      string
	CatalogPath string
}

const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

type toolHandler func(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error)

type tool struct {
	definition *protocol.Tool
	handler    toolHandler
}

type MealPlanServer struct {
	server     *server.Server
	transport  string
	httpServer *http.Server
	storage    *storage.SQLiteStorage
	catalog    *catalog.Catalog
	matcher    *planner.Matcher
	planSource planner.ExternalPlanSource
	tools      map[string]tool
	log        *logger.Logger
	config     *Config
	now        func() time.Time

	// ctx bounds tool calls arriving through go-mcp, whose handlers carry no context.
	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
	stopErr  error
}

// NewMealPlanServer opens storage, loads the template catalog and registers
// the tools on a go-mcp server. With the http transport the MCP SSE endpoints
// are mounted next to the plain JSON tool endpoint; with stdio the server
// speaks MCP on stdin/stdout. planSource may be nil, in which case
// generate_ai_plan fails.
func NewMealPlanServer(cfg *Config, planSource planner.ExternalPlanSource, log *logger.Logger) (*MealPlanServer, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	var (
		mcpTransport transport.ServerTransport
		sseHandler   *transport.SSEHandler
		err          error
	)
	switch cfg.Transport {
	case "", TransportHTTP:
		mcpTransport, sseHandler, err = transport.NewSSEServerTransportAndHandler(
			messageEndpoint(cfg.Host, cfg.Port),
			transport.WithSSEServerTransportAndHandlerOptionLogger(log),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create SSE transport: %w", err)
		}
	case TransportStdio:
		mcpTransport = transport.NewStdioServerTransport(transport.WithStdioServerOptionLogger(log))
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}

	planServer, err := newMealPlanServer(cfg, planSource, log, mcpTransport)
	if err != nil {
		return nil, err
	}
	if cfg.Transport == "" {
		planServer.transport = TransportHTTP
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/tools", planServer.handleListTools)
	if sseHandler != nil {
		mux.Handle("/sse", sseHandler.HandleSSE())
		mux.Handle("/message", sseHandler.HandleMessage())
	}
	mux.HandleFunc("/", planServer.handleHTTP)

	planServer.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return planServer, nil
}

func newMealPlanServer(cfg *Config, planSource planner.ExternalPlanSource, log *logger.Logger, mcpTransport transport.ServerTransport) (*MealPlanServer, error) {
	stor, err := storage.NewSQLiteStorage(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	cat, err := loadCatalog(cfg.CatalogPath, stor, log)
	if err != nil {
		stor.Close()
		return nil, fmt.Errorf("failed to load template catalog: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	planServer := &MealPlanServer{
		transport:  cfg.Transport,
		storage:    stor,
		catalog:    cat,
		matcher:    planner.NewMatcher(cat),
		planSource: planSource,
		log:        log,
		config:     cfg,
		now:        time.Now,
		ctx:        ctx,
		cancel:     cancel,
	}

	mcpServer, err := server.NewServer(
		mcpTransport,
		server.WithServerInfo(protocol.Implementation{
			Name:    "meal-plan",
			Version: "1.0.0",
		}),
		server.WithLogger(log),
	)
	if err != nil {
		cancel()
		stor.Close()
		return nil, fmt.Errorf("failed to create MCP server: %w", err)
	}
	planServer.server = mcpServer

	planServer.registerTools()
	for name, t := range planServer.tools {
		mcpServer.RegisterTool(t.definition, planServer.mcpToolHandler(name, t))
	}

	return planServer, nil
}

// messageEndpoint is the URL SSE clients are told to post messages to.
func messageEndpoint(host string, port int) string {
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s/message", net.JoinHostPort(host, strconv.Itoa(port)))
}

// mcpToolHandler adapts a tool for go-mcp. Tool failures are reported in the
// result with IsError set, so the client sees the message rather than a
// protocol error.
func (s *MealPlanServer) mcpToolHandler(name string, t tool) server.ToolHandlerFunc {
	return func(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
		result, err := t.handler(s.ctx, req)
		if err != nil {
			s.log.Warn("mcp tool call failed", "tool", name, "error", err)
			return &protocol.CallToolResult{
				Content: []protocol.Content{
					protocol.TextContent{Type: "text", Text: err.Error()},
				},
				IsError: true,
			}, nil
		}
		return result, nil
	}
}

// loadCatalog prefers an explicit YAML file, then whatever the database
// holds, then the built-in catalog. The chosen catalog is written back so the
// database always reflects what is being served.
func loadCatalog(path string, stor *storage.SQLiteStorage, log *logger.Logger) (*catalog.Catalog, error) {
	if path != "" {
		c, err := catalog.LoadFile(path)
		if err != nil {
			return nil, err
		}
		log.Info("loaded template catalog from file", "path", path, "templates", c.Len())
		return c, stor.SaveTemplates(c.Templates())
	}

	stored, err := stor.LoadTemplates()
	if err != nil {
		return nil, err
	}
	if len(stored) > 0 {
		log.Info("loaded template catalog from database", "templates", len(stored))
		return catalog.New(stored)
	}

	c := catalog.Default()
	log.Info("seeding built-in template catalog", "templates", c.Len())
	return c, stor.SaveTemplates(c.Templates())
}

func (s *MealPlanServer) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *MealPlanServer) handleHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request protocol.CallToolRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	t, ok := s.tools[request.Name]
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown tool: %s", request.Name), http.StatusNotFound)
		return
	}

	start := time.Now()
	result, err := t.handler(r.Context(), &request)
	if err != nil {
		status := statusFor(err)
		s.log.Warn("tool call failed", "tool", request.Name, "status", status, "error", err)
		http.Error(w, err.Error(), status)
		return
	}
	s.log.Debug("tool call", "tool", request.Name, "duration", time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.log.Error("failed to encode response", "tool", request.Name, "error", err)
	}
}

func (s *MealPlanServer) handleListTools(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.toolDefinitions()); err != nil {
		s.log.Error("failed to encode tool list", "error", err)
	}
}

func (s *MealPlanServer) toolDefinitions() []*protocol.Tool {
	defs := make([]*protocol.Tool, 0, len(s.tools))
	for _, t := range s.tools {
		defs = append(defs, t.definition)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errInvalidParams),
		errors.Is(err, nutrition.ErrInvalidProfile),
		errors.Is(err, nutrition.ErrInvalidSlotCount):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrPlanNotFound):
		return http.StatusNotFound
	case errors.Is(err, planner.ErrMalformedPlan):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Start blocks serving the configured transport. Over stdio it returns once
// stdin is closed.
func (s *MealPlanServer) Start(ctx context.Context) error {
	if s.transport == TransportStdio {
		s.log.Info("starting meal plan server", "transport", s.transport, "templates", s.catalog.Len())
		return s.server.Run()
	}

	go func() {
		if err := s.server.Run(); err != nil {
			s.log.Error("mcp server stopped", "error", err)
		}
	}()

	s.log.Info("starting meal plan server", "transport", s.transport, "addr", s.httpServer.Addr, "templates", s.catalog.Len())
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop is safe to call more than once. The MCP server goes first so open SSE
// streams end before the HTTP server waits on them.
func (s *MealPlanServer) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() {
		s.cancel()

		var errs []error
		// go-mcp's stdio transport cannot interrupt a blocking stdin read.
		if s.server != nil && s.transport != TransportStdio {
			if err := s.server.Shutdown(ctx); err != nil {
				errs = append(errs, fmt.Errorf("mcp shutdown: %w", err))
			}
		}
		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(ctx); err != nil {
				errs = append(errs, fmt.Errorf("http shutdown: %w", err))
			}
		}
		if s.storage != nil {
			if err := s.storage.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close storage: %w", err))
			}
		}
		s.stopErr = errors.Join(errs...)
	})
	return s.stopErr
}

func (s *MealPlanServer) createJSONResponse(data interface{}) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(jsonBytes),
			},
		},
	}, nil
}
