// Package mcp exposes the risk analysis engine as a Model Context
// Protocol server over stdio, so AI assistants can query risk, file
// incident reports, and read the SOS worklist as tools.
package mcp

import (
	"context"
	"fmt"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nightwatch-ai/nightwatch/internal/engine"
	"github.com/nightwatch-ai/nightwatch/internal/models"
)

// Config holds MCP server configuration.
type Config struct {
	// Name is the server name advertised to clients.
	Name string

	// Version is the server version advertised to clients.
	Version string
}

// Server wraps the engine in an MCP stdio server.
type Server struct {
	server *mcp.Server
	engine *engine.Engine

	closeOnce sync.Once
}

// NewServer creates an MCP server exposing the analyze, report, and SOS
// tools over the given engine.
func NewServer(cfg *Config, eng *engine.Engine) (*Server, error) {
	if eng == nil {
		return nil, fmt.Errorf("engine is required")
	}

	impl := &mcp.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}

	s := &Server{
		server: mcp.NewServer(impl, nil),
		engine: eng,
	}
	s.registerTools()
	return s, nil
}

// Run serves MCP over stdio until the client disconnects or ctx is done.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Close is safe to call multiple times. The engine's resources belong
// to the caller and are not closed here.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {})
	return nil
}

type analyzeInput struct {
	Query string `json:"query" jsonschema:"the user's travel or safety question"`
}

type reportInput struct {
	Text     string `json:"text" jsonschema:"description of what happened"`
	Location string `json:"location" jsonschema:"where the incident happened"`
	Time     string `json:"time,omitempty" jsonschema:"when it happened, format 2006-01-02 15:04, defaults to now"`
	Severity string `json:"severity,omitempty" jsonschema:"Low, Medium, or High"`
}

type sosInput struct{}

type sosOutput struct {
	Cases []models.Incident `json:"cases"`
	Count int               `json:"count"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "nightwatch_analyze",
		Description: "Analyze the risk of a travel plan or safety question against past incidents",
	}, s.handleAnalyze)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "nightwatch_report",
		Description: "File a new incident report; High severity reports are flagged as SOS cases",
	}, s.handleReport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "nightwatch_sos",
		Description: "List SOS-flagged incidents, most recent first",
	}, s.handleSOS)
}

func (s *Server) handleAnalyze(ctx context.Context, _ *mcp.CallToolRequest, input analyzeInput) (*mcp.CallToolResult, *engine.Analysis, error) {
	if input.Query == "" {
		return nil, nil, fmt.Errorf("query is required")
	}
	result, err := s.engine.Analyze(ctx, input.Query)
	if err != nil {
		return nil, nil, err
	}
	return nil, result, nil
}

func (s *Server) handleReport(ctx context.Context, _ *mcp.CallToolRequest, input reportInput) (*mcp.CallToolResult, *models.Incident, error) {
	inc, err := s.engine.AddIncident(ctx, input.Text, input.Location, input.Time, models.ParseSeverity(input.Severity))
	if err != nil {
		return nil, nil, err
	}
	return nil, inc, nil
}

func (s *Server) handleSOS(ctx context.Context, _ *mcp.CallToolRequest, _ sosInput) (*mcp.CallToolResult, *sosOutput, error) {
	cases, err := s.engine.SOSCases(ctx)
	if err != nil {
		return nil, nil, err
	}
	if cases == nil {
		cases = []models.Incident{}
	}
	return nil, &sosOutput{Cases: cases, Count: len(cases)}, nil
}
