package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/focus-border/internal/highlight"
	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/output"
	"gopkg.in/yaml.v3"
)

// toText serializes v to YAML for an MCP response.
func toText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(b)
}

func (s *Server) handleHighlight(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := intParam(params, "window-id", 0)
	pid := intParam(params, "pid", 0)
	raise := boolParam(params, "raise", false)
	wait := boolParam(params, "wait", false)

	if id <= 0 {
		return mcp.NewToolResultError("window-id is required"), nil
	}

	win, err := s.app.ResolveWindow(uint32(id), pid)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	before, err := s.app.Shows(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	action := "highlight"
	if raise {
		action = "focus"
		err = s.app.Raise(ctx, win.Ref)
	} else {
		err = s.app.Highlight(ctx, win.Ref)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := output.HighlightResult{
		OK:     true,
		Action: action,
		Window: win.Ref,
		Title:  win.Title,
	}
	if wait {
		if err := s.app.WaitIdle(ctx); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		after, err := s.app.Shows(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		result.Shown = after > before
	} else {
		// Without waiting, Shown means the request is still in flight.
		st, err := s.app.Status(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		result.Shown = st.Highlight.State != highlight.Idle
	}
	return mcp.NewToolResultText(toText(result)), nil
}

func (s *Server) handleStatus(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := s.app.Status(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(toText(st)), nil
}

func (s *Server) handleDisplays(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	displays, err := s.app.Displays.Displays()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(toText(output.DisplaysResult{Displays: displays})), nil
}

func (s *Server) handleWindows(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pid := intParam(request.GetArguments(), "pid", 0)

	windows, err := s.app.Provider.Windows.ListWindows()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	filtered := []model.Window{}
	for _, w := range windows {
		if pid == 0 || w.Ref.PID == pid {
			filtered = append(filtered, w)
		}
	}
	return mcp.NewToolResultText(toText(filtered)), nil
}
