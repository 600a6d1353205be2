package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListQuestsTool(srv, svc)
	registerSetQuestTool(srv, svc)
	registerGetProgressTool(srv, svc)
	registerExportProgressTool(srv, svc)
	registerImportProgressTool(srv, svc)
	registerToggleAllTool(srv, svc)
}

func registerListQuestsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_quests",
		mcp.WithDescription("List checklist sections and their quests with checked state."),
		mcp.WithString("category",
			mcp.Description("Optional category name to restrict the listing to."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sections, err := svc.ListQuests(ctx, request.GetString("category", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"sections": sections,
			"count":    len(sections),
		})
	})
}

func registerSetQuestTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_quest",
		mcp.WithDescription("Mark a quest as completed or not completed."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Quest identifier, for example main-quest-0."),
		),
		mcp.WithBoolean("checked",
			mcp.Description("Completion state to set. Defaults to true."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		res, err := svc.SetQuest(ctx, id, request.GetBool("checked", true))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerGetProgressTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_progress",
		mcp.WithDescription("Report overall and per-section completion."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sum, err := svc.Progress(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(sum)
	})
}

func registerExportProgressTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"export_progress",
		mcp.WithDescription("Return the progress export document."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		doc, err := svc.Export(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(doc), nil
	})
}

func registerImportProgressTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"import_progress",
		mcp.WithDescription("Replace progress with the contents of an export document."),
		mcp.WithString("document",
			mcp.Required(),
			mcp.Description("JSON object mapping quest ids to completion."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		doc, err := request.RequireString("document")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		p, err := svc.Import(ctx, doc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(p)
	})
}

func registerToggleAllTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_all",
		mcp.WithDescription("Expand or collapse every section."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		all, err := svc.ToggleAll(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]bool{"allExpanded": all})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
