package mcp

import (
	"context"
	"encoding/json"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools exposes every handler method as an MCP tool.
func registerTools(server *sdkmcp.Server, h *Handler) {
	// Board
	addTool[EmptyParams](server, h, "get_board",
		"Get the board: columns in order, each with its cards and a one-line latest activity")
	addTool[MoveTaskParams](server, h, "move_task",
		"Move a task to the end of another column; the task status becomes that column's title. Moving to the current column is a no-op")

	// Tasks
	addTool[GetTaskParams](server, h, "get_task",
		"Get a task with its design baseline, version history and activity log")
	addTool[ListTasksParams](server, h, "list_tasks",
		"List tasks ordered by ID, optionally filtered by status or tag")
	addTool[GetActivityParams](server, h, "get_activity",
		"Get a task's activity log, most recent first")

	// Collaboration
	addTool[RecordConsensusParams](server, h, "record_consensus",
		"Record a consensus reached on a task")
	addTool[ProposeDesignChangeParams](server, h, "propose_design_change",
		"Propose a new design link for a task. The change is approved automatically after a short delay")
	addTool[GetProposalStateParams](server, h, "get_proposal_state",
		"Get whether a task's design proposal is none, submitted or approved")

	// Selection
	addTool[SelectTaskParams](server, h, "select_task",
		"Open a task in the detail view; the view follows every later change to that task")
	addTool[EmptyParams](server, h, "get_selection",
		"Get the task currently open in the detail view")
	addTool[EmptyParams](server, h, "clear_selection",
		"Close the detail view")
}

func addTool[In any](server *sdkmcp.Server, h *Handler, name, description string) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: name, Description: description},
		func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
			params, err := json.Marshal(in)
			if err != nil {
				return nil, nil, err
			}
			result, err := h.Handle(ctx, name, params)
			if err != nil {
				return toolError(err), nil, nil
			}
			return toolResult(result)
		})
}

func toolResult(result any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, nil, err
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}

func toolError(err error) *sdkmcp.CallToolResult {
	text := err.Error()
	if apiErr, ok := err.(*APIError); ok {
		if data, marshalErr := json.Marshal(apiErr); marshalErr == nil {
			text = string(data)
		}
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: text}},
		IsError: true,
	}
}
