package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `designboard keeps a project's kanban board: ordered columns of task cards, each task with a design baseline and an activity log.

Concepts:
- Column: ordered list of task IDs. A task sits in at most one column.
- Status: a task's status is the title of the column it was last moved into.
- Design baseline: design link, preview, current version label and version history.
- Activity: append-only log per task, shown most recent first.
- Selection: at most one task open in the detail view; it always shows the latest task value.

Typical flow:
1) get_board to orient; get_task or list_tasks for details.
2) move_task to drag a card; moving into its own column changes nothing.
3) record_consensus to log an agreement.
4) propose_design_change logs a proposal; an approver signs it off shortly after, replacing the baseline. Poll get_proposal_state.

Docs:
- designboard://docs/workflow
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "designboard://docs/workflow",
		Name:        "docs_workflow",
		Title:       "Design change workflow",
		Description: "How proposals, approvals and the design baseline interact.",
		Content: `# Design change workflow

## Proposing

propose_design_change(task_id, design_link, reason)

- Both design_link and reason are trimmed and must be non-blank.
- A "proposed a design change" entry is appended right away.
- Only one proposal per task may await approval; a second one fails with PROPOSAL_PENDING.

## Approval

After the configured delay the approver:

- appends "approved the design change",
- sets design_link, preview_url and current_version,
- prepends a version_history entry dated the approval day.

These changes land together; no reader sees the entry without the new baseline.

## Errors

| Code | Meaning |
|------|---------|
| TASK_NOT_FOUND | unknown task_id |
| COLUMN_NOT_FOUND | unknown column_id |
| INVALID_INPUT | blank or malformed argument |
| PROPOSAL_PENDING | task already has a proposal awaiting approval |
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
