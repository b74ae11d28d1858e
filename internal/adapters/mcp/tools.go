package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"storyaudit/internal/adapters/filesystem"
	"storyaudit/internal/application"
	"storyaudit/internal/application/commands"
	"storyaudit/internal/domain"
	"storyaudit/internal/ports"
)

// Tools holds what the MCP tool handlers need to run validations
type Tools struct {
	DefaultRepo string
	Rules       *domain.Rules
	RulesYAML   []byte
	History     ports.RunHistory // optional
	Logger      *zap.Logger
}

// Register adds all storyaudit tools to the MCP server.
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(validateTool(), t.validateHandler)
	s.AddTool(readReportTool(), t.readReportHandler)
	s.AddTool(listIssuesTool(), t.listIssuesHandler)
	s.AddTool(rulesTool(), t.rulesHandler)
	if t.History != nil {
		s.AddTool(historyTool(), t.historyHandler)
	}
}

func (t *Tools) repo(req mcp.CallToolRequest) ports.ContentRepository {
	return filesystem.NewRepository(req.GetString("repo_path", t.DefaultRepo))
}

func repoPathOption() mcp.ToolOption {
	return mcp.WithString("repo_path",
		mcp.Description("Repository root to audit. Omit to use the server default."),
	)
}

// --- validate ---

func validateTool() mcp.Tool {
	return mcp.NewTool("validate",
		mcp.WithDescription("Audit every Markdown document of a repository, write validation_report.json at its root and return the report."),
		repoPathOption(),
	)
}

func (t *Tools) validateHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := []commands.ValidateOption{commands.WithLogger(t.logger())}
	if t.History != nil {
		opts = append(opts, commands.WithHistory(t.History))
	}

	result, err := commands.NewValidateCommand(t.repo(req), t.Rules, opts...).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(string(result.Report)), nil
}

// --- read_report ---

func readReportTool() mcp.Tool {
	return mcp.NewTool("read_report",
		mcp.WithDescription("Return the last validation_report.json written at a repository root."),
		repoPathOption(),
	)
}

func (t *Tools) readReportHandler(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	acc, err := commands.NewLoadReportCommand(t.repo(req)).Execute()
	if err != nil {
		return toolError(err)
	}
	data, err := commands.EncodeReport(acc)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// --- list_issues ---

func listIssuesTool() mcp.Tool {
	return mcp.NewTool("list_issues",
		mcp.WithDescription("List the issues of the last validation report, one per line, optionally filtered by type."),
		repoPathOption(),
		mcp.WithString("type",
			mcp.Description("Issue type to keep"),
			mcp.Enum(issueTypeNames()...),
		),
	)
}

func (t *Tools) listIssuesHandler(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	issueType := req.GetString("type", "")
	if err := application.ValidateIssueType("issueType", issueType); err != nil {
		return toolError(err)
	}

	acc, err := commands.NewLoadReportCommand(t.repo(req)).Execute()
	if err != nil {
		return toolError(err)
	}

	issues := domain.FilterByType(acc.IssuesFound, domain.IssueType(issueType))
	if len(issues) == 0 {
		return mcp.NewToolResultText("No issues."), nil
	}

	var sb strings.Builder
	for _, issue := range issues {
		fmt.Fprintf(&sb, "%s  [%s]  %s\n", issue.File, issue.Type, issue.Message)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// --- rules ---

func rulesTool() mcp.Tool {
	return mcp.NewTool("rules",
		mcp.WithDescription("Show the validation rule set in effect, as YAML."),
	)
}

func (t *Tools) rulesHandler(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(string(t.RulesYAML)), nil
}

// --- history ---

func historyTool() mcp.Tool {
	return mcp.NewTool("history",
		mcp.WithDescription("List recorded validation runs, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of runs (default 10)"),
		),
	)
}

func (t *Tools) historyHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runs, err := commands.NewListRunsCommand(t.History, req.GetInt("limit", 10)).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	if len(runs) == 0 {
		return mcp.NewToolResultText("No runs recorded."), nil
	}

	var sb strings.Builder
	for _, run := range runs {
		fmt.Fprintf(&sb, "%s  %s  %s  files=%d issues=%d overall=%s\n",
			run.ID, run.StartedAt.Format("2006-01-02 15:04:05"), run.RepoPath,
			run.FilesChecked, run.IssueCount, run.Scores.Overall)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// --- helpers ---

func (t *Tools) logger() *zap.Logger {
	if t.Logger == nil {
		return zap.NewNop()
	}
	return t.Logger
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func issueTypeNames() []string {
	names := make([]string, len(domain.IssueTypes))
	for i, t := range domain.IssueTypes {
		names[i] = string(t)
	}
	return names
}
