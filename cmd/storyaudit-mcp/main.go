package main

import (
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	mcpadapter "storyaudit/internal/adapters/mcp"
	"storyaudit/internal/adapters/sqlite"
	"storyaudit/internal/config"
)

func main() {
	repoFlag := flag.String("repo", config.RepoPath(), "default repository to audit")
	rulesFlag := flag.String("rules", "", "YAML or TOML rule file overriding the built-in rules")
	historyFlag := flag.Bool("history", false, "record runs and expose the history tool")
	flag.Parse()

	// stdout carries the MCP protocol, so logs go to stderr
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		log.Fatalf("storyaudit-mcp: %v", err)
	}
	defer logger.Sync()

	ruleSet, err := config.LoadRuleSet(*rulesFlag)
	if err != nil {
		logger.Fatal("failed to load rules", zap.Error(err))
	}
	rules, err := ruleSet.Compile()
	if err != nil {
		logger.Fatal("failed to compile rules", zap.Error(err))
	}
	rulesYAML, err := ruleSet.Marshal()
	if err != nil {
		logger.Fatal("failed to render rules", zap.Error(err))
	}

	tools := &mcpadapter.Tools{
		DefaultRepo: *repoFlag,
		Rules:       rules,
		RulesYAML:   rulesYAML,
		Logger:      logger,
	}

	if *historyFlag {
		history, err := sqlite.OpenHistory(config.HistoryPath())
		if err != nil {
			logger.Fatal("failed to open history", zap.Error(err))
		}
		defer history.Close()
		tools.History = history
	}

	mcpServer := server.NewMCPServer(
		"storyaudit-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)
	tools.Register(mcpServer)

	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}
