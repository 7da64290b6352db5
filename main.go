// go_ytresearch — YouTube research MCP server.
//
// Exposes four MCP tools: generate_queries, search_youtube, get_transcripts,
// research_youtube, plus the general_instructions and research_topic prompts.
// Runs over stdio (default) or as an HTTP MCP server; the same components are
// available as CLI subcommands.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_ytresearch/internal/engine"
	"github.com/anatolykoptev/go_ytresearch/internal/engine/sources"
	"github.com/anatolykoptev/go_ytresearch/internal/ytserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "go_ytresearch",
		Short:         "YouTube research MCP server",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			engine.SetupLogger(engine.LoadConfig().LogLevel)
		},
		RunE: runServe,
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the MCP server (stdio or http, per MCP_TRANSPORT)",
			Args:  cobra.NoArgs,
			RunE:  runServe,
		},
		newQueriesCmd(),
		newSearchCmd(),
		newTranscriptsCmd(),
	)
	return root
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := engine.LoadConfig()
	if err := cfg.Validate(); err != nil {
		slog.Error("configuration invalid", slog.Any("error", err))
		return err
	}

	deps, err := buildDeps(cmd.Context(), cfg)
	if err != nil {
		slog.Error("init failed", slog.Any("error", err))
		return err
	}

	server := ytserver.NewServer(version, deps)
	slog.Info("starting go_ytresearch",
		slog.String("transport", cfg.Transport),
		slog.String("model", cfg.LLMModel),
	)

	switch cfg.Transport {
	case engine.TransportHTTP:
		err = mcpserver.Run(server, mcpserver.Config{
			Name:         "go_ytresearch",
			Version:      version,
			Port:         cfg.MCPPort,
			WriteTimeout: 300 * time.Second,
			Metrics:      engine.FormatMetrics,
		})
	case engine.TransportStdio, "":
		err = server.Run(cmd.Context(), &mcp.StdioTransport{})
	default:
		err = fmt.Errorf("unknown MCP_TRANSPORT %q (want %s or %s)", cfg.Transport, engine.TransportStdio, engine.TransportHTTP)
	}
	if err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
	return err
}

// buildDeps wires the three research components from configuration.
func buildDeps(ctx context.Context, cfg engine.Config) (ytserver.Deps, error) {
	completer, err := engine.NewCompleter(cfg)
	if err != nil {
		return ytserver.Deps{}, err
	}
	searcher, err := sources.NewVideoSearchClient(ctx, cfg)
	if err != nil {
		return ytserver.Deps{}, err
	}
	return ytserver.Deps{
		Expander: sources.NewQueryExpander(completer),
		Searcher: searcher,
		Fetcher:  sources.NewTranscriptFetcher(cfg),
	}, nil
}
