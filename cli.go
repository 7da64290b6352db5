package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_ytresearch/internal/engine"
	"github.com/anatolykoptev/go_ytresearch/internal/engine/sources"
	"github.com/anatolykoptev/go_ytresearch/internal/toolutil"
	"github.com/spf13/cobra"
)

func newQueriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "queries <query>",
		Short:   "Generate YouTube search queries for a topic",
		Example: `  go_ytresearch queries "how transformers work"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := engine.LoadConfig()
			completer, err := engine.NewCompleter(cfg)
			if err != nil {
				return reportErr(err)
			}
			queries, err := sources.NewQueryExpander(completer).Expand(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return reportErr(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), toolutil.FormatQueries(queries))
			return nil
		},
	}
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "search <query> [max_results]",
		Short:   "Search YouTube and print video metadata",
		Example: `  go_ytresearch search "go generics" 5`,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			maxResults, err := parseMaxResults(args[1:])
			if err != nil {
				return reportErr(err)
			}
			client, err := sources.NewVideoSearchClient(cmd.Context(), engine.LoadConfig())
			if err != nil {
				return reportErr(err)
			}
			videos, err := client.Search(cmd.Context(), args[0], maxResults)
			fmt.Fprint(cmd.OutOrStdout(), toolutil.FormatVideos(args[0], videos))
			return err
		},
	}
}

func newTranscriptsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transcripts <ids>",
		Short: "Fetch transcripts for comma-separated or JSON-array video IDs",
		Example: `  go_ytresearch transcripts dQw4w9WgXcQ,9bZkp7q19f0
  go_ytresearch transcripts '["dQw4w9WgXcQ","9bZkp7q19f0"]'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := sources.ParseVideoIDs(args[0])
			if err != nil {
				return reportErr(err)
			}
			if len(ids) == 0 {
				return reportErr(fmt.Errorf("no video IDs given"))
			}
			f := sources.NewTranscriptFetcher(engine.LoadConfig())
			fmt.Fprint(cmd.OutOrStdout(), toolutil.FormatTranscripts(f.FetchAllText(cmd.Context(), ids)))
			return nil
		},
	}
}

// parseMaxResults reads the optional positional max_results argument.
func parseMaxResults(args []string) (int, error) {
	if len(args) == 0 {
		return engine.DefaultMaxResults, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("max_results must be a positive integer, got %q", args[0])
	}
	return n, nil
}

func reportErr(err error) error {
	slog.Error("command failed", slog.Any("error", err))
	return err
}
