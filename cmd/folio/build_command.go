package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"folio/internal/builder"
	"folio/internal/journal"
	"folio/internal/logging"
	"folio/internal/probe"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var inputPath string
	var outputPath string
	var assetsPath string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Create the directory tree and sidecar files from a CSV description",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			extractor := probe.NewExtractor(
				probe.DecodeConfigProber{},
				probe.FFprobeProber{Binary: cfg.Probe.FFprobeBinary},
				logger,
			)
			b := builder.New(cfg, extractor, logger)

			var store *journal.Store
			var runID string
			if cfg.Journal.Enabled {
				store, err = journal.Open(cfg.Journal.Path)
				if err != nil {
					return fmt.Errorf("open journal: %w", err)
				}
				defer store.Close()

				runID, err = store.BeginRun(cmd.Context(), inputPath, outputPath, assetsPath)
				if err != nil {
					return fmt.Errorf("record run: %w", err)
				}
				b.SetRecorder(&journalRecorder{store: store, runID: runID})
			}

			result, err := b.Run(cmd.Context(), builder.Request{
				Source:      inputPath,
				Destination: outputPath,
				AssetsRoot:  assetsPath,
			})
			if store != nil && result != nil {
				if finishErr := store.FinishRun(cmd.Context(), runID, len(result.Nodes), len(result.Diagnostics)); finishErr != nil {
					logger.Warn("journal finish failed", logging.Error(finishErr))
				}
			}
			if err != nil {
				return err
			}

			renderBuildSummary(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "CSV file describing the hierarchy (required)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination root for the directory tree (required)")
	cmd.Flags().StringVarP(&assetsPath, "assets", "a", "", "Optional assets root to match and copy media from")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

type journalRecorder struct {
	store *journal.Store
	runID string
}

func (r *journalRecorder) RecordNode(ctx context.Context, node builder.Node) error {
	return r.store.RecordNode(ctx, r.runID, journal.NodeRecord{
		Hierarchy: node.Hierarchy,
		Path:      node.Path,
		Role:      node.Role.String(),
		Matches:   len(node.Matched),
		Warnings:  node.Warnings,
	})
}

func renderBuildSummary(cmd *cobra.Command, result *builder.Result) {
	out := cmd.OutOrStdout()

	rows := make([][]string, 0, len(result.Nodes))
	for _, node := range result.Nodes {
		rows = append(rows, []string{
			node.Hierarchy,
			node.Role.String(),
			strconv.Itoa(len(node.Matched)),
			strconv.Itoa(node.Warnings),
		})
	}
	writeTable(out,
		[]string{"Hierarchy", "Role", "Assets", "Warnings"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
	)

	if len(result.Diagnostics) > 0 {
		fmt.Fprintf(out, "\n%d warning(s):\n", len(result.Diagnostics))
		for _, diagnostic := range result.Diagnostics {
			fmt.Fprintf(out, "  %s\n", diagnostic)
		}
	}
	fmt.Fprintf(out, "\nBuilt %d node(s)\n", len(result.Nodes))
}
