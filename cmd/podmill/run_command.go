package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"podmill/internal/config"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var episodeName string
	var maxSegments int

	cmd := &cobra.Command{
		Use:   "run [prompt]",
		Short: "Generate episodes from prompt recordings",
		Long: `Generate podcast episodes. With a prompt file argument, exactly that
recording is processed. With no argument, every recognized audio file in
the pending directory is processed in turn; completed prompts move to
the done directory and failed ones stay for a later retry.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && (episodeName != "" || maxSegments > 0) {
				return fmt.Errorf("--name and --max-segments require an explicit prompt file")
			}

			pipe, err := ctx.buildPipeline(cmd.Context())
			if err != nil {
				return err
			}
			defer pipe.Close()

			out := cmd.OutOrStdout()

			if len(args) == 1 {
				promptPath, err := config.ExpandPath(args[0])
				if err != nil {
					return fmt.Errorf("resolve prompt path: %w", err)
				}
				result, err := pipe.processor.ProcessFile(cmd.Context(), promptPath, episodeName, maxSegments)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Episode %s complete\n", result.EpisodeName)
				fmt.Fprintf(out, "  Audio:    %s\n", result.FinalFile)
				fmt.Fprintf(out, "  Segments: %d\n", result.Metadata.SegmentCount)
				if result.Metadata.Title != "" {
					fmt.Fprintf(out, "  Title:    %s\n", result.Metadata.Title)
				}
				return nil
			}

			summary, err := pipe.processor.Run(cmd.Context())
			if err != nil {
				return err
			}
			if summary.Discovered == 0 {
				fmt.Fprintf(out, "No prompts found in %s\n", pipe.cfg.Paths.PendingDir)
				return nil
			}
			fmt.Fprintf(out, "Processed %d prompt(s): %d succeeded, %d failed\n",
				summary.Discovered, summary.Succeeded, summary.Failed)
			if summary.Failed > 0 {
				return fmt.Errorf("%d prompt(s) failed; see the log for details", summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&episodeName, "name", "n", "", "Episode name (defaults to the prompt file name)")
	cmd.Flags().IntVarP(&maxSegments, "max-segments", "m", 0, "Limit synthesized segments (smoke testing)")
	return cmd
}
