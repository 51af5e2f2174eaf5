package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"podmill/internal/config"
)

func newVoicesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "voices",
		Short:       "List the available synthesis voices",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0)
			for _, voice := range config.KnownVoices() {
				rows = append(rows, []string{voice, config.VoiceDescription(voice)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Voice", "Description"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}
}
