package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "planctl",
		Short:         "Score trends, pick posting times and plan a week of content",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// plan subcommand
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a weekly content plan from an input file",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			mock, _ := cmd.Flags().GetBool("mock")
			verbose, _ := cmd.Flags().GetBool("verbose")
			input, err := loadPlanInput(file)
			if err != nil {
				return err
			}
			return runPlan(cmd.Context(), input, planOptions{Mock: mock, Verbose: verbose}, cmd.OutOrStdout())
		},
	}
	planCmd.Flags().StringP("file", "f", "", "YAML input file (required)")
	planCmd.Flags().Bool("mock", false, "Use the offline mock generator instead of live providers")
	planCmd.Flags().BoolP("verbose", "v", false, "Log progress to stderr")
	_ = planCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(planCmd)

	// route subcommand
	routeCmd := &cobra.Command{
		Use:   "route",
		Short: "Show which provider a task is routed to",
		RunE: func(cmd *cobra.Command, args []string) error {
			taskType, _ := cmd.Flags().GetString("type")
			complexity, _ := cmd.Flags().GetString("complexity")
			return runRoute(taskType, complexity, cmd.OutOrStdout())
		},
	}
	routeCmd.Flags().StringP("type", "t", "", "Task type, e.g. content-generation (required)")
	routeCmd.Flags().StringP("complexity", "c", "medium", "Task complexity: low, medium or high")
	_ = routeCmd.MarkFlagRequired("type")
	rootCmd.AddCommand(routeCmd)

	return rootCmd
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
