package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lewtec/labelbridge/backend"
	"github.com/lewtec/labelbridge/domain"
)

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", arg, err)
	}
	return id, nil
}

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Manage datasets inside a project",
}

var datasetCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a dataset in a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, _ := cmd.Flags().GetInt("project")
		description, _ := cmd.Flags().GetString("description")
		if projectID == 0 {
			return fmt.Errorf("--project is required")
		}

		ann, err := newAnnotator(cmd)
		if err != nil {
			return err
		}
		ds, err := ann.CreateDataset(cmd.Context(), projectID, backend.DatasetSpec{
			Name:        args[0],
			Description: description,
		})
		if err != nil {
			return fmt.Errorf("failed to create dataset: %w", err)
		}
		fmt.Printf("Created dataset %d: %s (project %d)\n", ds.ID, ds.Name, ds.ProjectID())
		return nil
	},
}

var datasetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List datasets, all of them or per project",
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, _ := cmd.Flags().GetInt("project")

		ann, err := newAnnotator(cmd)
		if err != nil {
			return err
		}

		var (
			datasets []*domain.DatasetInfo
			listErr  error
		)
		if projectID != 0 {
			datasets, listErr = ann.ListDatasets(cmd.Context(), projectID)
		} else {
			datasets, listErr = ann.ListAllDatasets(cmd.Context())
		}
		if listErr != nil {
			return fmt.Errorf("failed to list datasets: %w", listErr)
		}

		if len(datasets) == 0 {
			fmt.Println("No datasets found")
			return nil
		}
		for _, ds := range datasets {
			fmt.Printf("%d\tproject=%d\t%s\n", ds.ID, ds.ProjectID(), ds.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(datasetCmd)
	datasetCmd.AddCommand(datasetCreateCmd)
	datasetCmd.AddCommand(datasetListCmd)

	datasetCmd.PersistentFlags().IntP("project", "p", 0, "Project id")
}
