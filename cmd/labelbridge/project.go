package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lewtec/labelbridge/annotator"
	"github.com/lewtec/labelbridge/backend"
	"github.com/lewtec/labelbridge/domain"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage annotation projects",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a project (and its default dataset)",
	Long: `Create a project on the selected platform. A dataset with the same name is
created inside it, so uploads can start right away.

Label classes can be seeded from a YAML file:

  classes:
    - name: claim_id
      color: [255, 0, 0]
      geometry: bbox

Example:
  labelbridge project create claims --classes classes.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		projectType, _ := cmd.Flags().GetString("type")
		classFile, _ := cmd.Flags().GetString("classes")

		parsedType, err := domain.ParseProjectType(projectType)
		if err != nil {
			return err
		}

		var classes []domain.LabelClassInfo
		if classFile != "" {
			classes, err = annotator.LoadClasses(classFile)
			if err != nil {
				return fmt.Errorf("failed to load classes: %w", err)
			}
		}

		ann, err := newAnnotator(cmd)
		if err != nil {
			return err
		}
		proj, err := ann.CreateProject(cmd.Context(), backend.ProjectSpec{
			Name:        args[0],
			Description: description,
			Type:        parsedType,
			Classes:     classes,
		})
		if err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		fmt.Printf("Created project %d: %s\n", proj.ID, proj.Name)
		if len(classes) > 0 {
			fmt.Printf("Seeded %d label classes\n", len(classes))
		}
		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects on the platform",
	RunE: func(cmd *cobra.Command, args []string) error {
		ann, err := newAnnotator(cmd)
		if err != nil {
			return err
		}
		projects, err := ann.ListProjects(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}
		if len(projects) == 0 {
			fmt.Println("No projects found")
			return nil
		}
		for _, proj := range projects {
			fmt.Printf("%d\t%s\t%s\n", proj.ID, proj.Type, proj.Name)
		}
		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ann, err := newAnnotator(cmd)
		if err != nil {
			return err
		}
		if err := ann.DeleteProject(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		fmt.Printf("Deleted project %d\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectDeleteCmd)

	projectCreateCmd.Flags().StringP("description", "d", "", "Project description")
	projectCreateCmd.Flags().String("type", "images", "Project type (images, videos, volumes)")
	projectCreateCmd.Flags().StringP("classes", "c", "", "YAML file with label class definitions")
}
