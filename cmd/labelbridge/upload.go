package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lewtec/labelbridge/backend"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file...]",
	Short: "Upload images into a dataset",
	Long: `Upload images into a dataset, from local files or remote links.

Example:
  labelbridge upload --dataset 42 scans/*.png
  labelbridge upload --dataset 42 --link https://cdn.example.com/form.png`,
	RunE: func(cmd *cobra.Command, args []string) error {
		datasetID, _ := cmd.Flags().GetInt("dataset")
		links, _ := cmd.Flags().GetStringArray("link")
		if datasetID == 0 {
			return fmt.Errorf("--dataset is required")
		}
		if len(args) == 0 && len(links) == 0 {
			return fmt.Errorf("nothing to upload: pass files or --link")
		}

		uploads := make([]backend.ImageUpload, 0, len(args)+len(links))
		for _, path := range args {
			abs, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("failed to resolve %s: %w", path, err)
			}
			uploads = append(uploads, backend.ImageUpload{
				Source: backend.UploadSource{Path: abs},
			})
		}
		for _, link := range links {
			uploads = append(uploads, backend.ImageUpload{
				Source: backend.UploadSource{Link: link},
			})
		}

		ann, err := newAnnotator(cmd)
		if err != nil {
			return err
		}
		images, err := ann.UploadImages(cmd.Context(), datasetID, uploads)
		if err != nil {
			return fmt.Errorf("upload failed: %w", err)
		}

		for _, img := range images {
			fmt.Printf("%d\t%s\n", img.ID, img.Name)
		}
		fmt.Printf("Uploaded %d images to dataset %d\n", len(images), datasetID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().IntP("dataset", "d", 0, "Dataset id to upload into")
	uploadCmd.Flags().StringArrayP("link", "l", nil, "Remote image URL to attach (repeatable)")
}
