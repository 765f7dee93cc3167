package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lewtec/labelbridge/annotator"
	"github.com/lewtec/labelbridge/backend"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "labelbridge",
	Short: "Manage annotation projects across labeling platforms",
	Long: strings.TrimSpace(`
Talk to image annotation platforms through one command line: create projects
and datasets, upload images and inspect annotations without touching each
platform's own tooling.

The API token is read from --token or the LABELBRIDGE_TOKEN environment
variable; a .env file in the working directory is loaded if present.
    `),
	SilenceUsage: true,
}

// newAnnotator builds the facade from the persistent flags. Shared by every
// subcommand that talks to a platform.
func newAnnotator(cmd *cobra.Command) (*annotator.Annotator, error) {
	backendName, _ := cmd.Flags().GetString("backend")
	token, _ := cmd.Flags().GetString("token")
	baseURL, _ := cmd.Flags().GetString("base-url")

	if token == "" {
		token = os.Getenv("LABELBRIDGE_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("no API token: pass --token or set LABELBRIDGE_TOKEN")
	}

	return annotator.New(cmd.Context(), backendName, backend.Options{
		Token:   token,
		BaseURL: baseURL,
	})
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("could not load .env: %v", err)
	}
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatalf("Error executing command: %v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("backend", "b", "supervisely",
		"Annotation platform to talk to ("+strings.Join(backend.Backends(), ", ")+")")
	rootCmd.PersistentFlags().StringP("token", "t", "", "API token for the platform")
	rootCmd.PersistentFlags().String("base-url", "", "Override the platform API base URL")
}
