package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	"github.com/juju/errors"
	"github.com/spf13/cobra"

	"github.com/gamegeeks/gamegeeks/api"
	"github.com/gamegeeks/gamegeeks/models/platform"
	"github.com/gamegeeks/gamegeeks/pkg/utils"
)

var docFormat string

func init() {
	docCmd.Flags().StringVar(&docFormat, "format", "json", "Output format of the document (json or yaml)")
	rootCmd.AddCommand(docCmd)
}

var docCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Prints the enriched OpenAPI document",
	Long: "Generate the OpenAPI document served on /v3/api-docs and print it\n" +
		"on the standard output, without starting the server.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		server := api.NewServer(platform.NewMemoryStore())
		server.WithConfig(cfg)

		doc, err := server.Document(ctx)
		if err != nil {
			return err
		}
		out, err := utils.JSONMarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		switch docFormat {
		case "json":
		case "yaml":
			if out, err = yaml.JSONToYAML(out); err != nil {
				return err
			}
		default:
			return errors.NotValidf("format %q", docFormat)
		}
		_, err = fmt.Fprintln(os.Stdout, string(out))
		return err
	},
}
