package main

import (
	"fmt"
	"strconv"

	"github.com/grantflow/grantflow/cmd"
	"github.com/grantflow/grantflow/pkg/backend"
	"github.com/spf13/cobra"
)

var postalCmd = &cobra.Command{
	Use:                "postal",
	Short:              "Manage postal code centroids",
	PersistentPreRunE:  cmd.InitBackendContext,
	PersistentPostRunE: cmd.CloseDBContext,
}

func init() {
	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import postal code centroids",
		Long: "Import postal code centroids from a GeoNames postal code dump or a CSV " +
			"file with country, postal code, latitude and longitude columns.",
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)
			imported, skipped, err := be.ImportCentroidsFile(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(c.OutOrStdout(), "imported %d, skipped %d\n", imported, skipped)
			return nil
		},
	}

	var asJSON bool
	lookupCmd := &cobra.Command{
		Use:   "lookup COUNTRY POSTAL",
		Short: "Show the centroid of a postal code",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)
			centroid, err := be.ResolveCentroid(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(c.OutOrStdout(), centroid)
			}

			fmt.Fprintf(c.OutOrStdout(), "%s %s %s %s %s\n",
				centroid.CountryCode,
				centroid.PostalCode,
				strconv.FormatFloat(centroid.Latitude, 'f', -1, 64),
				strconv.FormatFloat(centroid.Longitude, 'f', -1, 64),
				centroid.PlaceName,
			)
			return nil
		},
	}
	lookupCmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	postalCmd.AddCommand(
		importCmd,
		lookupCmd,
	)
}
