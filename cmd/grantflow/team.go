package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/grantflow/grantflow/cmd"
	"github.com/grantflow/grantflow/pkg/backend"
	"github.com/spf13/cobra"
)

var teamCmd = &cobra.Command{
	Use:                "team",
	Aliases:            []string{"teams"},
	Short:              "Manage teams",
	PersistentPreRunE:  cmd.InitBackendContext,
	PersistentPostRunE: cmd.CloseDBContext,
}

func init() {
	teamCreateCmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a team and its default group",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)
			team, err := be.CreateTeam(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(c.OutOrStdout(), team.ID)
			return nil
		},
	}

	var asJSON bool
	teamListCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List teams",
		Args:    cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)
			teams, err := be.Teams(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(c.OutOrStdout(), teams)
			}

			t := table.New().Border(tableBorder).Headers("ID", "NAME", "CREATED")
			for _, team := range teams {
				t.Row(team.ID, team.Name, humanize.Time(team.CreatedAt))
			}
			fmt.Fprintln(c.OutOrStdout(), t)
			return nil
		},
	}
	teamListCmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	fieldAccessCmd := &cobra.Command{
		Use:   "field-access TEAM FIELD [GROUP...]",
		Short: "Restrict a contact field to the given groups",
		Long: "Restrict a contact field to the given groups. Without groups the field " +
			"becomes visible to everyone in the team again.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)
			return be.SetFieldAccess(ctx, args[0], args[1], args[2:])
		},
	}

	teamCmd.AddCommand(
		teamCreateCmd,
		teamListCmd,
		fieldAccessCmd,
	)
}
