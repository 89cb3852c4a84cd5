package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/grantflow/grantflow/cmd"
	"github.com/grantflow/grantflow/pkg/access"
	"github.com/grantflow/grantflow/pkg/backend"
	"github.com/grantflow/grantflow/pkg/proto"
	"github.com/spf13/cobra"
)

var groupCmd = &cobra.Command{
	Use:                "group",
	Aliases:            []string{"groups"},
	Short:              "Manage the groups of a team",
	PersistentPreRunE:  cmd.InitBackendContext,
	PersistentPostRunE: cmd.CloseDBContext,
}

func init() {
	var allContacts bool
	var modules []string
	groupCreateCmd := &cobra.Command{
		Use:   "create TEAM NAME",
		Short: "Create a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)
			opts := proto.GroupOptions{
				Name:                 args[1],
				CanAccessAllContacts: allContacts,
			}
			for _, m := range modules {
				var sm access.Submodule
				if err := sm.UnmarshalText([]byte(m)); err != nil {
					return fmt.Errorf("%s: %w", m, err)
				}
				opts.Modules = append(opts.Modules, sm)
			}

			g, err := be.CreateGroup(ctx, args[0], opts)
			if err != nil {
				return err
			}

			fmt.Fprintln(c.OutOrStdout(), g.ID)
			return nil
		},
	}
	groupCreateCmd.Flags().BoolVar(&allContacts, "all-contacts", false, "members can access every contact of the team")
	groupCreateCmd.Flags().StringSliceVar(&modules, "module", nil, "submodules shown to members (demographics, supervision)")

	var asJSON bool
	groupListCmd := &cobra.Command{
		Use:     "list TEAM",
		Aliases: []string{"ls"},
		Short:   "List the groups of a team",
		Args:    cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)
			groups, err := be.Groups(ctx, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(c.OutOrStdout(), groups)
			}

			t := table.New().Border(tableBorder).Headers("ID", "NAME", "ALL CONTACTS", "MODULES", "DEFAULT")
			for _, g := range groups {
				mods := make([]string, 0, len(g.Modules))
				for _, m := range g.Modules {
					mods = append(mods, m.String())
				}
				t.Row(g.ID, g.Name, strconv.FormatBool(g.CanAccessAllContacts),
					strings.Join(mods, ","), strconv.FormatBool(g.IsDefault))
			}
			fmt.Fprintln(c.OutOrStdout(), t)
			return nil
		},
	}
	groupListCmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	addMemberCmd := &cobra.Command{
		Use:   "add-member TEAM GROUP USER",
		Short: "Add a user to a group",
		Args:  cobra.ExactArgs(3),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)
			return be.AddGroupMember(ctx, args[0], args[1], args[2])
		},
	}

	removeMemberCmd := &cobra.Command{
		Use:   "remove-member TEAM GROUP USER",
		Short: "Remove a user from a group",
		Args:  cobra.ExactArgs(3),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)
			return be.RemoveGroupMember(ctx, args[0], args[1], args[2])
		},
	}

	groupCmd.AddCommand(
		groupCreateCmd,
		groupListCmd,
		addMemberCmd,
		removeMemberCmd,
	)
}
