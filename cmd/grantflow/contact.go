package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/grantflow/grantflow/cmd"
	"github.com/grantflow/grantflow/pkg/access"
	"github.com/grantflow/grantflow/pkg/attribute"
	"github.com/grantflow/grantflow/pkg/backend"
	"github.com/grantflow/grantflow/pkg/filter"
	"github.com/grantflow/grantflow/pkg/proto"
	"github.com/spf13/cobra"
)

var tableBorder = lipgloss.NormalBorder()

var contactCmd = &cobra.Command{
	Use:                "contact",
	Aliases:            []string{"contacts"},
	Short:              "Manage the contacts of a team",
	PersistentPreRunE:  cmd.InitBackendContext,
	PersistentPostRunE: cmd.CloseDBContext,
}

// identityFlags is the caller a contact command acts as.
type identityFlags struct {
	user  string
	admin bool
}

func (f *identityFlags) register(c *cobra.Command) {
	c.Flags().StringVarP(&f.user, "user", "u", "", "act as this user id")
	c.Flags().BoolVar(&f.admin, "admin", false, "act with the admin role")
}

func (f identityFlags) identity() access.Identity {
	id := access.Identity{UserID: f.user, UserName: f.user}
	if f.admin {
		id.Roles = []access.Role{access.Admin}
	}
	return id
}

func init() {
	var (
		listAs  identityFlags
		query   string
		filters string
		asJSON  bool
	)
	listCmd := &cobra.Command{
		Use:     "list TEAM",
		Aliases: []string{"ls"},
		Short:   "List the contacts of a team",
		Args:    cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)
			fs, err := filter.Parse([]byte(filters))
			if err != nil {
				return fmt.Errorf("%w: %w", proto.ErrInvalidFilter, err)
			}

			contacts, err := be.ListContacts(ctx, args[0], listAs.identity(), backend.ListOptions{
				Query:   query,
				Filters: fs,
			})
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(c.OutOrStdout(), contacts)
			}

			t := table.New().Border(tableBorder).Headers("ID", "NAME", "EMAIL", "CITY", "GROUP", "CREATED")
			for _, ct := range contacts {
				group := ""
				if ct.Group != nil {
					group = ct.Group.Name
				}
				t.Row(ct.ID, ct.Name, ct.Email, deref(ct.City), group, humanize.Time(ct.CreatedAt))
			}
			fmt.Fprintln(c.OutOrStdout(), t)
			return nil
		},
	}
	listAs.register(listCmd)
	listCmd.Flags().StringVarP(&query, "query", "q", "", "free text search")
	listCmd.Flags().StringVarP(&filters, "filters", "f", "", "filters as a JSON array")
	listCmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	var (
		createAs identityFlags
		in       proto.ContactInput
		attrs    []string
	)
	createCmd := &cobra.Command{
		Use:   "create TEAM",
		Short: "Create a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)
			in.TeamID = args[0]
			for _, kv := range attrs {
				k, v, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("attribute %q: expected KEY=VALUE", kv)
				}
				in.ProfileAttributes = append(in.ProfileAttributes, attribute.Raw{
					Key:   k,
					Type:  string(attribute.TypeString),
					Value: v,
				})
			}

			ct, err := be.CreateContact(ctx, in, createAs.identity())
			if err != nil {
				return err
			}

			fmt.Fprintln(c.OutOrStdout(), ct.ID)
			return nil
		},
	}
	createAs.register(createCmd)
	createCmd.Flags().StringVar(&in.Name, "name", "", "name of the contact")
	createCmd.Flags().StringVar(&in.Email, "email", "", "email address")
	createCmd.Flags().StringVar(&in.GroupID, "group", "", "group the contact belongs to")
	createCmd.Flags().StringVar(&in.Phone, "phone", "", "phone number")
	createCmd.Flags().StringVar(&in.City, "city", "", "city")
	createCmd.Flags().StringVar(&in.PostalCode, "postal-code", "", "postal code")
	createCmd.Flags().StringVar(&in.Country, "country", "", "country name")
	createCmd.Flags().StringVar(&in.CountryCode, "country-code", "", "ISO country code")
	createCmd.Flags().StringArrayVar(&attrs, "attribute", nil, "text profile attribute as KEY=VALUE")

	var (
		showAs   identityFlags
		showJSON bool
	)
	showCmd := &cobra.Command{
		Use:   "show TEAM ID",
		Short: "Show a contact",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)
			ct, err := be.ContactByID(ctx, args[0], args[1], showAs.identity())
			if err != nil {
				return err
			}
			if showJSON {
				return writeJSON(c.OutOrStdout(), ct)
			}

			w := c.OutOrStdout()
			fmt.Fprintf(w, "Name: %s\n", ct.Name)
			fmt.Fprintf(w, "Email: %s\n", ct.Email)
			if ct.City != nil {
				fmt.Fprintf(w, "City: %s\n", *ct.City)
			}
			for _, a := range ct.ProfileAttributes {
				fmt.Fprintf(w, "%s: %v\n", a.Key, a.Value)
			}
			for _, l := range ct.SocialLinks {
				fmt.Fprintf(w, "%s: %s\n", l.Platform, l.Handle)
			}
			fmt.Fprintf(w, "Created: %s\n", humanize.Time(ct.CreatedAt))
			return nil
		},
	}
	showAs.register(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output as JSON")

	deleteCmd := &cobra.Command{
		Use:   "delete TEAM ID...",
		Short: "Delete contacts",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)
			n, err := be.DeleteContacts(ctx, args[0], args[1:])
			if err != nil {
				return err
			}

			fmt.Fprintf(c.OutOrStdout(), "deleted %d\n", n)
			return nil
		},
	}

	contactCmd.AddCommand(
		listCmd,
		createCmd,
		showCmd,
		deleteCmd,
	)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
