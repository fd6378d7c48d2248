package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/folio/auth"
	"github.com/danielhkuo/folio/capability"
	"github.com/danielhkuo/folio/cliparse"
	"github.com/danielhkuo/folio/db"
	"github.com/danielhkuo/folio/providers"
	"github.com/danielhkuo/folio/store"
	"github.com/danielhkuo/folio/templates"
)

type options struct {
	configPath   string
	envFile      string
	databaseURL  string
	databaseType string
	adminSalt    string
}

// config layers the persistent flags over file and environment settings.
func (o *options) config() (cliparse.Config, error) {
	cfg, err := cliparse.Load(o.configPath, o.envFile)
	if err != nil {
		return cliparse.Config{}, err
	}
	if o.databaseURL != "" {
		cfg.DatabaseURL = o.databaseURL
	}
	if o.databaseType != "" {
		cfg.DatabaseType = o.databaseType
	}
	if o.adminSalt != "" {
		cfg.AdminKeySalt = o.adminSalt
	}
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "folioctl",
		Short:         "Administer a folio CMS installation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&o.configPath, "config", "c", os.Getenv("FOLIO_CONFIG"), "TOML config file")
	pf.StringVar(&o.envFile, "env-file", ".env", "dotenv file loaded into the environment")
	pf.StringVarP(&o.databaseURL, "database-url", "d", "", "Database URL")
	pf.StringVarP(&o.databaseType, "database-type", "t", "", "Database type (sqlite or postgres)")
	pf.StringVar(&o.adminSalt, "admin-salt", "", "Admin key salt")

	root.AddCommand(
		newMigrateCmd(o),
		newTemplatesCmd(),
		newCapabilitiesCmd(),
		newAdminKeyCmd(o),
	)
	return root
}

func newMigrateCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.config()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("database URL required (use -d or DATABASE_URL env)")
			}
			dialect, err := db.ParseDialect(cfg.DatabaseType)
			if err != nil {
				return err
			}
			conn, err := db.Open(dialect, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer conn.Close()
			if err := db.CreateSchema(conn, dialect); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema up to date (%s)\n", dialect)
			return nil
		},
	}
}

// definitionCatalog lists the content capabilities. Its providers are
// never executed, so no database is attached.
func definitionCatalog() (*capability.Catalog, error) {
	catalog := capability.NewCatalog()
	if err := providers.Register(catalog, store.New(nil, db.SQLite)); err != nil {
		return nil, err
	}
	return catalog, nil
}

func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Inspect section templates",
	}

	var dir string
	list := &cobra.Command{
		Use:   "list",
		Short: "List built-in templates merged with an override directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := templates.Load(dir)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tVERSION\tSLOTS\tCAPABILITY")
			for _, def := range defs {
				source := "-"
				if def.DataSource != nil {
					source = string(def.DataSource.Capability)
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", def.Key, def.Version, strings.Join(def.Slots, ","), source)
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVar(&dir, "dir", "", "Template override directory")

	validate := &cobra.Command{
		Use:   "validate <dir>",
		Short: "Check override templates and their capability bindings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := templates.Load(args[0])
			if err != nil {
				return err
			}
			registry, err := templates.NewRegistryFrom(defs)
			if err != nil {
				return err
			}
			catalog, err := definitionCatalog()
			if err != nil {
				return err
			}
			if err := registry.CheckBindings(catalog); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d templates ok (version %s)\n", len(defs), registry.Version())
			return nil
		},
	}

	cmd.AddCommand(list, validate)
	return cmd
}

func newCapabilitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capabilities",
		Short: "Inspect data capabilities",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered capabilities and their parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := definitionCatalog()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tRETURNS\tPARAMETERS")
			for _, def := range catalog.Definitions() {
				params := make([]string, 0, len(def.Parameters))
				for _, p := range def.Parameters {
					s := p.Name + ":" + string(p.Type)
					if p.Required {
						s += "!"
					}
					params = append(params, s)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", def.Key, def.Returns, strings.Join(params, " "))
			}
			return tw.Flush()
		},
	})
	return cmd
}

func newAdminKeyCmd(o *options) *cobra.Command {
	var newSalt bool
	cmd := &cobra.Command{
		Use:   "admin-key",
		Short: "Print the X-Admin-Key for the configured salt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if newSalt {
				salt, err := auth.GenerateID(32)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "ADMIN_KEY_SALT=%s\n", salt)
				fmt.Fprintf(out, "X-Admin-Key: %s\n", auth.GenerateAdminKey(auth.AdminScope, salt))
				return nil
			}
			cfg, err := o.config()
			if err != nil {
				return err
			}
			if cfg.AdminKeySalt == "" {
				return fmt.Errorf("ADMIN_KEY_SALT required (or pass --new-salt)")
			}
			fmt.Fprintf(out, "X-Admin-Key: %s\n", auth.GenerateAdminKey(auth.AdminScope, cfg.AdminKeySalt))
			return nil
		},
	}
	cmd.Flags().BoolVar(&newSalt, "new-salt", false, "Generate a fresh salt and print it with its key")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("folioctl failed", "error", err)
		os.Exit(1)
	}
}
