package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/marcus/ticklist/internal/store"
	"github.com/marcus/ticklist/internal/web"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Local account management",
}

var adminUserCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var adminUserAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a user account",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if email == "" || password == "" {
			return fmt.Errorf("--email and --password are required")
		}

		st := openStore(cmd.Flags())
		defer st.Close()

		u, err := st.CreateUser(email, password)
		if err != nil {
			return err
		}
		fmt.Printf("created user %s (%s)\n", u.Email, u.ID)
		return nil
	},
}

var adminUserListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := openStore(cmd.Flags())
		defer st.Close()

		users, err := st.ListUsers()
		if err != nil {
			return err
		}
		for _, u := range users {
			fmt.Printf("%s\t%s\t%s\n", u.ID, u.Email, u.CreatedAt.Format("2006-01-02"))
		}
		return nil
	},
}

func init() {
	addDBFlag(adminUserAddCmd.Flags())
	adminUserAddCmd.Flags().String("email", "", "user email address")
	adminUserAddCmd.Flags().String("password", "", "initial password")
	addDBFlag(adminUserListCmd.Flags())

	adminUserCmd.AddCommand(adminUserAddCmd, adminUserListCmd)
	adminCmd.AddCommand(adminUserCmd)
	rootCmd.AddCommand(adminCmd)
}

func addDBFlag(fs *pflag.FlagSet) {
	fs.String("db", "", "path to the database (default: from TICKLIST_DB_PATH or ./data/ticklist.db)")
}

// openStore opens the database named by --db, falling back to the
// server configuration.
func openStore(fs *pflag.FlagSet) *store.Store {
	dbPath, _ := fs.GetString("db")
	if dbPath == "" {
		dbPath = web.LoadConfig().DBPath
	}
	st, err := store.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: open database: %v\n", err)
		os.Exit(1)
	}
	return st
}
