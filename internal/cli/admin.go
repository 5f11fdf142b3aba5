package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative commands (admin role required)",
	}

	cmd.AddCommand(newAdminGamesCmd())
	cmd.AddCommand(newAdminUsersCmd())
	cmd.AddCommand(newAdminStatsCmd())

	return cmd
}

func newAdminGamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Manage the game catalog",
	}

	cmd.AddCommand(newAdminGamesListCmd())
	cmd.AddCommand(newAdminGamesCreateCmd())
	cmd.AddCommand(newAdminGamesUpdateCmd())
	cmd.AddCommand(newAdminGamesDeleteCmd())

	return cmd
}

// gameFlags registers the shared create/update game flags
func gameFlags(cmd *cobra.Command, fields map[string]*string) {
	cmd.Flags().StringVar(fields["title"], "title", "", "Game title")
	cmd.Flags().StringVar(fields["description"], "description", "", "Description")
	cmd.Flags().StringVar(fields["icon"], "icon", "", "Display icon")
	cmd.Flags().StringVar(fields["category"], "category", "", "Category")
	cmd.Flags().StringVar(fields["difficulty"], "difficulty", "", "Difficulty")
	cmd.Flags().StringVar(fields["path"], "path", "", "Frontend path")
	cmd.Flags().StringVar(fields["color"], "color", "", "Display color")
	cmd.Flags().StringVar(fields["status"], "status", "", "Status: active, in-development, planned")
}

// gameBody builds a request body from the flags the caller actually set
func gameBody(cmd *cobra.Command, fields map[string]*string) map[string]string {
	body := make(map[string]string)
	for name, value := range fields {
		if cmd.Flags().Changed(name) {
			body[name] = *value
		}
	}
	return body
}

func newGameFields() map[string]*string {
	return map[string]*string{
		"title":       new(string),
		"description": new(string),
		"icon":        new(string),
		"category":    new(string),
		"difficulty":  new(string),
		"path":        new(string),
		"color":       new(string),
		"status":      new(string),
	}
}

func newAdminGamesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all games, including an empty catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Game

			if err := client.Get("/api/admin/games", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAdminGamesCreateCmd() *cobra.Command {
	fields := newGameFields()

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a game to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Post("/api/admin/games", gameBody(cmd, fields), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	gameFlags(cmd, fields)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}

func newAdminGamesUpdateCmd() *cobra.Command {
	fields := newGameFields()

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update fields of a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid game id: %s", args[0])
			}

			var result Game
			if err := client.Put(fmt.Sprintf("/api/admin/game/%d", id), gameBody(cmd, fields), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	gameFlags(cmd, fields)

	return cmd
}

func newAdminGamesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a game and its progress rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid game id: %s", args[0])
			}

			if err := client.Delete(fmt.Sprintf("/api/admin/game/%d", id), nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Game deleted")
			return nil
		},
	}
}

func newAdminUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}

	cmd.AddCommand(newAdminUsersListCmd())
	cmd.AddCommand(newAdminUsersGetCmd())
	cmd.AddCommand(newAdminUsersUpdateCmd())
	cmd.AddCommand(newAdminUsersDeleteCmd())

	return cmd
}

func newAdminUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []User

			if err := client.Get("/api/admin/users", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAdminUsersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id: %s", args[0])
			}

			var result User
			if err := client.Get(fmt.Sprintf("/api/admin/user/%d", id), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAdminUsersUpdateCmd() *cobra.Command {
	var user, email, role string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a user's username, email or role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id: %s", args[0])
			}

			body := make(map[string]string)
			if cmd.Flags().Changed("user") {
				body["username"] = user
			}
			if cmd.Flags().Changed("email") {
				body["email"] = email
			}
			if cmd.Flags().Changed("role") {
				body["role"] = role
			}

			var result User
			if err := client.Put(fmt.Sprintf("/api/admin/user/%d", id), body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "New username")
	cmd.Flags().StringVar(&email, "email", "", "New email")
	cmd.Flags().StringVar(&role, "role", "", "New role: user, admin")

	return cmd
}

func newAdminUsersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a user and their progress rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id: %s", args[0])
			}

			if err := client.Delete(fmt.Sprintf("/api/admin/user/%d", id), nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("User deleted")
			return nil
		},
	}
}

func newAdminStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show platform-wide statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlatformStats

			if err := client.Get("/api/admin/stats", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
