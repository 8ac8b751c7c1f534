package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/rabbitadm/pkg/admin"
)

func newUserCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "user",
		Aliases: []string{"users"},
		Short:   "Manage users",
	}

	cmd.AddCommand(newUserListCmd(flags))
	cmd.AddCommand(newUserCreateCmd(flags))
	cmd.AddCommand(newUserDeleteCmd(flags))

	return cmd
}

func newUserListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "user.list", func(s *session) error {
				result := s.client.Users().GetAll(s.ctx)
				return renderList(cmd, s, "list users", "users", result,
					[]string{"NAME", "TAGS", "HASHING"},
					func(u admin.UserInfo) []string {
						return []string{u.Name, valueOrFallback(formatTags(u.Tags), "-"), u.HashingAlgorithm}
					})
			})
		},
	}
}

// formatTags accepts both the comma separated string and the array form
// returned by different broker versions.
func formatTags(tags interface{}) string {
	switch v := tags.(type) {
	case string:
		return v
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, tag := range v {
			parts = append(parts, fmt.Sprint(tag))
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}

func newUserCreateCmd(flags *rootFlags) *cobra.Command {
	var (
		password string
		hash     string
		tags     []string
	)

	cmd := &cobra.Command{
		Use:   "create <username>",
		Short: "Create or update a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "user.create", func(s *session) error {
				result := s.client.Users().Create(s.ctx, func(a *admin.UserCreateAction) {
					a.User(args[0], password)
					if hash != "" {
						a.WithPasswordHash(hash)
					}
					a.WithTags(tags...)
				})
				return renderDone(cmd, s, "create user", fmt.Sprintf("user %q created", args[0]), result)
			})
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Plain text password")
	cmd.Flags().StringVar(&hash, "password-hash", "", "Pre-hashed password, used instead of --password")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Comma separated user tags, e.g. administrator,monitoring")

	return cmd
}

func newUserDeleteCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "user.delete", func(s *session) error {
				result := s.client.Users().Delete(s.ctx, func(a *admin.UserDeleteAction) {
					a.User(args[0])
				})
				return renderDone(cmd, s, "delete user", fmt.Sprintf("user %q deleted", args[0]), result)
			})
		},
	}
}
