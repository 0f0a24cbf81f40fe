package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2beens/workoutlog/pkg"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print the bcrypt hash to use as " + envAdminPasswordHash,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] == "" {
			return errors.New("empty password")
		}
		hash, err := pkg.HashPassword(args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
		return err
	},
}
