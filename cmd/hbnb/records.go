package main

import (
	"strings"

	"github.com/spf13/cobra"
)

// recordCmd runs a single console command built from the verb and its arguments.
func recordCmd(verb, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			line := strings.Join(append([]string{verb}, args...), " ")
			newConsole(openStorage()).Execute(line)
		},
	}
}

func init() {
	rootCmd.AddCommand(
		recordCmd("create", "create <class>", "Create a record and print its id"),
		recordCmd("show", "show <class> <id>", "Print a record"),
		recordCmd("destroy", "destroy <class> <id>", "Delete a record"),
		recordCmd("all", "all [<class>]", "Print every record, optionally of one class"),
		recordCmd("update", "update <class> <id> <attribute> <value>", "Set an attribute of a record"),
		recordCmd("count", "count <class>", "Print the number of records of a class"),
	)
}
