package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"otpbot/commands"
	"otpbot/logger"

	"github.com/spf13/cobra"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the commands the bot understands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printCommands(cmd.OutOrStdout())
	},
}

func printCommands(w io.Writer) error {
	registry := commands.RegisterCommands(&commands.AppContext{Log: logger.Discard()})

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCATEGORY\tSLASH\tDESCRIPTION")
	for _, h := range registry.Handlers() {
		name, slash, desc := h.Intent().String(), "no", "text command only"
		if def := h.GetCommandDef(); def != nil {
			name, slash, desc = def.Name, "yes", def.Description
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, h.GetCategory(), slash, desc)
	}
	return tw.Flush()
}
