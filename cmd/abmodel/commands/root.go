// ABOUTME: Root CLI command and global flags
// ABOUTME: Wires every subcommand and the verbose, quiet, and format switches
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
 █████╗ ██████╗ ███╗   ███╗ ██████╗ ██████╗ ███████╗██╗
██╔══██╗██╔══██╗████╗ ████║██╔═══██╗██╔══██╗██╔════╝██║
███████║██████╔╝██╔████╔██║██║   ██║██║  ██║█████╗  ██║
██╔══██║██╔══██╗██║╚██╔╝██║██║   ██║██║  ██║██╔══╝  ██║
██║  ██║██████╔╝██║ ╚═╝ ██║╚██████╔╝██████╔╝███████╗███████╗
╚═╝  ╚═╝╚═════╝ ╚═╝     ╚═╝ ╚═════╝ ╚═════╝ ╚══════╝╚══════╝`

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "abmodel",
		Short: "Tetravalent antibody homology modeling",
		Long: banner + `

Build a homology model of a symmetric tetravalent antibody from one
light and one heavy chain sequence.

The input record is fetched from object storage, both chains are aligned
against a species template, the chains are duplicated into a
heavy/heavy/light/light construct, and the first generated structure is
stored at the output key.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, text, json")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewModelCmd())
	cmd.AddCommand(NewAlignCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewSyncCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
