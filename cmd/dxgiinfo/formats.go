package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/dxgi"
	"github.com/gogpu/dxgi/backend"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "Print the format table",
	Long: `Print the Vulkan format, aspect mask and WebGPU texture format every
DXGI format maps to, in color and depth mode.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printFormats(cmd.OutOrStdout())
	},
}

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List registered backend providers",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range backend.Available() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func printFormats(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DXGI\tVALUE\tCOLOR\tDEPTH\tTEXTURE")
	for _, f := range dxgi.Formats() {
		color := dxgi.LookupFormat(f, dxgi.FormatModeColor)
		depth := dxgi.LookupFormat(f, dxgi.FormatModeDepth)
		texture := dxgi.LookupFormat(f, dxgi.FormatModeAny).Texture
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%v\n", f, uint32(f), view(color), view(depth), texture)
	}
	return tw.Flush()
}

func view(info dxgi.FormatInfo) string {
	if !info.IsDefined() {
		return "-"
	}
	return fmt.Sprintf("%d/0x%x", info.Format, uint32(info.Aspect))
}
