package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/dxgi"
)

var outputsCmd = &cobra.Command{
	Use:   "outputs",
	Short: "List outputs of each adapter",
	Long: `List the outputs of every adapter with their desktop coordinates and
the display mode reported for R8G8B8A8_UNORM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listOutputs(cmd.OutOrStdout(), factory)
	},
}

func listOutputs(w io.Writer, f dxgi.IDXGIFactory1) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ADAPTER\tOUTPUT\tNAME\tMONITOR\tDESKTOP\tMODE")

	for i := uint32(0); ; i++ {
		var a dxgi.IDXGIAdapter1
		if hr := f.EnumAdapters1(i, &a); hr == dxgi.DXGI_ERROR_NOT_FOUND {
			break
		} else if hr.Failed() {
			return fmt.Errorf("enumerate adapter %d: %w", i, hr)
		}
		err := listAdapterOutputs(tw, i, a)
		a.Release()
		if err != nil {
			return err
		}
	}
	return tw.Flush()
}

func listAdapterOutputs(w io.Writer, index uint32, a dxgi.IDXGIAdapter) error {
	for j := uint32(0); ; j++ {
		var out dxgi.IDXGIOutput
		if hr := a.EnumOutputs(j, &out); hr == dxgi.DXGI_ERROR_NOT_FOUND {
			return nil
		} else if hr.Failed() {
			return fmt.Errorf("enumerate output %d.%d: %w", index, j, hr)
		}

		var desc dxgi.OutputDesc
		out.GetDesc(&desc)
		mode := "-"
		var n uint32 = 1
		modes := make([]dxgi.ModeDesc, 1)
		if hr := out.GetDisplayModeList(dxgi.FormatR8G8B8A8Unorm, 0, &n, modes); hr.Succeeded() && n > 0 {
			m := modes[0]
			mode = fmt.Sprintf("%dx%d@%d", m.Width, m.Height, m.RefreshRate.Numerator/max(m.RefreshRate.Denominator, 1))
		}
		out.Release()

		r := desc.DesktopCoordinates
		fmt.Fprintf(w, "%d\t%d\t%s\t%#x\t(%d,%d)-(%d,%d)\t%s\n",
			index, j, desc.DeviceNameString(), uintptr(desc.Monitor),
			r.Left, r.Top, r.Right, r.Bottom, mode)
	}
}
