package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/dxgi"
)

var adaptersCmd = &cobra.Command{
	Use:   "adapters",
	Short: "List adapters",
	Long: `List every adapter the factory enumerates with its PCI ids, memory
sizes and LUID. Vendor and device ids include any configured override.

Example:
  dxgiinfo adapters
  DXVK_CUSTOM_VENDOR_ID=10de dxgiinfo adapters`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listAdapters(cmd.OutOrStdout(), factory)
	},
}

const mib = 1 << 20

func listAdapters(w io.Writer, f dxgi.IDXGIFactory1) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tNAME\tVENDOR\tDEVICE\tVRAM (MiB)\tSHARED (MiB)\tLUID\tFLAGS")

	for i := uint32(0); ; i++ {
		var a dxgi.IDXGIAdapter1
		if hr := f.EnumAdapters1(i, &a); hr == dxgi.DXGI_ERROR_NOT_FOUND {
			break
		} else if hr.Failed() {
			return fmt.Errorf("enumerate adapter %d: %w", i, hr)
		}

		var desc dxgi.AdapterDesc1
		hr := a.GetDesc1(&desc)
		a.Release()
		if hr.Failed() {
			return fmt.Errorf("describe adapter %d: %w", i, hr)
		}
		fmt.Fprintf(tw, "%d\t%s\t%04x\t%04x\t%d\t%d\t%08x:%08x\t%s\n",
			i, desc.DescriptionString(), desc.VendorID, desc.DeviceID,
			desc.DedicatedVideoMemory/mib, desc.SharedSystemMemory/mib,
			uint32(desc.AdapterLuid.HighPart), desc.AdapterLuid.LowPart,
			adapterFlags(desc.Flags))
	}
	return tw.Flush()
}

func adapterFlags(f dxgi.AdapterFlag) string {
	switch f {
	case dxgi.AdapterFlagNone:
		return "-"
	case dxgi.AdapterFlagSoftware:
		return "software"
	case dxgi.AdapterFlagRemote:
		return "remote"
	}
	return fmt.Sprintf("0x%x", uint32(f))
}
