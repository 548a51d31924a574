package main

import (
	"fmt"
	"io"
	"os"

	"github.com/oy3o/efx"
	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Print the target and command list of an .efx file",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}
}

func runInfo(cmd *cobra.Command, args []string) error {
	log := newLogger()
	opts, err := readOptions(log)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	f, err := efx.Parse(data, opts...)
	if err != nil {
		return err
	}
	printInfo(cmd.OutOrStdout(), f)
	return nil
}

func printInfo(w io.Writer, f *efx.EffectFile) {
	fmt.Fprintf(w, "target:   %s (%s endian)\n", f.Target, f.Endian)
	fmt.Fprintf(w, "unknown:  %g\n", f.Unknown)
	fmt.Fprintf(w, "commands: %d\n", len(f.Commands))
	for i, c := range f.Commands {
		fmt.Fprintf(w, "%5d %-22s %s\n", i, c.Opcode(), describe(c))
	}
}

func describe(c efx.Command) string {
	switch c := c.(type) {
	case *efx.ResourceAddCommand:
		return describeResource(c)
	case *efx.SchedulerAddCommand:
		return fmt.Sprintf("meta=%d page=%d scheduler=%d type=%s",
			c.MetaID, c.PageID, c.SchedulerID, c.Scheduler.Type())
	case *efx.UnhandledCommand:
		return fmt.Sprintf("%d bytes, data offset %d", len(c.Data), c.DataOffset)
	}
	return ""
}

func describeResource(c *efx.ResourceAddCommand) string {
	switch r := c.Resource.(type) {
	case *efx.Unknown50Resource:
		return fmt.Sprintf("%s entries=%d textures=%v models=%v", c.Key, len(r.Entries), r.TextureIDs, r.ModelIDs)
	case *efx.Unknown51Resource:
		return fmt.Sprintf("%s entries=%d", c.Key, len(r.Entries))
	case *efx.ModelResource:
		return fmt.Sprintf("%s vertices=%d triangles=%d quads=%d", c.Key, len(r.Vertices), len(r.TriangleFlags), len(r.QuadFlags))
	case *efx.UnhandledResource:
		return fmt.Sprintf("%s %d raw bytes", c.Key, len(r.Data))
	}
	return c.Key.String()
}
