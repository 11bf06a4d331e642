package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"filmpress/internal/capability"
	"filmpress/internal/deps"
	"filmpress/internal/encoder"
)

func newCapabilitiesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities",
		Short: "Show detected hardware encoders and GPUs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := deps.Preflight(); err != nil {
				return err
			}

			caps := capability.Detect(cmd.Context(), cfg.FFmpegBinary())

			rows := make([][]string, 0, 4)
			for _, vendor := range []capability.Vendor{capability.VendorNVIDIA, capability.VendorIntel, capability.VendorAMD} {
				id := capability.EncoderForVendor(vendor)
				rows = append(rows, []string{
					string(vendor),
					id,
					yesNo(caps.HasVendor(vendor)),
					yesNo(caps.Has(id)),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Vendor", "Encoder", "GPU installed", "Encoder available"},
				rows,
				nil,
			))

			choice, err := encoder.ParseChoice(cfg.Transcode.Encoder)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Selected for %q: %s\n", cfg.Transcode.Encoder, encoderLabel(encoder.Select(choice, caps)))
			return nil
		},
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
