package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/folio-dev/folio/internal/colors"
)

func init() {
	rootCmd.AddCommand(colorCmd)
	colorCmd.AddCommand(colorInfoCmd)
}

var colorCmd = &cobra.Command{
	Use:   "color",
	Short: "Color utilities",
}

// colorInfo is the JSON shape of color info.
type colorInfo struct {
	Hex         string     `json:"hex"`
	Display     string     `json:"display"`
	RGB         colors.RGB `json:"rgb"`
	HSL         colors.HSL `json:"hsl"`
	HSLCSS      string     `json:"hsl_css"`
	Luminance   float64    `json:"luminance"`
	OnWhite     float64    `json:"contrast_on_white"`
	OnBlack     float64    `json:"contrast_on_black"`
	BestTextHex string     `json:"best_text"`
}

var colorInfoCmd = &cobra.Command{
	Use:   "info <hex>",
	Short: "Show RGB, HSL and luminance for a hex color",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := describeColor(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(out, info)
		}
		return writeTable(out, nil, [][]string{
			{"Hex", info.Display},
			{"RGB", fmt.Sprintf("rgb(%d, %d, %d)", info.RGB.R, info.RGB.G, info.RGB.B)},
			{"HSL", info.HSLCSS},
			{"Luminance", fmt.Sprintf("%.4f", info.Luminance)},
			{"On white", formatRatio(info.OnWhite)},
			{"On black", formatRatio(info.OnBlack)},
			{"Best text", info.BestTextHex},
		})
	},
}

func describeColor(hex string) (*colorInfo, error) {
	rgb, err := colors.HexToRGB(hex)
	if err != nil {
		return nil, err
	}
	display, err := colors.FormatHexDisplay(hex)
	if err != nil {
		return nil, err
	}
	luminance, err := colors.Luminance(hex)
	if err != nil {
		return nil, err
	}
	hsl := colors.RGBToHSL(rgb.R, rgb.G, rgb.B)

	onWhite, err := colors.ContrastRatio(hex, "#ffffff")
	if err != nil {
		return nil, err
	}
	onBlack, err := colors.ContrastRatio(hex, "#000000")
	if err != nil {
		return nil, err
	}
	best := "#000000"
	if onWhite > onBlack {
		best = "#ffffff"
	}

	return &colorInfo{
		Hex:         rgb.Hex(),
		Display:     display,
		RGB:         rgb,
		HSL:         hsl,
		HSLCSS:      hsl.CSS(),
		Luminance:   luminance,
		OnWhite:     onWhite,
		OnBlack:     onBlack,
		BestTextHex: best,
	}, nil
}
