package styles

// DarkTheme is the palette applied under the dark class.
var DarkTheme = Theme{
	Name: "dark",
	Tokens: ThemeTokens{
		Background:            "#0B0F14",
		Foreground:            "#E6EDF3",
		Card:                  "#121821",
		CardForeground:        "#E6EDF3",
		Primary:               "#5B8DEF",
		PrimaryForeground:     "#0B0F14",
		Secondary:             "#1F2937",
		SecondaryForeground:   "#E5E7EB",
		Muted:                 "#1F2937",
		MutedForeground:       "#8B9AAE",
		Accent:                "#223043",
		AccentForeground:      "#E6EDF3",
		Destructive:           "#F85149",
		DestructiveForeground: "#0B0F14",
		Success:               "#3FB950",
		SuccessForeground:     "#0B0F14",
		Caution:               "#D29922",
		CautionForeground:     "#0B0F14",
		Danger:                "#FF7B72",
		DangerForeground:      "#0B0F14",
		Info:                  "#58A6FF",
		InfoForeground:        "#0B0F14",
		Header:                "#F0F6FC",
		Body:                  "#C9D1D9",
		Link:                  "#7AA2F7",
		Border:                "rgba(230, 237, 243, 0.16)",
	},
}
