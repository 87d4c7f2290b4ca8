package styles

// LightTheme is the palette applied under the light class.
var LightTheme = Theme{
	Name: "light",
	Tokens: ThemeTokens{
		Background:            "#FFFFFF",
		Foreground:            "#0A0A0A",
		Card:                  "#FFFFFF",
		CardForeground:        "#0A0A0A",
		Primary:               "#1D4ED8",
		PrimaryForeground:     "#FFFFFF",
		Secondary:             "#F1F5F9",
		SecondaryForeground:   "#0F172A",
		Muted:                 "#F1F5F9",
		MutedForeground:       "#64748B",
		Accent:                "#E0E7FF",
		AccentForeground:      "#1E1B4B",
		Destructive:           "#DC2626",
		DestructiveForeground: "#FFFFFF",
		Success:               "#15803D",
		SuccessForeground:     "#FFFFFF",
		Caution:               "#FBBF24",
		CautionForeground:     "#1C1917",
		Danger:                "#B91C1C",
		DangerForeground:      "#FFFFFF",
		Info:                  "#0369A1",
		InfoForeground:        "#FFFFFF",
		Header:                "#111827",
		Body:                  "#374151",
		Link:                  "#2563EB",
		Border:                "rgba(15, 23, 42, 0.12)",
	},
}
