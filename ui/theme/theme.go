package theme

// Light and dark palettes for the mosaic window. Apply is called once at
// startup from the configured dark flag.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Colors holds the resolved colors for one mode.
type Colors struct {
	AppBg   string
	Surface string
	Text    string
}

var (
	light = Colors{AppBg: "#f7f9fb", Surface: "#ffffff", Text: "#1e293b"}
	dark  = Colors{AppBg: "#0f172a", Surface: "#1e293b", Text: "#f1f5f9"}
)

// For returns the palette for the given mode.
func For(darkMode bool) Colors {
	if darkMode {
		return dark
	}
	return light
}

// Apply activates the base theme and sets the app background for the given
// mode. Widgets pick the remaining colors from the returned palette.
func Apply(darkMode bool) Colors {
	p := For(darkMode)
	if darkMode {
		_ = ActivateTheme("azure dark")
	} else {
		_ = ActivateTheme("azure light")
	}
	App.Configure(Background(p.AppBg))
	return p
}
