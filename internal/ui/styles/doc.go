// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the shell UI.

# Colors (colors.go)

Colors are declared once as Lip Gloss AdaptiveColor values. Because the
user switches themes explicitly, a [Palette] pins every color to its light
or dark side:

	p := styles.PaletteFor("light")

# Theme (theme.go)

[Theme] holds the rendered styles for the route bar, prompt and output
panel. It is the theme engine the commands talk to:

	t := styles.NewTheme("auto")
	t.Set("light")                    // explicit switch
	t.Preview(styles.RandomSwatch(r)) // disco frame
	t.Restore("light")                // back to the saved variant

# Animations (animations.go)

Spinner frame sets and confetti glyphs.
*/
package styles
