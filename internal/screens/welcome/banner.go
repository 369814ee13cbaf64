package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdash/internal/ui/theme"
)

const bannerArt = `
 ███╗   ███╗ █████╗ ████████╗██╗  ██╗██████╗  █████╗ ███████╗██╗  ██╗
 ████╗ ████║██╔══██╗╚══██╔══╝██║  ██║██╔══██╗██╔══██╗██╔════╝██║  ██║
 ██╔████╔██║███████║   ██║   ███████║██║  ██║███████║███████╗███████║
 ██║╚██╔╝██║██╔══██║   ██║   ██╔══██║██║  ██║██╔══██║╚════██║██╔══██║
 ██║ ╚═╝ ██║██║  ██║   ██║   ██║  ██║██████╔╝██║  ██║███████║██║  ██║
 ╚═╝     ╚═╝╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝╚═════╝ ╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝`

const bannerCompact = "M A T H D A S H"

// bannerMinWidth is the narrowest terminal that fits bannerArt.
const bannerMinWidth = 72

// RenderBanner returns the MATHDASH banner styled in the primary color.
// Narrow terminals get the compact form.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
