package model

import (
	"github.com/leighmacdonald/cricket-tui/internal/ui/styles"
)

// Container draws a titled double border around content. The active container is
// highlighted.
func Container(title string, width int, height int, content string, active bool) string {
	if height <= 0 || width <= 0 {
		return ""
	}

	base := styles.ContainerStyle
	if active {
		base = styles.ContainerStyleActive
	}

	return base.
		Border(styles.TitleBorder(styles.ContainerBorder, width, title)).
		Width(width).
		Height(height).
		Render(content)
}
