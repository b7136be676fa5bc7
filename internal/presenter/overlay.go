// Package presenter holds the local renderings of a reading: the overlay
// text, the tray tooltip, and the terminal line that stands in for the window.
package presenter

import (
	"fmt"
	"io"

	"netspeed-monitor/internal/domain"
)

type Overlay struct {
	w io.Writer

	upText   string
	downText string
	tooltip  string
}

func NewOverlay(w io.Writer) *Overlay {
	return &Overlay{w: w}
}

func (o *Overlay) Present(r domain.Reading) {
	o.upText = "↑ " + r.Upload
	o.downText = "↓ " + r.Download
	o.tooltip = fmt.Sprintf("Up: %s\nDown: %s", r.Upload, r.Download)

	if o.w != nil {
		// \033[K clears what is left of a longer previous line.
		fmt.Fprintf(o.w, "\r%s  %s\033[K", o.upText, o.downText)
	}
}

// Texts returns the overlay lines and tooltip. Call it from the dispatcher.
func (o *Overlay) Texts() (up, down, tooltip string) {
	return o.upText, o.downText, o.tooltip
}
