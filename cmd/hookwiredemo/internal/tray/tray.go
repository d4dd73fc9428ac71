// Package tray shows the demo's system tray icon using getlantern/systray.
package tray

import (
	"github.com/getlantern/systray"
)

// MenuItem is one entry in the tray's menu, or a separator when nil.
type MenuItem struct {
	ID       int
	Title    string
	Checked  bool
	Callback func()
	item     *systray.MenuItem
}

// Tray owns the menu items and the systray run loop.
type Tray struct {
	title   string
	tooltip string
	items   []*MenuItem
	quitCh  chan struct{}
}

// New creates a tray with the given title and tooltip. Call AddMenuItem /
// AddSeparator to build the menu, then Run to start the event loop.
func New(title, tooltip string) *Tray {
	return &Tray{
		title:   title,
		tooltip: tooltip,
		quitCh:  make(chan struct{}),
	}
}

// AddMenuItem appends a clickable entry and returns its index.
func (t *Tray) AddMenuItem(title string, callback func()) int {
	id := len(t.items)
	t.items = append(t.items, &MenuItem{ID: id, Title: title, Callback: callback})
	return id
}

// AddSeparator appends a visual separator.
func (t *Tray) AddSeparator() {
	t.items = append(t.items, nil)
}

// SetItemChecked toggles the checkmark on a menu item added earlier.
func (t *Tray) SetItemChecked(id int, checked bool) {
	if id < 0 || id >= len(t.items) || t.items[id] == nil || t.items[id].item == nil {
		return
	}
	t.items[id].Checked = checked
	if checked {
		t.items[id].item.Check()
	} else {
		t.items[id].item.Uncheck()
	}
}

// Run starts the tray event loop. It blocks until Stop is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, func() { close(t.quitCh) })
}

func (t *Tray) onReady() {
	systray.SetTitle(t.title)
	systray.SetTooltip(t.tooltip)
	systray.SetIcon(placeholderIcon())

	for _, mi := range t.items {
		if mi == nil {
			systray.AddSeparator()
			continue
		}
		item := systray.AddMenuItem(mi.Title, "")
		mi.item = item
		if mi.Checked {
			item.Check()
		}
		if mi.Callback == nil {
			continue
		}
		go func(mi *MenuItem) {
			for {
				select {
				case <-mi.item.ClickedCh:
					mi.Callback()
				case <-t.quitCh:
					return
				}
			}
		}(mi)
	}
}

// Stop exits the tray event loop.
func (t *Tray) Stop() {
	systray.Quit()
}

// placeholderIcon is a minimal valid 16x16 32-bit ICO; the demo has no
// bundled asset pipeline so it draws a blank (fully transparent) icon.
func placeholderIcon() []byte {
	icon := make([]byte, 1118)
	copy(icon[0:6], []byte{0x00, 0x00, 0x01, 0x00, 0x01, 0x00})
	copy(icon[6:22], []byte{
		0x10, 0x10, 0x00, 0x00, 0x01, 0x00, 0x20, 0x00,
		0x48, 0x04, 0x00, 0x00,
		0x16, 0x00, 0x00, 0x00,
	})
	copy(icon[22:62], []byte{
		0x28, 0x00, 0x00, 0x00,
		0x10, 0x00, 0x00, 0x00,
		0x20, 0x00, 0x00, 0x00,
		0x01, 0x00,
		0x20, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x04, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	})
	return icon
}
