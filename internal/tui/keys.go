package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up         key.Binding
	down       key.Binding
	esc        key.Binding
	enter      key.Binding
	quit       key.Binding
	refresh    key.Binding
	connect    key.Binding
	disconnect key.Binding
	flush      key.Binding
	retry      key.Binding
	resync     key.Binding
	copyID     key.Binding
	yes        key.Binding
	no         key.Binding
}

var keys = keyMap{
	up:         key.NewBinding(key.WithKeys("up", "k")),
	down:       key.NewBinding(key.WithKeys("down", "j")),
	esc:        key.NewBinding(key.WithKeys("esc")),
	enter:      key.NewBinding(key.WithKeys("enter")),
	quit:       key.NewBinding(key.WithKeys("q", "ctrl+c")),
	refresh:    key.NewBinding(key.WithKeys("r")),
	connect:    key.NewBinding(key.WithKeys("c")),
	disconnect: key.NewBinding(key.WithKeys("d")),
	flush:      key.NewBinding(key.WithKeys("f")),
	retry:      key.NewBinding(key.WithKeys("t")),
	resync:     key.NewBinding(key.WithKeys("x")),
	copyID:     key.NewBinding(key.WithKeys("i")),
	yes:        key.NewBinding(key.WithKeys("y")),
	no:         key.NewBinding(key.WithKeys("n", "esc")),
}
