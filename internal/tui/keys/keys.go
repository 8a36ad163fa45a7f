package keys

import "github.com/charmbracelet/bubbles/key"

// ListenKeys are the bindings of the listen view.
type ListenKeys struct {
	Quit        key.Binding
	Help        key.Binding
	Clear       key.Binding
	ToggleHex   key.Binding
	ToggleASCII key.Binding
	Pause       key.Binding
}

func NewListenKeys() ListenKeys {
	return ListenKeys{
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear"),
		),
		ToggleHex: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "toggle hex"),
		),
		ToggleASCII: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle ascii"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause display"),
		),
	}
}

func (k ListenKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Pause, k.Clear, k.Quit}
}

func (k ListenKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Clear, k.ToggleHex, k.ToggleASCII},
		{k.Help, k.Quit},
	}
}
