package config

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keys []string

type KeyMappings[T any] struct {
	Up          T `toml:"up"`
	Down        T `toml:"down"`
	PageUp      T `toml:"page_up"`
	PageDown    T `toml:"page_down"`
	NextPanel   T `toml:"next_panel"`
	PrevPanel   T `toml:"prev_panel"`
	Quit        T `toml:"quit"`
	Cancel      T `toml:"cancel"`
	Dismiss     T `toml:"dismiss"`
	Help        T `toml:"help"`
	Edit        T `toml:"edit"`
	Diff        T `toml:"diff"`
	AIGenerate  T `toml:"ai_generate"`
	Commit      T `toml:"commit"`
	CommitAll   T `toml:"commit_all"`
	Copy        T `toml:"copy"`
	ClearStatus T `toml:"clear_status"`
	Save        T `toml:"save"`
}

func (c *Config) GetKeyMap() KeyMappings[key.Binding] {
	k := c.Keys
	return KeyMappings[key.Binding]{
		Up:          binding(k.Up, "up"),
		Down:        binding(k.Down, "down"),
		PageUp:      binding(k.PageUp, "page up"),
		PageDown:    binding(k.PageDown, "page down"),
		NextPanel:   binding(k.NextPanel, "next panel"),
		PrevPanel:   binding(k.PrevPanel, "previous panel"),
		Quit:        binding(k.Quit, "quit"),
		Cancel:      binding(k.Cancel, "cancel"),
		Dismiss:     binding(k.Dismiss, "close"),
		Help:        binding(k.Help, "help"),
		Edit:        binding(k.Edit, "edit"),
		Diff:        binding(k.Diff, "diff"),
		AIGenerate:  binding(k.AIGenerate, "ai"),
		Commit:      binding(k.Commit, "commit"),
		CommitAll:   binding(k.CommitAll, "commit all"),
		Copy:        binding(k.Copy, "copy"),
		ClearStatus: binding(k.ClearStatus, "clear status"),
		Save:        binding(k.Save, "save"),
	}
}

func binding(ks keys, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(ks...), key.WithHelp(strings.Join(ks, "/"), desc))
}
