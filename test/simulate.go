package test

import (
	"reflect"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

// Updater is a model whose Update only returns the follow-up command, like
// the commit screen's core model.
type Updater interface {
	Update(tea.Msg) tea.Cmd
}

// SimulateModel runs first and every command model answers with until none
// is left. Batches and sequences are unpacked, cursor blinks are dropped and
// every other message is shown to observers before model handles it.
func SimulateModel[T Updater](model T, first tea.Cmd, observers ...func(tea.Msg)) {
	pending := []tea.Cmd{first}
	for len(pending) > 0 {
		cmd := pending[0]
		pending = pending[1:]
		if cmd == nil {
			continue
		}

		msg := cmd()
		if cmds, ok := unpack(msg); ok {
			pending = append(pending, cmds...)
			continue
		}
		if msg == nil || isBlink(msg) {
			continue
		}
		for _, observe := range observers {
			observe(msg)
		}
		pending = append(pending, model.Update(msg))
	}
}

func isBlink(msg tea.Msg) bool {
	_, ok := msg.(cursor.BlinkMsg)
	return ok
}

var cmdType = reflect.TypeOf((tea.Cmd)(nil))

// unpack returns the commands of a tea.BatchMsg or of any other slice of
// tea.Cmd, which is how tea.Sequence reports itself.
func unpack(msg tea.Msg) ([]tea.Cmd, bool) {
	if batch, ok := msg.(tea.BatchMsg); ok {
		return batch, true
	}
	v := reflect.ValueOf(msg)
	if !v.IsValid() || v.Kind() != reflect.Slice || !v.Type().Elem().AssignableTo(cmdType) {
		return nil, false
	}
	cmds := make([]tea.Cmd, v.Len())
	for i := range cmds {
		cmds[i] = v.Index(i).Interface().(tea.Cmd)
	}
	return cmds, true
}

func keyCmd(k tea.KeyMsg) tea.Cmd {
	return func() tea.Msg { return k }
}

// Type presses each rune of text in order.
func Type(text string) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(text))
	for _, r := range text {
		cmds = append(cmds, keyCmd(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}))
	}
	return tea.Sequence(cmds...)
}

// Press presses a named key such as tea.KeyEsc or tea.KeyCtrlS.
func Press(key tea.KeyType) tea.Cmd {
	return keyCmd(tea.KeyMsg{Type: key})
}
