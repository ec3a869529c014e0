// Package common holds the styles and drawing helpers shared by the wizard's
// panels and overlays.
package common

import "github.com/charmbracelet/lipgloss"

type Palette struct {
	styles map[string]lipgloss.Style
}

var DefaultPalette = NewPalette()

func NewPalette() *Palette {
	p := &Palette{styles: map[string]lipgloss.Style{}}
	p.Set("groups border", lipgloss.NewStyle().Foreground(lipgloss.Color("6")))
	p.Set("message border", lipgloss.NewStyle().Foreground(lipgloss.Color("2")))
	p.Set("files border", lipgloss.NewStyle().Foreground(lipgloss.Color("4")))
	p.Set("shortcuts border", lipgloss.NewStyle())
	p.Set("active border", lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true))
	p.Set("title", lipgloss.NewStyle().Bold(true))
	p.Set("selected", lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true))
	p.Set("committed", lipgloss.NewStyle().Foreground(lipgloss.Color("8")))
	p.Set("dimmed", lipgloss.NewStyle().Foreground(lipgloss.Color("8")))
	p.Set("status new", lipgloss.NewStyle().Foreground(lipgloss.Color("2")))
	p.Set("status deleted", lipgloss.NewStyle().Foreground(lipgloss.Color("1")))
	p.Set("status modified", lipgloss.NewStyle().Foreground(lipgloss.Color("3")))
	p.Set("status renamed", lipgloss.NewStyle().Foreground(lipgloss.Color("6")))
	p.Set("popup border", lipgloss.NewStyle().Foreground(lipgloss.Color("3")))
	p.Set("popup active border", lipgloss.NewStyle().Foreground(lipgloss.Color("2")))
	p.Set("error", lipgloss.NewStyle().Foreground(lipgloss.Color("1")))
	p.Set("success", lipgloss.NewStyle().Foreground(lipgloss.Color("2")))
	p.Set("editor border", lipgloss.NewStyle().Foreground(lipgloss.Color("5")))
	p.Set("diff border", lipgloss.NewStyle().Foreground(lipgloss.Color("4")))
	p.Set("help border", lipgloss.NewStyle().Foreground(lipgloss.Color("6")))
	p.Set("help title", lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true))
	p.Set("help text", lipgloss.NewStyle())
	p.Set("help shortcut", lipgloss.NewStyle().Foreground(lipgloss.Color("4")))
	p.Set("help dimmed", lipgloss.NewStyle().Foreground(lipgloss.Color("8")))
	return p
}

func (p *Palette) Set(name string, style lipgloss.Style) {
	p.styles[name] = style
}

// Get returns the named style, or an empty style for unknown names.
func (p *Palette) Get(name string) lipgloss.Style {
	if s, ok := p.styles[name]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// GetBorder returns a bordered style whose border takes the foreground of
// the named style.
func (p *Palette) GetBorder(name string, border lipgloss.Border) lipgloss.Style {
	fg := p.Get(name).GetForeground()
	return lipgloss.NewStyle().Border(border).BorderForeground(fg)
}
