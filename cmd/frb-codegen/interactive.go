package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Unoqwy/flutter-rust-bridge/classify"
	"github.com/Unoqwy/flutter-rust-bridge/dart"
	"github.com/Unoqwy/flutter-rust-bridge/generator"
	"github.com/Unoqwy/flutter-rust-bridge/ir"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	declStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browserState int

const (
	stateBrowse browserState = iota
	stateDetail
	stateGenerated
)

type browserModel struct {
	err      error
	filename string
	set      *ir.DeclSet
	mapper   *dart.Mapper
	visible  []ir.Decl
	filter   textinput.Model
	output   string
	selected int
	state    browserState
}

type generatedMsg struct {
	err    error
	output string
}

func newBrowserModel(filename string, set *ir.DeclSet) *browserModel {
	// Classification errors surface per declaration in the detail view.
	classify.New(set).DeclSet(set)

	filter := textinput.New()
	filter.Placeholder = "filter"
	filter.Prompt = "/ "
	filter.Width = 30

	m := &browserModel{
		filename: filename,
		set:      set,
		mapper:   dart.NewMapper(set),
		filter:   filter,
		state:    stateBrowse,
	}
	m.applyFilter()
	return m
}

func (m *browserModel) Init() tea.Cmd {
	return nil
}

func (m *browserModel) applyFilter() {
	query := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for _, d := range m.set.Decls {
		if query == "" || strings.Contains(strings.ToLower(d.DeclName()), query) {
			m.visible = append(m.visible, d)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = 0
	}
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filter.Focused() {
			switch msg.String() {
			case "enter", "esc":
				m.filter.Blur()
			default:
				var cmd tea.Cmd
				m.filter, cmd = m.filter.Update(msg)
				m.applyFilter()
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "/":
			if m.state == stateBrowse {
				m.filter.Focus()
				return m, textinput.Blink
			}

		case "up", "k":
			if m.state == stateBrowse && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateBrowse && m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "enter":
			if m.state == stateBrowse && len(m.visible) > 0 {
				m.state = stateDetail
			}

		case "g":
			if m.state == stateBrowse {
				return m, m.generate
			}

		case "esc":
			m.state = stateBrowse
			m.output = ""
			m.err = nil
		}

	case generatedMsg:
		m.output = msg.output
		m.err = msg.err
		m.state = stateGenerated
	}

	return m, nil
}

func (m *browserModel) generate() tea.Msg {
	artifact, err := generator.New(generator.Options{}).Generate(m.set)
	if err != nil {
		return generatedMsg{err: err}
	}
	return generatedMsg{output: artifact.DartCode}
}

func (m *browserModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("frb-codegen"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateBrowse:
		if m.filter.Focused() || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
			b.WriteString("\n\n")
		}
		if len(m.visible) == 0 {
			b.WriteString(helpStyle.Render("no declarations match"))
			b.WriteString("\n")
		}
		for i, d := range m.visible {
			line := m.formatDecl(d)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter details • / filter • g generate • q quit"))

	case stateDetail:
		b.WriteString(m.detailView(m.visible[m.selected]))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("esc back • q quit"))

	case stateGenerated:
		if m.err != nil {
			b.WriteString(failStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(okStyle.Render(fmt.Sprintf("Generated %d bytes of Dart", len(m.output))))
			b.WriteString("\n\n")
			b.WriteString(preview(m.output, 30))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("esc back • q quit"))
	}

	return b.String()
}

func (m *browserModel) formatDecl(d ir.Decl) string {
	switch decl := d.(type) {
	case *ir.StructDecl:
		return declStyle.Render(decl.Name) + typeStyle.Render(fmt.Sprintf(" struct, %d fields", len(decl.Fields)))
	case *ir.EnumDecl:
		return declStyle.Render(decl.Name) + typeStyle.Render(fmt.Sprintf(" enum, %d variants", len(decl.Variants)))
	case *ir.FunctionSig:
		return declStyle.Render(decl.Name) + typeStyle.Render(" fn")
	default:
		return d.DeclName()
	}
}

func (m *browserModel) detailView(d ir.Decl) string {
	var b strings.Builder

	switch decl := d.(type) {
	case *ir.StructDecl:
		fmt.Fprintf(&b, "struct %s\n\n", declStyle.Render(decl.Name))
		for i, f := range decl.Fields {
			name := f.Name
			if decl.Tuple {
				name = fmt.Sprintf("%d", i)
			}
			fmt.Fprintf(&b, "  %s: %s", name, typeStyle.Render(f.Type.String()))
			b.WriteString(m.dartSide(decl.Name, f.Shape))
			b.WriteString("\n")
		}

	case *ir.EnumDecl:
		fmt.Fprintf(&b, "enum %s\n\n", declStyle.Render(decl.Name))
		for _, v := range decl.Variants {
			fmt.Fprintf(&b, "  %s", v.Name)
			switch v.Payload {
			case ir.PayloadTuple:
				var parts []string
				for _, f := range v.Fields {
					parts = append(parts, f.Type.String())
				}
				fmt.Fprintf(&b, "(%s)", typeStyle.Render(strings.Join(parts, ", ")))
			case ir.PayloadNamed:
				var parts []string
				for _, f := range v.Fields {
					parts = append(parts, f.Name+": "+f.Type.String())
				}
				fmt.Fprintf(&b, " { %s }", typeStyle.Render(strings.Join(parts, ", ")))
			}
			b.WriteString("\n")
		}

	case *ir.FunctionSig:
		fmt.Fprintf(&b, "fn %s\n\n", declStyle.Render(formatSig(decl)))
		for _, p := range decl.Params {
			fmt.Fprintf(&b, "  %s: %s", p.Name, typeStyle.Render(p.Type.String()))
			b.WriteString(m.dartSide(decl.Name, p.Shape))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// dartSide renders the mapped Dart type, or the mapping failure inline.
func (m *browserModel) dartSide(owner string, shape ir.TypeShape) string {
	if shape == nil {
		return " " + failStyle.Render("(unclassified)")
	}
	name, err := m.mapper.TypeName(owner, nil, shape)
	if err != nil {
		return " " + failStyle.Render("("+err.Error()+")")
	}
	return " -> " + okStyle.Render(name)
}

func preview(s string, lines int) string {
	split := strings.SplitN(s, "\n", lines+1)
	if len(split) > lines {
		split = split[:lines]
		split = append(split, helpStyle.Render("..."))
	}
	return strings.Join(split, "\n")
}

func runInteractive(filename string, set *ir.DeclSet) error {
	p := tea.NewProgram(newBrowserModel(filename, set), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
