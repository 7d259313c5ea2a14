package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/zhrexx/prostvm/internal/hostlib"
	"github.com/zhrexx/prostvm/vm"
)

func newDebugCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debug <file.pco>",
		Short: "Step through a compiled program interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDebugger(args[0])
		},
	}
	return cmd
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	instStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98"))

	stackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))

	haltStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90")).Bold(true)

	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// debugModel is the interactive stepper's bubbletea model: a running VM
// plus a breakpoint entry field, styled the way other tooling in this
// ecosystem styles its own single-screen function explorer.
type debugModel struct {
	machine    *vm.VM
	err        error
	stopped    bool
	status     vm.Status
	breakInput textinput.Model
	breakAt    int
	hasBreak   bool
	enteringBP bool
}

func newDebugModel(machine *vm.VM) *debugModel {
	ti := textinput.New()
	ti.Placeholder = "instruction index"
	ti.Prompt = "break at: "
	ti.Width = 10
	return &debugModel{machine: machine, breakInput: ti}
}

func (m *debugModel) Init() tea.Cmd {
	return nil
}

func (m *debugModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		return m, nil
	}

	if m.enteringBP {
		switch keyMsg.String() {
		case "enter":
			if n, err := strconv.Atoi(m.breakInput.Value()); err == nil {
				m.breakAt = n
				m.hasBreak = true
			}
			m.enteringBP = false
			m.breakInput.Blur()
		case "esc":
			m.enteringBP = false
			m.breakInput.Blur()
		default:
			var cmd tea.Cmd
			m.breakInput, cmd = m.breakInput.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "s":
		if !m.stopped {
			running, status := m.machine.Step()
			m.status = status
			if !running {
				m.stopped = true
			}
		}

	case "r":
		for !m.stopped {
			if m.hasBreak && m.machine.CurrentIP() == m.breakAt {
				break
			}
			running, status := m.machine.Step()
			m.status = status
			if !running {
				m.stopped = true
			}
		}

	case "b":
		m.enteringBP = true
		m.breakInput.Focus()
		m.breakInput.SetValue("")
	}

	return m, nil
}

func (m *debugModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("prostvm debugger"))
	b.WriteString("\n\n")

	if inst, ok := m.machine.CurrentInstruction(); ok {
		b.WriteString(instStyle.Render(fmt.Sprintf("next:  %s", formatInstruction(inst))))
		b.WriteString("\n")
	} else if m.stopped {
		b.WriteString(haltStyle.Render(fmt.Sprintf("stopped: %s", m.status)))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("fn:    %s\n", m.machine.CurrentFunction()))
	b.WriteString(fmt.Sprintf("ip:    %d\n", m.machine.CurrentIP()))
	b.WriteString(fmt.Sprintf("calls: %d\n", m.machine.CallDepth()))

	top, ok := m.machine.StackTop()
	topStr := "(empty)"
	if ok {
		topStr = top.Display()
	}
	b.WriteString(stackStyle.Render(fmt.Sprintf("stack: depth=%d top=%s", m.machine.StackDepth(), topStr)))
	b.WriteString("\n\n")

	if m.enteringBP {
		b.WriteString(m.breakInput.View())
		b.WriteString("\n\n")
	}

	b.WriteString(helpStyle.Render("s step • r run to breakpoint • b set breakpoint • q quit"))
	return b.String()
}

// formatInstruction mirrors vm.Disassemble's per-line rendering for a
// single instruction, without requiring the whole program listing.
func formatInstruction(inst vm.Instruction) string {
	switch inst.Op {
	case vm.OpCall, vm.OpCallExtern, vm.OpDerefMemory, vm.OpAssignMemory:
		if inst.Name == "" {
			return inst.Op.String()
		}
		return fmt.Sprintf("%s %s", inst.Op, inst.Name)
	case vm.OpDrop, vm.OpHalt, vm.OpReturn, vm.OpDup, vm.OpSwap, vm.OpOver, vm.OpEq, vm.OpNeq, vm.OpLt, vm.OpLte, vm.OpGt, vm.OpGte:
		return inst.Op.String()
	}
	return fmt.Sprintf("%s %s", inst.Op, inst.Arg.Display())
}

func runDebugger(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	prog, err := vm.Deserialize(data)
	if err != nil {
		return err
	}

	machine := vm.New()
	if status := hostlib.Register(machine); status != vm.StatusOK {
		return fmt.Errorf("prostvm: failed to register built-in host library: %s", status)
	}
	machine.Load(prog)
	if status := machine.Prepare("__entry"); status != vm.StatusOK {
		return fmt.Errorf("prostvm: %s", status)
	}

	p := tea.NewProgram(newDebugModel(machine), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
