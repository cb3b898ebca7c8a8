package main

import (
	"errors"
	"strings"
	"time"

	"github.com/benjamonnguyen/todogo"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const uiHelp = `COMMANDS:
  <task>: add a task
  /d <id>: complete a task
  /x <id>: delete a task
  /h: show this help
  /q: quit`

type model struct {
	// children
	vp        viewport.Model
	userinput textinput.Model

	// supplied
	l     todogo.Logger
	store *todogo.TaskStore

	// state
	tasks    []todogo.Task
	alerts   []string
	quitting bool
	h        int

	// configuration
	dateFormat string
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.refreshTasks, textinput.Blink)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var tiCmd, vpCmd, cmd tea.Cmd

	m, cmd = m.updateParent(msg)

	// update children

	m.userinput, tiCmd = m.userinput.Update(msg)

	switch msg.(type) {
	case tea.KeyMsg:
		// vp updates on KeyMsg cause view flickering
	default:
		m.vp, vpCmd = m.vp.Update(msg)
	}

	return m, tea.Batch(tiCmd, vpCmd, cmd)
}

func (m model) updateParent(msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case ErrorMsg:
		m.l.Error("ui error", "error", msg.err)
		m.addAlert("Error: " + msg.err.Error())
		m.quitting = true
		return m, tea.Quit
	case StatusMsg:
		m.addAlert(msg.text)
		return m, m.refreshTasks
	case TasksRefreshedMsg:
		m.tasks = msg.tasks
		m.vp.SetContent(renderTaskTable(m.tasks, m.dateFormat, false))
		m.resizeViewport()
		return m, nil
	case tea.WindowSizeMsg:
		m.h = msg.Height
		m.userinput.Width = msg.Width
		m.vp.Width = msg.Width
		m.resizeViewport()
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			input := strings.TrimSpace(m.userinput.Value())
			m.userinput.Reset()
			if input == "" {
				return m, nil
			}
			m.alerts = nil
			return m.handleInput(input)
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) handleInput(input string) (model, tea.Cmd) {
	cmd, arg, _ := strings.Cut(input, " ")
	switch cmd {
	case "/q":
		m.quitting = true
		return m, tea.Quit
	case "/h":
		m.addAlert(uiHelp)
		return m, nil
	case "/d":
		id, err := parseID(arg)
		if err != nil {
			m.addAlert(err.Error())
			return m, nil
		}
		return m, m.completeTask(id)
	case "/x":
		id, err := parseID(arg)
		if err != nil {
			m.addAlert(err.Error())
			return m, nil
		}
		return m, m.deleteTask(id)
	default:
		if err := validateName(input); err != nil {
			m.addAlert("Task names need at least one non-digit character.")
			return m, nil
		}
		return m, m.addTask(input)
	}
}

func (m model) refreshTasks() tea.Msg {
	tasks, err := m.store.ListActive()
	if err != nil {
		return ErrorMsg{err: err}
	}
	return TasksRefreshedMsg{tasks: tasks}
}

func (m model) addTask(name string) tea.Cmd {
	return func() tea.Msg {
		t, err := m.store.Add(name, todogo.PriorityLow, time.Time{})
		if err != nil {
			return ErrorMsg{err: err}
		}
		return statusMsg("Created task %d", t.ID)
	}
}

func (m model) completeTask(id int) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.MarkCompleted(id); err != nil {
			if errors.Is(err, todogo.ErrNotFound) {
				return statusMsg("Error: Task with ID %d not found.", id)
			}
			return ErrorMsg{err: err}
		}
		return statusMsg("Completed task %d", id)
	}
}

func (m model) deleteTask(id int) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.MarkDeleted(id); err != nil {
			if errors.Is(err, todogo.ErrNotFound) {
				return statusMsg("Error: Task with ID %d not found.", id)
			}
			return ErrorMsg{err: err}
		}
		return statusMsg("Deleted task %d", id)
	}
}

func (m *model) addAlert(s string) {
	m.alerts = append(m.alerts, s)
}

func (m *model) resizeViewport() {
	h := m.h - len(m.alerts) - 3
	if h < 1 {
		h = 1
	}
	if content := m.vp.TotalLineCount(); content > 0 && content < h {
		h = content
	}
	m.vp.Height = h
}

func (m model) View() string {
	if m.quitting {
		var sb strings.Builder
		for _, alert := range m.alerts {
			sb.WriteString(alert + "\n")
		}
		sb.WriteString("Goodbye.\n")
		return sb.String()
	}

	var sb strings.Builder
	sb.WriteString(m.vp.View() + "\n")
	for _, alert := range m.alerts {
		sb.WriteString(alert + "\n")
	}
	sb.WriteString(m.userinput.View())
	return sb.String()
}
