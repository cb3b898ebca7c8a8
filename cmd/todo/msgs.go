package main

import (
	"fmt"

	"github.com/benjamonnguyen/todogo"
)

type TasksRefreshedMsg struct {
	tasks []todogo.Task
}

type StatusMsg struct {
	text string
}

type ErrorMsg struct {
	err error
}

func statusMsg(format string, args ...any) StatusMsg {
	return StatusMsg{
		text: fmt.Sprintf(format, args...),
	}
}
