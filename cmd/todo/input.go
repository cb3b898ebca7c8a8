package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/benjamonnguyen/todogo"
	"github.com/spf13/cobra"
)

const dueDateInputLayout = "01/02/2006"

// validateName rejects empty names and names made up entirely of
// digits, which would be ambiguous with task ids.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("empty task name")
	}
	allDigits := true
	for _, r := range name {
		if r < '0' || r > '9' {
			allDigits = false
			break
		}
	}
	if allDigits {
		return fmt.Errorf("task name %q is all digits", name)
	}
	return nil
}

func parsePriority(cmd *cobra.Command) (todogo.TaskPriority, error) {
	n, err := cmd.Flags().GetInt("priority")
	if err != nil {
		return 0, err
	}
	p := todogo.TaskPriority(n)
	if !p.IsValid() {
		return 0, fmt.Errorf("priority must be 1, 2, or 3; got %d", n)
	}
	return p, nil
}

// parseDueDate returns the zero time and false when the string does not
// parse; callers treat that as "no due date", not an error.
func parseDueDate(s string) (time.Time, bool) {
	due, err := time.ParseInLocation(dueDateInputLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return due, true
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}
