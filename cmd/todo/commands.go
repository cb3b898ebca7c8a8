package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/benjamonnguyen/todogo"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List active tasks",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var queryCmd = &cobra.Command{
	Use:   "query <keyword>...",
	Short: "Search incomplete tasks by keyword",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQuery,
}

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runDone,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "List every task, completed and deleted included",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	addCmd.Flags().String("due", "", "Due date (MM/DD/YYYY)")
	addCmd.Flags().IntP("priority", "p", 1, "Priority level (1, 2, 3)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")
	if err := validateName(name); err != nil {
		// Matches the tool's historical wording; bad input is a normal
		// exit, not a failure.
		fmt.Println(`There was an error in creating your task. Run "todo -h" for usage instructions.`)
		logger.Warn("rejected task name", "name", name, "error", err)
		return nil
	}

	priority, err := parsePriority(cmd)
	if err != nil {
		return err
	}

	var due time.Time
	if dueStr, _ := cmd.Flags().GetString("due"); dueStr != "" {
		parsed, ok := parseDueDate(dueStr)
		if !ok {
			// Parse failure is deliberately non-fatal; the task is still
			// created, just without a due date.
			fmt.Println("Warning: Invalid due date format. Task will be added without a due date.")
			logger.Warn("unparseable due date", "due", dueStr)
		}
		due = parsed
	}

	t, err := store.Add(name, priority, due)
	if err != nil {
		return err
	}
	fmt.Printf("Created task %d\n", t.ID)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	tasks, err := store.ListActive()
	if err != nil {
		return err
	}
	fmt.Println(renderTaskTable(tasks, conf.DateFormat, false))
	return nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	tasks, err := store.Query(args)
	if err != nil {
		return err
	}
	fmt.Println(renderTaskTable(tasks, conf.DateFormat, false))
	return nil
}

func runDone(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := store.MarkCompleted(id); err != nil {
		if errors.Is(err, todogo.ErrNotFound) {
			// user-facing message, normal exit
			fmt.Printf("Error: Task with ID %d not found.\n", id)
			return nil
		}
		return err
	}
	fmt.Printf("Completed task %d\n", id)
	return nil
}

// runDelete soft-deletes: the record stays in the store with its
// deleted flag set. Hard removal exists on the store API but has no
// command.
func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := store.MarkDeleted(id); err != nil {
		if errors.Is(err, todogo.ErrNotFound) {
			fmt.Printf("Error: Task with ID %d not found.\n", id)
			return nil
		}
		return err
	}
	fmt.Printf("Deleted task %d\n", id)
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	tasks, err := store.Report()
	if err != nil {
		return err
	}
	fmt.Println(renderTaskTable(tasks, conf.DateFormat, true))
	return nil
}
