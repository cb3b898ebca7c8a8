package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/benjamonnguyen/todogo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	logger todogo.Logger
	store  *todogo.TaskStore
	conf   todogo.Config

	rootCmd *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "todo",
		Short: "todo - personal task tracking",
		Long: `todo records tasks with a name, priority, and optional due date in a
hidden store file in the working directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{
			UnknownFlags: true,
		},
	}
}

// Execute wires the supplied collaborators into the command tree and
// runs it. Store and codec failures surface here as a non-zero exit;
// user-facing conditions (not found, bad input) print and exit zero.
func Execute(s *todogo.TaskStore, l todogo.Logger, c todogo.Config) error {
	store = s
	logger = l
	conf = c

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(uiCmd)

	// unknown flags warn instead of aborting, on every command
	for _, c := range rootCmd.Commands() {
		c.FParseErrWhitelist = cobra.FParseErrWhitelist{UnknownFlags: true}
	}
	for _, name := range unknownFlags(rootCmd, os.Args[1:]) {
		fmt.Printf("Warning: Unknown argument %q ignored.\n", name)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		logger.Error("command failed", "error", err)
		return err
	}
	return nil
}

// unknownFlags returns the flag-looking args that no command in the
// tree registers. The set is derived from the registered flags so new
// flags never need a second bookkeeping spot.
func unknownFlags(root *cobra.Command, args []string) []string {
	known := map[string]bool{
		// cobra registers help lazily, at execution time
		"--help": true,
		"-h":     true,
	}
	collect := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			known["--"+f.Name] = true
			if f.Shorthand != "" {
				known["-"+f.Shorthand] = true
			}
		})
	}
	collect(root.PersistentFlags())
	collect(root.Flags())
	for _, c := range root.Commands() {
		collect(c.Flags())
	}

	var unknown []string
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") || arg == "-" || arg == "--" {
			continue
		}
		name, _, _ := strings.Cut(arg, "=")
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	return unknown
}
