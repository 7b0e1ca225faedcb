// Package console implements the line-oriented command interpreter on top of
// the record storage: create, show, destroy, all, update, count.
package console

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/aretw0/hbnb/pkg/storage"
)

// DefaultPrompt is printed before each command in interactive sessions.
const DefaultPrompt = "(hbnb) "

// command is a single console verb. run returns true to stop the session.
type command struct {
	run   func(c *Console, args []string) bool
	usage string
	help  string
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"quit":    {run: (*Console).quit, usage: "quit", help: "Quit command to exit the program"},
		"EOF":     {run: (*Console).eof, usage: "EOF", help: "EOF (Ctrl-D) exits the program"},
		"help":    {run: (*Console).help, usage: "help [command]", help: "List available commands with \"help\" or detailed help with \"help <command>\""},
		"create":  {run: (*Console).create, usage: "create <class>", help: "Creates a new instance of <class>, saves it to the file and prints its id"},
		"show":    {run: (*Console).show, usage: "show <class> <id>", help: "Prints the string representation of an instance based on the class name and id"},
		"destroy": {run: (*Console).destroy, usage: "destroy <class> <id>", help: "Deletes an instance based on the class name and id and saves the change to the file"},
		"all":     {run: (*Console).all, usage: "all [<class>]", help: "Prints the string representation of all instances, optionally filtered by class name"},
		"update":  {run: (*Console).update, usage: "update <class> <id> <attribute> <value>", help: "Adds or updates an attribute of an instance and saves the change to the file"},
		"count":   {run: (*Console).count, usage: "count <class>", help: "Prints the number of instances of <class>"},
	}
}

// Console reads commands and applies them to a storage.
type Console struct {
	store  *storage.FileStorage
	out    io.Writer
	errOut io.Writer
	logger *slog.Logger

	// Prompt is printed before reading each line. Empty disables it.
	Prompt string
}

// New creates a console writing results to out and failures to errOut.
func New(store *storage.FileStorage, out, errOut io.Writer, logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.Default()
	}
	return &Console{
		store:  store,
		out:    out,
		errOut: errOut,
		logger: logger,
	}
}

// Run executes commands read from r line by line until quit or end of input.
func (c *Console) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for {
		if c.Prompt != "" {
			fmt.Fprint(c.out, c.Prompt)
		}
		if !scanner.Scan() {
			c.Execute("EOF")
			return scanner.Err()
		}
		if stop := c.Execute(scanner.Text()); stop {
			return nil
		}
	}
}

// Execute runs a single command line and reports whether the session should stop.
func (c *Console) Execute(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	name, args := fields[0], fields[1:]
	cmd, ok := commands[name]
	if !ok {
		c.println("*** Unknown syntax: " + strings.TrimSpace(line))
		return false
	}

	c.logger.Debug("command", "name", name, "args", len(args))
	return cmd.run(c, args)
}

// Names returns the available commands, sorted.
func Names() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) fail(action string, err error) {
	fmt.Fprintf(c.errOut, "Error %s: %v\n", action, err)
}

func (c *Console) quit(args []string) bool {
	return true
}

func (c *Console) eof(args []string) bool {
	if c.Prompt != "" {
		c.println("")
	}
	return true
}

func (c *Console) help(args []string) bool {
	if len(args) == 0 {
		header := "Documented commands (type help <topic>):"
		c.println(header)
		c.println(strings.Repeat("=", len(header)))
		c.println(strings.Join(Names(), "  "))
		c.println("")
		return false
	}

	cmd, ok := commands[args[0]]
	if !ok {
		c.println("*** No help on " + args[0])
		return false
	}
	c.println(cmd.help)
	c.println("Usage: " + cmd.usage)
	return false
}
