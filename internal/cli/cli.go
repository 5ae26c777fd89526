package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Import  *ImportCommand
	Export  *ExportCommand
	Add     *AddCommand
	List    *ListCommand
	Delete  *DeleteCommand
	Ask     *AskCommand
	Chat    *ChatCommand
	Suggest *SuggestCommand
	Status  *StatusCommand
	Prune   *PruneCommand
	Purge   *PurgeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "lokatani"
	parser.LongDescription = "Vegetable weighing records with answers to questions in Indonesian."

	cmds := &commands{
		Import:  &ImportCommand{globals: &globals, version: version},
		Export:  &ExportCommand{globals: &globals, version: version},
		Add:     &AddCommand{globals: &globals, version: version},
		List:    &ListCommand{globals: &globals, version: version},
		Delete:  &DeleteCommand{globals: &globals, version: version},
		Ask:     &AskCommand{globals: &globals, version: version},
		Chat:    &ChatCommand{globals: &globals, version: version},
		Suggest: &SuggestCommand{globals: &globals, version: version},
		Status:  &StatusCommand{globals: &globals, version: version},
		Prune:   &PruneCommand{globals: &globals, version: version},
		Purge:   &PurgeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("import", "Replace all records from a spreadsheet", "Replace all records with the rows of an .xlsx or .csv file (columns: id, vegetable, weight, timestamp).", cmds.Import)
	parser.AddCommand("export", "Write records to an Excel workbook", "Write weighing history to an .xlsx workbook that import can read back.", cmds.Export)
	parser.AddCommand("add", "Record a weighing by hand", "Record a single weighing: vegetable name, weight in grams and time.", cmds.Add)
	parser.AddCommand("list", "Show weighing history", "Show weighing history, newest first, with optional filters.", cmds.List)
	parser.AddCommand("delete", "Delete selected records", "Delete the records with the given IDs.", cmds.Delete)
	parser.AddCommand("ask", "Answer one question", "Answer one question in Indonesian, e.g. 'berapa berat bayam hari ini?'.", cmds.Ask)
	parser.AddCommand("chat", "Ask questions interactively", "Answer questions one line at a time until 'keluar'.", cmds.Chat)
	parser.AddCommand("suggest", "Print example questions", "Print example questions the query engine can answer.", cmds.Suggest)
	parser.AddCommand("status", "Show database statistics", "Show record counts, weights per vegetable, last import and configuration summary.", cmds.Status)
	parser.AddCommand("prune", "Apply retention pruning", "Delete records older than the retention period.", cmds.Prune)
	parser.AddCommand("purge", "Delete ALL lokatani data", "Delete ALL lokatani data. Destructive operation with safety prompt.", cmds.Purge)

	return parser, &globals, cmds
}

// Run is the main entry point for the lokatani CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("lokatani %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
