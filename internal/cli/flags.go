package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// ImportCommand replaces all records with the rows of a spreadsheet.
type ImportCommand struct {
	Sheet    string `long:"sheet" description:"Worksheet to read (default: config import.sheet, else the first sheet)"`
	NoHeader bool   `long:"no-header" description:"Treat the first row as data"`
	Watch    bool   `long:"watch" description:"Re-import whenever the file changes"`

	globals *GlobalFlags
	version string
}

// ExportCommand writes weighing history to an Excel workbook.
type ExportCommand struct {
	Output string `long:"output" short:"o" description:"Workbook to write" default:"data_sayuran.xlsx"`
	Type   string `long:"type" description:"Only this vegetable"`
	Since  string `long:"since" description:"Only records newer than duration (e.g., 7d, 24h, 2w)"`

	globals *GlobalFlags
	version string
}

// AddCommand records a single weighing by hand.
type AddCommand struct {
	Name   string  `long:"name" description:"Vegetable name (required)"`
	Weight float64 `long:"weight" description:"Weight in grams (required)"`
	At     string  `long:"at" description:"Time of weighing, e.g. 2024-03-05 08:30 (default: now)"`

	globals *GlobalFlags
	version string
}

// ListCommand shows weighing history, newest first.
type ListCommand struct {
	Type   string `long:"type" description:"Filter by vegetable"`
	Since  string `long:"since" description:"Only records newer than duration (e.g., 7d, 24h, 2w)"`
	Until  string `long:"until" description:"Only records older than duration"`
	Limit  int    `long:"limit" description:"Maximum results" default:"20"`
	Offset int    `long:"offset" description:"Skip first N results" default:"0"`

	globals *GlobalFlags
	version string
}

// DeleteCommand removes selected records.
type DeleteCommand struct {
	IDs []int `long:"id" description:"Record ID to delete (repeatable, required)"`

	globals *GlobalFlags
	version string
}

// AskCommand answers one question.
type AskCommand struct {
	globals *GlobalFlags
	version string
}

// ChatCommand answers questions until the user types keluar.
type ChatCommand struct {
	globals *GlobalFlags
	version string
}

// SuggestCommand prints example questions.
type SuggestCommand struct {
	Count int `long:"count" description:"Number of questions (default: config chat.suggestions)"`

	globals *GlobalFlags
	version string
}

// StatusCommand shows database stats and a configuration summary.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// PruneCommand deletes records older than the retention period.
type PruneCommand struct {
	OlderThan string `long:"older-than" description:"Override retention period (e.g., 90d)"`
	Before    string `long:"before" description:"Delete records before this date (e.g., 2024-01-01)"`
	DryRun    bool   `long:"dry-run" description:"Show what would be pruned without deleting"`
	Force     bool   `long:"force" description:"Skip confirmation prompt"`

	globals *GlobalFlags
	version string
}

// PurgeCommand deletes ALL lokatani data after a confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
}
