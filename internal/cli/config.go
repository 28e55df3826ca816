// Package cli implements the command-line surface: flag parsing via
// cobra/pflag, translating the parsed flags into a Config, and mapping
// the pipeline's outcome onto the process exit codes §6 specifies.
package cli

import "github.com/livy-lang/livy/internal/diagnostic"

// Config is the Go analogue of the reference's args.py ConfigData: every
// option the user can pass at the command line, collected into one value
// built once per invocation rather than threaded as individual flags.
type Config struct {
	File           string
	Encoding       string
	Compress       bool
	ExpansionLevel int
	OutFile        string
	ShowHelp       bool
	ShowVersion    bool
	ShowTokens     bool
	ShowAST        bool
	ShowTypes      bool
	SortDefs       bool
	ReportFormat   diagnostic.Format
}

// defaultConfig mirrors the reference's DEFAULT_CONFIG: the values used
// when a flag is never supplied.
func defaultConfig() Config {
	return Config{
		Encoding:       "UTF-8",
		Compress:       true,
		ExpansionLevel: 1,
		OutFile:        "stdout",
		ReportFormat:   diagnostic.FormatLong,
	}
}
