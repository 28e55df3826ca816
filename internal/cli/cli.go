package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/livy-lang/livy/internal/compiler"
	"github.com/livy-lang/livy/internal/diagnostic"
)

// Version is the released compiler version, reported by -v/--version.
const Version = "0.1.0"

// Exit codes, per §6 of the external interface.
const (
	ExitOK           = 0
	ExitMissingFile  = 64
	ExitIsDirectory  = 65
	ExitNoPermission = 66
)

// Execute parses args (typically os.Args[1:]), drives the compiler, writes
// whatever it produces to stdout/stderr, and returns the process exit code
// main should pass to os.Exit.
func Execute(args []string, stdout, stderr io.Writer) int {
	cfg := defaultConfig()
	reportFmt := "long"
	code := ExitOK

	root := newRootCommand(&cfg, &reportFmt)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.RunE = func(cmd *cobra.Command, positional []string) error {
		if len(positional) == 1 {
			cfg.File = positional[0]
		}
		format, ok := diagnostic.ParseFormat(reportFmt)
		if !ok {
			fmt.Fprintf(stderr, "invalid --report-fmt %q: must be one of json, long, short\n", reportFmt)
			code = ExitMissingFile
			return nil
		}
		cfg.ReportFormat = format

		switch {
		case cfg.ShowHelp:
			fmt.Fprint(stdout, cmd.UsageString())
		case cfg.ShowVersion:
			fmt.Fprintf(stdout, "livy v%s\n", Version)
		default:
			code = runFile(cfg, stdout, stderr)
		}
		return nil
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		return ExitMissingFile
	}
	return code
}

func newRootCommand(cfg *Config, reportFmt *string) *cobra.Command {
	root := &cobra.Command{
		Use:           "livy [file]",
		Short:         "Compile a livy source file to bytecode.",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	flags := root.Flags()
	flags.BoolVarP(&cfg.ShowHelp, "help", "h", false, "Show this help message and quit.")
	flags.BoolVarP(&cfg.ShowVersion, "version", "v", false, "Show the program version number and quit.")
	flags.StringVarP(&cfg.OutFile, "out", "o", cfg.OutFile, `Where to write the bytecode. Also accepts "stdout" and "stderr".`)
	flags.StringVarP(reportFmt, "report-fmt", "r", *reportFmt, "The format of any error message that may arise: json, long, or short.")
	flags.StringVarP(&cfg.Encoding, "encoding", "e", cfg.Encoding, "The encoding of the source file.")
	flags.BoolVar(&cfg.ShowTokens, "lex", false, "Lex the file and show the resulting tokens (for debugging purposes only).")
	flags.BoolVar(&cfg.ShowAST, "parse", false, "Parse the file and show the resulting AST (for debugging purposes only).")
	flags.BoolVar(&cfg.ShowTypes, "type-check", false, "Type check the file and show the resulting typed AST (for debugging purposes only).")
	flags.BoolVar(&cfg.SortDefs, "sort-defs", false, "Sort expressions in the AST to ensure that definitions come before usages.")
	// --no-compress is the inverse of Config.Compress, so it is bound to its
	// own variable (default false) while Compress itself defaults true.
	noCompress := false
	flags.BoolVar(&noCompress, "no-compress", false, "Disable run-length compression of the bytecode stream.")
	flags.Lookup("no-compress").NoOptDefVal = "true"
	flags.IntVar(&cfg.ExpansionLevel, "expansion-level", cfg.ExpansionLevel, "How aggressive inline expansion should be: 1, 2, or 3.")

	root.PreRunE = func(cmd *cobra.Command, args []string) error {
		if noCompress {
			cfg.Compress = false
		}
		if cfg.ExpansionLevel < 1 || cfg.ExpansionLevel > 3 {
			return fmt.Errorf("--expansion-level must be 1, 2, or 3, got %d", cfg.ExpansionLevel)
		}
		return nil
	}
	return root
}

// runFile reads cfg.File, runs it through the compiler, and writes the
// result to the configured sinks, mirroring the reference's run_file.
func runFile(cfg Config, stdout, stderr io.Writer) int {
	writer := resolveWriter(cfg.OutFile, stdout, stderr)

	if cfg.File == "" {
		fmt.Fprint(writer, "Please provide a file for the program to run.\n\n")
		return ExitMissingFile
	}

	info, err := os.Stat(cfg.File)
	if err != nil {
		reason := diagnostic.NotFound
		if os.IsPermission(err) {
			reason = diagnostic.NoPermission
		}
		fmt.Fprint(writer, diagnostic.NewCMDError(reason, cfg.File).Render(cfg.ReportFormat, ""))
		fmt.Fprintln(writer)
		return ExitNoPermission
	}
	if info.IsDir() {
		fmt.Fprint(writer, diagnostic.NewCMDError(diagnostic.IsFolder, cfg.File).Render(cfg.ReportFormat, ""))
		fmt.Fprintln(writer)
		return ExitIsDirectory
	}

	raw, err := os.ReadFile(cfg.File)
	if err != nil {
		reason := diagnostic.NotFound
		if os.IsPermission(err) {
			reason = diagnostic.NoPermission
		}
		fmt.Fprint(writer, diagnostic.NewCMDError(reason, cfg.File).Render(cfg.ReportFormat, ""))
		fmt.Fprintln(writer)
		return ExitNoPermission
	}

	result := compiler.Run(raw, compiler.Options{
		Encoding:       cfg.Encoding,
		Compress:       cfg.Compress,
		ExpansionLevel: cfg.ExpansionLevel,
		SortDefs:       cfg.SortDefs,
		ShowTokens:     cfg.ShowTokens,
		ShowAST:        cfg.ShowAST,
		ShowTypes:      cfg.ShowTypes,
		ReportFormat:   cfg.ReportFormat,
	})

	if result.Message != "" {
		fmt.Fprintln(writer, result.Message)
	}
	if result.Bytecode != nil {
		path := outputPath(cfg.File, cfg.OutFile)
		if err := os.WriteFile(path, result.Bytecode, 0o644); err != nil {
			reason := diagnostic.NotFound
			if os.IsPermission(err) {
				reason = diagnostic.NoPermission
			}
			fmt.Fprint(writer, diagnostic.NewCMDError(reason, cfg.File).Render(cfg.ReportFormat, ""))
			fmt.Fprintln(writer)
		} else {
			fmt.Fprintf(writer, "wrote %s of bytecode to %s\n", humanize.Bytes(uint64(len(result.Bytecode))), path)
		}
	}
	return ExitOK
}

// resolveWriter maps -o's value to the sink diagnostics/dumps are written
// to. Bytecode is never written to a TTY, so when -o names a real file,
// that file is reserved for the bytecode and the text sink falls back to
// stdout rather than reproducing the reference's write_text-then-
// write_bytes clobber on the same path (see DESIGN.md).
func resolveWriter(outFile string, stdout, stderr io.Writer) io.Writer {
	switch outFile {
	case "", "stdout":
		return stdout
	case "stderr":
		return stderr
	default:
		return stdout
	}
}

// outputPath derives the bytecode destination: outFile itself when it
// names a real path, otherwise inFile with its extension replaced by
// .livy, mirroring the reference's get_output_file.
func outputPath(inFile, outFile string) string {
	if outFile != "" && outFile != "stdout" && outFile != "stderr" {
		return outFile
	}
	return withExtension(inFile, ".livy")
}

func withExtension(path, ext string) string {
	trimmed := strings.TrimSuffix(path, filepath.Ext(path))
	return trimmed + ext
}
