// Command ujson is a thin CLI wrapper around the library: parse a JSON
// document and print it back in a chosen format, validate an instance
// against a schema, or resolve a JSON Pointer against a document.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	ujson "github.com/alfmep/libujson"
	"github.com/alfmep/libujson/parser"
	"github.com/alfmep/libujson/schema"
)

// config holds the flags shared by the parse/validate/pointer subcommands,
// populated directly by cobra/pflag the way MacroPower-x's magicschema CLI
// populates its own Config struct.
type config struct {
	allowDuplicates bool
	relaxed         bool
	maxDepth        int
	maxArraySize    int
	maxObjectSize   int
	maxErrors       int
	trace           bool
	format          string
	assertFormat    bool
}

func (c *config) parserOptions() parser.Options {
	opts := parser.Options{
		AllowDuplicatesInObj: c.allowDuplicates,
		AllowRelaxedFormat:   c.relaxed,
		MaxDepth:             c.maxDepth,
		MaxArraySize:         c.maxArraySize,
		MaxObjectSize:        c.maxObjectSize,
		MaxErrors:            c.maxErrors,
	}
	if c.trace {
		opts.TraceScan = true
		opts.TraceParse = true
	}
	return opts
}

func (c *config) describeFormat() (ujson.Format, error) {
	switch c.format {
	case "", "compact":
		return ujson.Compact, nil
	case "pretty":
		return ujson.Pretty, nil
	case "relaxed":
		return ujson.Relaxed, nil
	default:
		return 0, fmt.Errorf("unknown format %q: want compact, pretty, or relaxed", c.format)
	}
}

func (c *config) registerParseFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&c.allowDuplicates, "allow-duplicates", false, "retain duplicate object keys instead of rejecting them")
	flags.BoolVar(&c.relaxed, "relaxed", false, "accept comments and bare identifier keys")
	flags.IntVar(&c.maxDepth, "max-depth", 0, "maximum nesting depth (0 = unlimited)")
	flags.IntVar(&c.maxArraySize, "max-array-size", 0, "maximum array element count (0 = unlimited)")
	flags.IntVar(&c.maxObjectSize, "max-object-size", 0, "maximum object member count (0 = unlimited)")
	flags.IntVar(&c.maxErrors, "max-errors", 1, "maximum number of parse errors to collect")
	flags.BoolVar(&c.trace, "trace", false, "log tokenizer/parser trace output to stderr")
}

func registerFlags(cmd *cobra.Command, cfg *config) {
	cfg.registerParseFlags(cmd.Flags())
}

func main() {
	cfg := &config{}

	rootCmd := &cobra.Command{
		Use:           "ujson",
		Short:         "Parse, validate, and address JSON documents",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(newParseCmd(cfg))
	rootCmd.AddCommand(newValidateCmd(cfg))
	rootCmd.AddCommand(newPointerCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ujson: %v\n", err)
		os.Exit(1)
	}
}

func newParseCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a JSON document and print it back in the chosen format",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runParse(cfg, args)
		},
	}
	registerFlags(cmd, cfg)
	cmd.Flags().StringVar(&cfg.format, "format", "compact", "output format: compact, pretty, or relaxed")
	return cmd
}

func runParse(cfg *config, args []string) error {
	data, err := readInput(args)
	if err != nil {
		return err
	}
	format, err := cfg.describeFormat()
	if err != nil {
		return err
	}

	p := parser.New(cfg.parserOptions())
	v, err := p.ParseBuffer(data)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}
	fmt.Println(ujson.Describe(v, format))
	return nil
}

func newValidateCmd(cfg *config) *cobra.Command {
	var schemaPath string
	cmd := &cobra.Command{
		Use:   "validate [instance-file]",
		Short: "Validate a JSON instance against a JSON Schema document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(cfg, schemaPath, args)
		},
	}
	registerFlags(cmd, cfg)
	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to the schema document (required)")
	cmd.Flags().BoolVar(&cfg.assertFormat, "assert-format", false, "treat the format keyword as an assertion, not just an annotation")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func runValidate(cfg *config, schemaPath string, args []string) error {
	if schemaPath == "" {
		return fmt.Errorf("--schema is required")
	}
	schemaText, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("reading schema: %w", err)
	}

	compiler := schema.NewCompiler()
	compiler.SetAssertFormat(cfg.assertFormat)

	s, err := compiler.Compile(schemaText)
	if err != nil {
		return fmt.Errorf("compiling schema: %w", err)
	}

	instanceText, err := readInput(args)
	if err != nil {
		return err
	}

	result := s.ValidateJSON(instanceText)
	out, err := json.MarshalIndent(result.ToList(true), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Println(string(out))
	if !result.IsValid() {
		os.Exit(1)
	}
	return nil
}

func newPointerCmd(cfg *config) *cobra.Command {
	var pointerStr string
	cmd := &cobra.Command{
		Use:   "pointer [file]",
		Short: "Resolve a JSON Pointer against a document and print the result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runPointer(cfg, pointerStr, args)
		},
	}
	registerFlags(cmd, cfg)
	cmd.Flags().StringVar(&pointerStr, "ptr", "", "JSON Pointer to resolve, e.g. /foo/0/bar (required)")
	cmd.Flags().StringVar(&cfg.format, "format", "compact", "output format: compact, pretty, or relaxed")
	_ = cmd.MarkFlagRequired("ptr")
	return cmd
}

func runPointer(cfg *config, pointerStr string, args []string) error {
	format, err := cfg.describeFormat()
	if err != nil {
		return err
	}
	data, err := readInput(args)
	if err != nil {
		return err
	}

	p := parser.New(cfg.parserOptions())
	root, err := p.ParseBuffer(data)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	ptr, err := ujson.ParsePointer(pointerStr)
	if err != nil {
		return fmt.Errorf("invalid pointer %q: %w", pointerStr, err)
	}

	resolved, err := ptr.Resolve(root)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", pointerStr, err)
	}
	fmt.Println(ujson.Describe(resolved, format))
	return nil
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", args[0], err)
	}
	return data, nil
}
