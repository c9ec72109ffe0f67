// This CLI utility renders NamuMark document trees.
//
// Usage:
//   nmark [command]
//
// Available Commands:
//   help        Help about any command
//   html        HTML output generator for NamuMark document trees
//   serve       Preview server over a directory of document trees
//
// Flags:
//   -h, --help   help for nmark
//
// Use "nmark [command] --help" for more information about a command.
package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"nmark.dev/nmark/codec"
	"nmark.dev/nmark/gen/html"
	"nmark.dev/nmark/resolve"
)

func prefix(msg string, err error) error {
	return errors.New(msg + err.Error())
}

// parseMacros splits repeated --macro name=cmd flags into the
// generator's macro table.
func parseMacros(defs []string) (map[string]string, error) {
	if len(defs) == 0 {
		return nil, nil
	}
	m := make(map[string]string, len(defs))
	for _, d := range defs {
		name, cmd, ok := strings.Cut(d, "=")
		if !ok || name == "" {
			return nil, errors.New("macro definition must be name=command: " + d)
		}
		m[name] = cmd
	}
	return m, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "nmark command",
		Short: "rendering and serving for NamuMark document trees",
		Long: `This CLI utility renders NamuMark document trees, as produced
by a NamuMark parser in the tagged-JSON wire form, into HTML.`,
	}

	var outputfile string
	var docname string
	var macros []string
	var timeout time.Duration
	prefixHTML := "(HTML) "
	htmlCmd := &cobra.Command{
		Use:   "html [input] [-o output]",
		Short: "HTML output generator for NamuMark document trees",
		Long: `This command takes a NamuMark document tree in its tagged-JSON
wire form, numbers its headings, resolves its link targets, and
converts it to HTML. Macros mapped with --macro run as external
commands, parsed according to the Bourne shell's word-splitting rules;
unmapped macros render their literal placeholder form.

If no input file is specified, input is read from
standard input. Similarly, if no output argument is
specified, output is written to standard output.`,
		Args:                  cobra.MaximumNArgs(1),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			src := os.Stdin
			var err error
			if len(args) != 0 {
				src, err = os.Open(args[0])
				if err != nil {
					return prefix(prefixHTML, err)
				}
				if docname == "" {
					docname = strings.TrimSuffix(filepath.Base(args[0]), ".json")
				}
			}
			defer src.Close()
			out := os.Stdout
			if len(outputfile) != 0 {
				out, err = os.Create(outputfile)
				if err != nil {
					return prefix(prefixHTML, err)
				}
			}
			defer out.Close()
			tree, err := codec.Read(src)
			if err != nil {
				return prefix(prefixHTML, err)
			}
			tree, outline := resolve.Number(tree)
			tree = resolve.Hrefs(tree, resolve.Context{
				Doc:      docname,
				Outlines: map[string]*resolve.Outline{docname: outline},
			})
			mm, err := parseMacros(macros)
			if err != nil {
				return prefix(prefixHTML, err)
			}
			ctx := context.Background()
			if timeout > -1 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			g := html.GenContext(ctx, tree)
			g.Stdout = out
			g.Stderr = os.Stderr
			g.Macros = mm
			if err := g.Run(); err != nil {
				return prefix(prefixHTML, err)
			}
			return nil
		},
	}
	htmlCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		if err != nil {
			return prefix(prefixHTML, err)
		}
		return nil
	})
	// pflag includes the argument type when it unquotes its usage.
	// To prevent this behavior we prefix the usage with backquotes ``.
	htmlCmd.Flags().StringVarP(&outputfile, "output", "o", "", "``name of the output file")
	htmlCmd.Flags().StringVar(&docname, "doc", "", "``document name used for self references")
	htmlCmd.Flags().StringArrayVar(&macros, "macro", nil, "``map a macro to an external command, name=command")
	htmlCmd.Flags().DurationVarP(&timeout, "timeout", "t", -1, "``timeout used to halt generation and long-running macros")
	// Set string version of default value to be zero-value to prevent it from being printed by FlagUsages.
	htmlCmd.Flags().Lookup("timeout").DefValue = "0"

	rootCmd.AddCommand(htmlCmd)
	rootCmd.AddCommand(serveCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
