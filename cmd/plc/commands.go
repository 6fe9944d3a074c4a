package main

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"plc/interpreter-go/pkg/compiler"
	"plc/interpreter-go/pkg/driver"
	"plc/interpreter-go/pkg/runtime"
)

func (s *session) fail(err error) int {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	return 1
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func (s *session) runEntry(args []string) int {
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "error: run accepts at most one target or file")
		return 1
	}
	if len(args) == 1 && (looksLikePathCandidate(args[0]) || s.manifest == nil) {
		return s.runFile(args[0])
	}
	if s.manifest == nil {
		fmt.Fprintf(os.Stderr, "error: plc run requires a manifest target or source file (%s not found)\n", driver.ManifestFileName)
		return 1
	}
	var target *driver.Target
	if len(args) == 0 {
		def, err := s.manifest.DefaultTarget()
		if err != nil {
			return s.fail(err)
		}
		target = def
	} else {
		found, ok := s.manifest.Target(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "error: unknown target %q\n", args[0])
			return 1
		}
		target = found
	}
	if target.Mode == driver.TargetModeJava {
		return s.generate(target.Main, target.Output, target.Class)
	}
	return s.runFile(target.Main)
}

func (s *session) runFile(path string) int {
	text, err := readSource(path)
	if err != nil {
		return s.fail(err)
	}
	value, err := s.pipeline.Run(s.ctx, text, os.Stdout)
	if err != nil {
		return s.fail(err)
	}
	return exitCode(value)
}

// exitCode maps main's result onto a process exit status.
func exitCode(value runtime.Value) int {
	iv, ok := value.(runtime.IntegerValue)
	if !ok || iv.Val == nil {
		fmt.Fprintf(os.Stderr, "warning: main returned %s; exiting with 1\n", runtime.Stringify(value))
		return 1
	}
	if iv.Val.Sign() < 0 || iv.Val.Cmp(big.NewInt(255)) > 0 {
		fmt.Fprintf(os.Stderr, "warning: main returned %s, outside [0, 255]; exiting with 1\n", iv.Val)
		return 1
	}
	return int(iv.Val.Int64())
}

func (s *session) runCheck(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "error: check requires exactly one file")
		return 1
	}
	text, err := readSource(args[0])
	if err != nil {
		return s.fail(err)
	}
	if _, err := s.pipeline.Check(s.ctx, text); err != nil {
		return s.fail(err)
	}
	fmt.Fprintln(os.Stdout, "ok")
	return 0
}

func (s *session) runGen(args []string) int {
	var file, output, class string
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "-o", "--output", "--class":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "error: %s requires a value\n", arg)
				return 1
			}
			i++
			if arg == "--class" {
				class = args[i]
			} else {
				output = args[i]
			}
		default:
			if file != "" || strings.HasPrefix(arg, "-") {
				fmt.Fprintf(os.Stderr, "error: unexpected argument %q\n", arg)
				return 1
			}
			file = arg
		}
	}
	if file == "" {
		fmt.Fprintln(os.Stderr, "error: gen requires a file")
		return 1
	}
	return s.generate(file, output, class)
}

// generate writes Java for file to output, or stdout when output is empty.
// The class name defaults to the output file's base name.
func (s *session) generate(file, output, class string) int {
	text, err := readSource(file)
	if err != nil {
		return s.fail(err)
	}
	if class == "" && output != "" {
		class = strings.TrimSuffix(filepath.Base(output), filepath.Ext(output))
	}
	result, err := s.pipeline.Generate(s.ctx, text, compiler.Options{ClassName: class})
	if err != nil {
		return s.fail(err)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}
	if output == "" {
		fmt.Fprint(os.Stdout, result.Source)
		return 0
	}
	if dir := filepath.Dir(output); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return s.fail(err)
		}
	}
	if err := os.WriteFile(output, []byte(result.Source), 0o644); err != nil {
		return s.fail(err)
	}
	return 0
}

func (s *session) runTokens(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "error: tokens requires exactly one file")
		return 1
	}
	text, err := readSource(args[0])
	if err != nil {
		return s.fail(err)
	}
	tokens, err := s.pipeline.Tokens(s.ctx, text)
	if err != nil {
		return s.fail(err)
	}
	for _, token := range tokens {
		fmt.Fprintln(os.Stdout, token.String())
	}
	return 0
}
