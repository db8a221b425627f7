// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

// Command golisp is a small Lisp interpreter in the Emacs-Lisp family.
// It evaluates one or more source files in order, or falls back to an
// interactive read-eval-print loop when none are given and standard
// input is a terminal.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/domachine/Lisp-Interaction/lisp"
)

var (
	interactive bool
	sexprOutput bool
	maxDepth    int
)

func main() {
	root := &cobra.Command{
		Use:   "golisp [file...]",
		Short: "A small Emacs-Lisp-family interpreter",
		RunE:  run,
		// Printing is handled inside run; cobra should not also print
		// usage on every evaluation error.
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Flags().BoolVarP(&interactive, "interactive", "i", false, "run a read-eval-print loop")
	root.Flags().BoolVar(&sexprOutput, "sexpr", false, "print REPL results as raw S-expressions")
	root.Flags().IntVar(&maxDepth, "depth", 100000, "maximum evaluator recursion depth; 0 means unlimited")

	if err := root.Execute(); err != nil {
		lisp.ReportError(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, files []string) error {
	lisp.SetMaxEvalDepth(maxDepth)
	env := lisp.NewGlobalEnvironment()

	if len(files) == 0 {
		if !interactive && !stdinIsTerminal() {
			cmd.Usage()
			return errors.New("no input files")
		}
		repl(env, bufio.NewReader(os.Stdin))
		return nil
	}

	for _, name := range files {
		if err := runFile(env, name); err != nil {
			return err
		}
	}
	return nil
}

func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// runFile evaluates every top-level expression in name, in order,
// aborting the whole run on the first error (section 5: an error
// unwinds to the top-level driver).
func runFile(env *lisp.Environment, name string) error {
	fd, err := os.Open(name)
	if err != nil {
		return errors.Wrapf(err, "opening %s", name)
	}
	defer fd.Close()

	reader := lisp.NewReader(bufio.NewReader(fd))
	for {
		expr, ok, err := readOne(reader)
		if err != nil {
			return errors.Wrapf(err, "in %s", name)
		}
		if !ok {
			return nil
		}
		if err := evalOne(env, expr); err != nil {
			return errors.Wrapf(err, "in %s", name)
		}
	}
}

// repl reads and evaluates expressions from rd until end of input,
// printing each result, per SPEC_FULL.md section 4.9.
func repl(env *lisp.Environment, rd *bufio.Reader) {
	reader := lisp.NewReader(rd)
	for {
		fmt.Print("> ")
		expr, ok, err := readOne(reader)
		if err != nil {
			lisp.ReportError(err)
			continue
		}
		if !ok {
			return
		}
		result, err := safeEval(env, expr)
		if err != nil {
			lisp.ReportError(err)
			continue
		}
		if sexprOutput {
			fmt.Println(lisp.SExprString(result))
		} else {
			fmt.Println(result.String())
		}
	}
}

// readOne wraps Reader.ReadExpr, converting a recovered parse panic
// (raised via raise/parseError in lisp/errors.go) into a returned
// error, since the reader is the one component the evaluator's
// panic/recover convention also applies to (section 4.2).
func readOne(reader *lisp.Reader) (v lisp.Value, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			e, isEvalErr := r.(*lisp.EvalError)
			if !isEvalErr {
				panic(r)
			}
			err = e
		}
	}()
	v, ok = reader.ReadExpr()
	return v, ok, err
}

// evalOne evaluates expr for its side effects only (file mode does not
// print results; only the print form writes to the diagnostic stream).
func evalOne(env *lisp.Environment, expr lisp.Value) error {
	_, err := safeEval(env, expr)
	return err
}

// safeEval recovers the panic/recover control-flow convention of
// section 5/7 into a plain Go error, so main can report it without
// ever letting an interpreter error crash the process.
func safeEval(env *lisp.Environment, expr lisp.Value) (result lisp.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(*lisp.EvalError)
			if !ok {
				panic(r)
			}
			if name, known := lisp.SymbolicName(e); known {
				err = fmt.Errorf("%s: %v", name, e)
			} else {
				err = e
			}
		}
	}()
	return env.Eval(expr), nil
}
