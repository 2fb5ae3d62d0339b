package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/smallstep/expr"
	"github.com/npillmayer/smallstep/syntax"
	"github.com/npillmayer/smallstep/trace"
	"github.com/pterm/pterm"
)

// Functions known from the start.
var predefined = []string{
	"factorial(n) = n <= 0 ? 1 : n * factorial(n-1)",
}

// Intp is our interpreter object
type Intp struct {
	functions *expr.FunctionTable
	maxSteps  int  // cancel traces after this many expressions; 0 = never
	digest    bool // print a trace digest
}

// NewIntp creates an interpreter with the pre-defined functions loaded.
func NewIntp(maxSteps int, digest bool) (*Intp, error) {
	intp := &Intp{
		functions: expr.NewFunctionTable(),
		maxSteps:  maxSteps,
		digest:    digest,
	}
	for _, def := range predefined {
		if _, err := intp.define(def); err != nil {
			return nil, err
		}
	}
	return intp, nil
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()
	if n, err := intp.loadDefinitions(f); err != nil {
		pterm.Error.Println(err.Error())
	} else {
		tracer().Infof("Loaded %d definitions from %s", n, filename)
	}
}

// loadDefinitions reads function definitions, one per line. Empty lines and
// lines starting with '#' are skipped. Reading stops at the first erroneous
// definition.
func (intp *Intp) loadDefinitions(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	lineno, count := 0, 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, err := intp.define(line); err != nil {
			return count, fmt.Errorf("line %d: %w", lineno, err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("error while reading definitions: %w", err)
	}
	return count, nil
}

func (intp *Intp) define(line string) (string, error) {
	name, def, err := syntax.ParseDefinition(line)
	if err != nil {
		return "", err
	}
	if err = intp.functions.Define(name, def); err != nil {
		return "", err
	}
	return name, nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL(repl *readline.Instance) {
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Eval executes a line of input: a command, a function definition or an
// expression to trace. Errors are displayed to the user and returned.
func (intp *Intp) Eval(line string) (quit bool, err error) {
	defer func() {
		if err != nil {
			pterm.Error.Println(err.Error())
		}
	}()
	if strings.HasPrefix(line, ":") {
		return intp.Execute(line)
	}
	if syntax.IsDefinition(line) {
		var name string
		if name, err = intp.define(line); err == nil {
			pterm.Info.Println("defined " + intp.functions.Signature(name))
		}
		return false, err
	}
	e, err := syntax.Parse(line)
	if err != nil {
		return false, err
	}
	return false, intp.trace(e)
}

var errUnknownCommand = errors.New("unknown command, try :help")

// Execute runs a REPL command.
func (intp *Intp) Execute(line string) (bool, error) {
	cmd, arg := line, ""
	if i := strings.IndexAny(line, " \t"); i > 0 {
		cmd, arg = line[:i], strings.TrimSpace(line[i:])
	}
	tracer().Debugf("command %s %q", cmd, arg)
	switch cmd {
	case ":quit", ":q":
		return true, nil
	case ":help", ":h":
		pterm.Println(help)
	case ":funcs":
		for _, name := range intp.functions.Names() {
			pterm.Println(intp.functions.Signature(name))
		}
	case ":tree":
		e, err := syntax.Parse(arg)
		if err != nil {
			return false, err
		}
		pterm.Println(e.String())
		pterm.DefaultTree.WithRoot(treeOf(e)).Render()
	default:
		return false, errUnknownCommand
	}
	return false, nil
}

const help = `f(x, …) = body     define a function
expression         trace the evaluation of an expression
:tree expression   display an expression as a tree
:funcs             list the defined functions
:quit              leave sstep`

// trace prints every state of the reduction of e.
func (intp *Intp) trace(e expr.Expr) error {
	lines, stopped, err := intp.collect(e, func(n int, e expr.Expr) {
		pterm.Println(fmt.Sprintf("%4d  %s", n, e))
	})
	if err != nil {
		return err
	}
	if stopped {
		tracer().Infof("trace stopped after %d expressions", len(lines))
	}
	if intp.digest {
		d, err := trace.Digest(lines)
		if err != nil {
			return err
		}
		pterm.Info.Println("digest " + d)
	}
	return nil
}

// collect runs a trace for e, calling show for every expression state, and
// returns the rendered states. The run is cancelled after intp.maxSteps
// states; stopped tells if the trace was cut short before reaching a value.
func (intp *Intp) collect(e expr.Expr, show func(int, expr.Expr)) (lines []string, stopped bool, err error) {
	input := expr.Input{Functions: intp.functions, Expression: e}
	err = trace.Run(input, func(e expr.Expr) error {
		if show != nil {
			show(len(lines), e)
		}
		lines = append(lines, e.String())
		if intp.maxSteps > 0 && len(lines) >= intp.maxSteps && !expr.IsConst(e) {
			stopped = true
			return trace.Stop
		}
		return nil
	})
	return lines, stopped, err
}
