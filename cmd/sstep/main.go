package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/smallstep/syntax"
	"github.com/pterm/pterm"
	"github.com/xyproto/env/v2"
)

// Environment variables providing defaults for flags.
const (
	envTraceLevel = "SSTEP_TRACE"
	envMaxSteps   = "SSTEP_MAX_STEPS"
)

// main() either traces a single expression given as an argument, or starts
// an interactive CLI, where users may enter function definitions and
// expressions. Every expression will be reduced to a value step by step,
// printing all the intermediate expressions.
//
func main() {
	// set up logging
	initDisplay()
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	tlevel := flag.String("trace", env.Str(envTraceLevel, "Error"), "Trace level [Debug|Info|Error]")
	initf := flag.String("init", "", "File with function definitions")
	maxSteps := flag.Int("max-steps", env.Int(envMaxSteps, 0), "Stop tracing after n expressions (0 = no limit)")
	digest := flag.Bool("digest", false, "Print a digest for every trace")
	grammar := flag.Bool("grammar", false, "Print the grammar and exit")
	flag.Parse()
	tracer().SetTraceLevel(traceLevel(*tlevel))
	tracer().Infof("Trace level is %s", *tlevel)
	//
	if *grammar {
		if _, err := syntax.ParsedGrammar(); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(3)
		}
		fmt.Print(syntax.Grammar())
		return
	}
	intp, err := NewIntp(*maxSteps, *digest)
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(3)
	}
	intp.loadInitFile(*initf) // init file name provided by flag
	input := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if input != "" {
		tracer().Infof("Input argument is \"%s\"", input)
		if _, err = intp.Eval(input); err != nil {
			os.Exit(2)
		}
		return
	}
	//
	// set up REPL
	repl, err := readline.New("sstep> ")
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(3)
	}
	defer repl.Close()
	pterm.Info.Println("Welcome to sstep") // colored welcome message
	tracer().Infof("Quit with <ctrl>D")    // inform user how to stop the CLI
	intp.REPL(repl)                        // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
