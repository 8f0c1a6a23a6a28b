package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mgomes/hashclass/hashclass"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "check":
		return checkCommand(args[2:])
	case "conform":
		return conformCommand(args[2:])
	case "repl":
		return runREPL()
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

type engineFlags struct {
	steps     *int
	recursion *int
}

func registerEngineFlags(fs *flag.FlagSet) engineFlags {
	return engineFlags{
		steps:     fs.Int("steps", 0, "step quota (0 uses the engine default)"),
		recursion: fs.Int("recursion", 0, "call depth limit (0 uses the engine default)"),
	}
}

func (f engineFlags) engine() (*hashclass.Engine, error) {
	return hashclass.NewEngine(hashclass.Config{
		StepQuota:      *f.steps,
		RecursionLimit: *f.recursion,
		Output:         os.Stdout,
	})
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	function := fs.String("function", "", "function to invoke after the program runs")
	checkOnly := fs.Bool("check", false, "only compile the script without executing")
	engineOpts := registerEngineFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("hashclass run: script path required")
	}
	input, err := readScript(remaining[0])
	if err != nil {
		return err
	}
	engine, err := engineOpts.engine()
	if err != nil {
		return err
	}
	script, err := engine.Compile(input)
	if err != nil {
		return fmt.Errorf("compile failed: %w", err)
	}
	if *checkOnly {
		return nil
	}

	var result hashclass.Value
	if *function != "" {
		argsValues := make([]hashclass.Value, len(remaining)-1)
		for i, raw := range remaining[1:] {
			argsValues[i] = hashclass.NewString(raw)
		}
		result, err = script.Call(context.Background(), *function, argsValues, hashclass.CallOptions{})
	} else {
		result, err = script.Run(context.Background(), hashclass.CallOptions{})
	}
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	if !result.IsUndefined() {
		fmt.Println(result.String())
	}
	return nil
}

func checkCommand(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}
	paths := fs.Args()
	if len(paths) == 0 {
		return errors.New("hashclass check: script path required")
	}
	engine, err := hashclass.NewEngine(hashclass.Config{})
	if err != nil {
		return err
	}
	failed := 0
	for _, path := range paths {
		input, err := readScript(path)
		if err != nil {
			return err
		}
		if _, err := engine.Compile(input); err != nil {
			failed++
			fmt.Printf("%s\n%v\n", path, err)
			continue
		}
		fmt.Printf("%s: ok\n", path)
	}
	if failed > 0 {
		return fmt.Errorf("check failed for %d of %d script(s)", failed, len(paths))
	}
	return nil
}

func readScript(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve script path: %w", err)
	}
	input, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	return string(input), nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [args...]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run [-function name] [-check] [-steps n] [-recursion n] <script> [args...]")
	fmt.Fprintln(os.Stderr, "    run a script and print its result")
	fmt.Fprintln(os.Stderr, "  check <script>...")
	fmt.Fprintln(os.Stderr, "    compile scripts and report syntax errors")
	fmt.Fprintln(os.Stderr, "  conform [-repo url] [-rev rev] [-cache dir] [-v] <path>")
	fmt.Fprintln(os.Stderr, "    run a conformance suite file or directory")
	fmt.Fprintln(os.Stderr, "  repl")
	fmt.Fprintln(os.Stderr, "    start an interactive session")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
