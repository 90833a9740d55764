// Command contentgen is the terminal client for the content generation API.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

const usage = `Usage: contentgen <command> [flags]

Commands:
  generate   Generate content from a topic
  summarize  Summarize text (at least 50 words)
  health     Check that the backend is reachable
  types      List content types, tones, lengths and summary types

Run "contentgen <command> -h" for command flags.
`

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	env := &environment{stdin: stdin, stdout: stdout, stderr: stderr}

	switch args[0] {
	case "generate":
		return runGenerate(ctx, env, args[1:])
	case "summarize":
		return runSummarize(ctx, env, args[1:])
	case "health":
		return runHealth(ctx, env, args[1:])
	case "types":
		return runTypes(ctx, env, args[1:])
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return exitUsage
	}
}
