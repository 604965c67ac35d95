package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/assistant"
	"github.com/trezcool/shule/core/school"
	genaisvc "github.com/trezcool/shule/services/genai"
)

var (
	// mockable
	nowFunc          = func() time.Time { return time.Now().UTC() }
	readPasswordFunc = term.ReadPassword
	isTerminalFunc   = term.IsTerminal
	newGeneratorFunc = func(ctx context.Context, conf *core.Config) (assistant.TextGenerator, error) {
		gen, err := genaisvc.NewGeminiGenerator(ctx, conf)
		if err != nil {
			return nil, err
		}
		return gen, nil
	}

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf   *core.Config
	logger core.Logger
	svc    *school.Service
	out    io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  seed - print a summary of the mock dataset")
	fmt.Fprintln(cli.out, "  export [-collection NAME] - print the dataset (or one of its collections) as JSON")
	fmt.Fprintln(cli.out, "  ask -prompt TEXT - ask the AI assistant")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	exportCmd := flag.NewFlagSet("export", flag.ContinueOnError)
	exportCmd.SetOutput(cli.out)
	exportCollection := exportCmd.String("collection", "", "The collection to export, e.g. students. Everything is exported when omitted.")

	askCmd := flag.NewFlagSet("ask", flag.ContinueOnError)
	askCmd.SetOutput(cli.out)
	askPrompt := askCmd.String("prompt", "", "The prompt to send to the assistant.")

	switch args[1] {
	case "seed":
		return cli.seed()
	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.export(*exportCollection)
	case "ask":
		if err := askCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if core.CleanString(*askPrompt) == "" {
			askCmd.Usage()
			return errHelp
		}
		if err := cli.promptAPIKey(); err != nil {
			return err
		}
		return cli.ask(*askPrompt)
	default:
		cli.printUsage()
		return errHelp
	}
}

// promptAPIKey reads the assistant key without echo when none is configured and stdin is a terminal.
func (cli *commandLine) promptAPIKey() error {
	if cli.conf.Assistant.APIKey != "" || !isTerminalFunc(int(os.Stdin.Fd())) {
		return nil
	}
	fmt.Fprint(cli.out, "Enter API key:")
	key, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return err
	}
	cli.conf.Assistant.APIKey = core.CleanString(string(key))
	return nil
}
