package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/assistant"
)

func (cli *commandLine) ask(prompt string) error {
	ctx := context.Background()

	gen, err := newGeneratorFunc(ctx, cli.conf)
	if err != nil && errors.Cause(err) != assistant.ErrMissingAPIKey {
		return errors.Wrap(err, "setting up assistant")
	}
	if closer, ok := gen.(interface{ Close() error }); ok {
		defer func() { _ = closer.Close() }()
	}

	fmt.Fprintln(cli.out, assistant.NewService(gen, cli.logger).Ask(ctx, prompt))
	return nil
}
