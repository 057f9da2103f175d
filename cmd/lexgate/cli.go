package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/lexgate/lexgate/internal/analyze"
	"github.com/lexgate/lexgate/internal/config"
	"github.com/lexgate/lexgate/internal/errors"
	"github.com/lexgate/lexgate/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(svc *analyze.Service, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "lexgate",
		Usage:   "Contract admission gate and risk analyzer",
		Version: Version,
		Commands: []*cli.Command{
			classifyCmd(svc, cfg),
			analyzeCmd(svc, cfg),
			redflagsCmd(svc, cfg),
			ingestCmd(svc, cfg),
			templatesCmd(svc),
			removeCmd(svc),
			serveCmd(svc),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// classifyCmd creates the classify command.
func classifyCmd(svc *analyze.Service, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "classify",
		Usage:     "Classify a document as contract, legal_document, or non_legal",
		ArgsUsage: "[file]",
		Action: func(c *cli.Context) error {
			text, err := readDocument(c, cfg)
			if err != nil {
				return outputError(err)
			}

			verdict, err := svc.Classify(context.Background(), analyze.ClassifyInput{Text: text})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(verdict)
		},
	}
}

// analyzeCmd creates the analyze command.
func analyzeCmd(svc *analyze.Service, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Run the full analysis pipeline on a document",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "allow-non-legal", Usage: "Analyze even when the admission gate rejects the document"},
			&cli.IntFlag{Name: "max-clauses", Usage: "Cap on the number of clauses to annotate"},
		},
		Action: func(c *cli.Context) error {
			text, err := readDocument(c, cfg)
			if err != nil {
				return outputError(err)
			}

			output, err := svc.Analyze(context.Background(), analyze.AnalyzeInput{
				Text:          text,
				AllowNonLegal: c.Bool("allow-non-legal"),
				MaxClauses:    c.Int("max-clauses"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// redflagsCmd creates the redflags command.
func redflagsCmd(svc *analyze.Service, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "redflags",
		Usage:     "Scan a document for risky contract language",
		ArgsUsage: "[file]",
		Action: func(c *cli.Context) error {
			text, err := readDocument(c, cfg)
			if err != nil {
				return outputError(err)
			}

			output, err := svc.RedFlags(context.Background(), analyze.RedFlagsInput{Text: text})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// ingestCmd creates the ingest command.
func ingestCmd(svc *analyze.Service, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "ingest",
		Usage:     "Add a reference template to the corpus",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Required: true, Usage: "Unique template name"},
			&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "Contract type (nda|service|employment); detected when omitted"},
		},
		Action: func(c *cli.Context) error {
			text, err := readDocument(c, cfg)
			if err != nil {
				return outputError(err)
			}

			tmpl, err := svc.Corpus.Ingest(context.Background(), c.String("name"), text, c.String("type"))
			if err != nil {
				return outputError(err)
			}

			return outputJSON(tmpl)
		},
	}
}

// templatesCmd creates the templates command.
func templatesCmd(svc *analyze.Service) *cli.Command {
	return &cli.Command{
		Name:  "templates",
		Usage: "List ingested templates, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "Filter by contract type"},
		},
		Action: func(c *cli.Context) error {
			templates, err := svc.Corpus.List(context.Background(), c.String("type"))
			if err != nil {
				return outputError(err)
			}

			return outputJSON(map[string]any{
				"templates": templates,
				"count":     len(templates),
			})
		},
	}
}

// removeCmd creates the remove command.
func removeCmd(svc *analyze.Service) *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "Delete a template from the corpus",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("template id is required"))
			}
			id := c.Args().First()

			if err := svc.Corpus.Delete(context.Background(), id); err != nil {
				return outputError(err)
			}

			return outputJSON(map[string]any{"deleted": id})
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(svc *analyze.Service) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Address to bind"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8321, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(svc, Version, c.String("bind"), c.Int("port"))
			if err := web.Run(srv); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return nil
		},
	}
}

// Helper functions

// readDocument reads the document text from the positional file argument,
// falling back to stdin when no file is given.
func readDocument(c *cli.Context, cfg *config.Config) (string, error) {
	limit := config.DefaultConfig().DocumentMaxChars
	if cfg != nil && cfg.DocumentMaxChars > 0 {
		limit = cfg.DocumentMaxChars
	}

	if c.NArg() > 0 {
		data, err := os.ReadFile(c.Args().First())
		if err != nil {
			return "", errors.NewInvalidRequest(fmt.Sprintf("could not read file: %v", err))
		}
		if len(data) > limit {
			return "", errors.NewPayloadTooLarge(limit, len(data))
		}
		return string(data), nil
	}

	if !stdinHasData() {
		return "", errors.NewInvalidRequest("document text must be given as a file argument or piped via stdin")
	}

	text, err := readStdin(limit)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", errors.NewInvalidRequest("document text is required")
	}
	return text, nil
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if gateErr, ok := err.(*errors.GateError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", gateErr.Code, gateErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads up to limit bytes from stdin, erroring past the limit.
func readStdin(limit int) (string, error) {
	data, err := io.ReadAll(io.LimitReader(os.Stdin, int64(limit)+1))
	if err != nil {
		return "", errors.NewInternal(err)
	}
	if len(data) > limit {
		return "", errors.NewPayloadTooLarge(limit, len(data))
	}
	return strings.TrimSpace(string(data)), nil
}
