package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/oaskit/oasv"
	"github.com/oaskit/oasv/parser"
	"github.com/oaskit/oasv/validator"
)

const (
	strictFlag            = "strict"
	noWarningsFlag        = "no-warnings"
	ignoreFlag            = "ignore"
	validateStructureFlag = "validate-structure"
	jsonFlag              = "json"
)

func main() {
	app := cli.NewApp()
	app.Name = "oasv"
	app.Version = oasv.Version()
	app.Usage = "Parse and validate OpenAPI specifications (OAS 2.0, 3.0.x, 3.1.x)."
	app.Commands = []*cli.Command{
		{
			Name:      "validate",
			Usage:     "Validate an OpenAPI specification file",
			ArgsUsage: "<file>",
			Action:    validateAction,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  strictFlag,
					Usage: "Enable stricter validation beyond spec requirements",
				},
				&cli.BoolFlag{
					Name:  noWarningsFlag,
					Usage: "Suppress warning messages (only show errors)",
				},
				&cli.StringSliceFlag{
					Name:  ignoreFlag,
					Usage: "Rule family to skip (e.g. missing-tags, unused-components); repeatable",
				},
			},
		},
		{
			Name:      "parse",
			Usage:     "Parse an OpenAPI specification file and print its structure",
			ArgsUsage: "<file>",
			Action:    parseAction,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  validateStructureFlag,
					Usage: "Validate document structure during parsing",
				},
				&cli.BoolFlag{
					Name:  jsonFlag,
					Usage: "Print the raw parsed document as JSON",
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseIgnoreFlags resolves --ignore values into rule opt-out flags. Each
// value may be the constant name or its kebab-case form, with or without
// the "ignore-" prefix.
func parseIgnoreFlags(values []string) (validator.Options, error) {
	var flags validator.Options
	for _, value := range values {
		opt, ok := validator.ParseOption(value)
		if !ok {
			opt, ok = validator.ParseOption("ignore-" + value)
		}
		if !ok {
			return 0, fmt.Errorf("unknown ignore value %q", value)
		}
		flags |= opt
	}
	return flags, nil
}

func validateAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("validate command requires exactly one file path")
	}
	specPath := ctx.Args().First()

	ignore, err := parseIgnoreFlags(ctx.StringSlice(ignoreFlag))
	if err != nil {
		return err
	}

	result, err := validator.ValidateWithOptions(
		validator.WithFilePath(specPath),
		validator.WithStrictMode(ctx.Bool(strictFlag)),
		validator.WithIncludeWarnings(!ctx.Bool(noWarningsFlag)),
		validator.WithIgnore(ignore),
	)
	if err != nil {
		return fmt.Errorf("validating file: %w", err)
	}

	fmt.Printf("oasv %s\n", oasv.Version())
	fmt.Printf("Specification: %s\n", specPath)
	fmt.Printf("OAS Version: %s\n", result.Version)
	fmt.Printf("Source Size: %d bytes\n", result.SourceSize)
	fmt.Printf("Load Time: %v\n", result.LoadTime)
	if ignore != 0 {
		fmt.Printf("Ignoring: %s\n", ignore)
	}
	fmt.Println()

	if len(result.Errors) > 0 {
		fmt.Printf("Errors (%d):\n", result.ErrorCount)
		for _, issue := range result.Errors {
			fmt.Printf("  %s\n", issue.String())
		}
		fmt.Println()
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("Warnings (%d):\n", result.WarningCount)
		for _, issue := range result.Warnings {
			fmt.Printf("  %s\n", issue.String())
		}
		fmt.Println()
	}

	if !result.Valid {
		fmt.Printf("✗ Validation failed: %d error(s)", result.ErrorCount)
		if result.WarningCount > 0 {
			fmt.Printf(", %d warning(s)", result.WarningCount)
		}
		fmt.Println()
		return cli.Exit("", 1)
	}

	fmt.Printf("✓ Validation passed")
	if result.WarningCount > 0 {
		fmt.Printf(" with %d warning(s)", result.WarningCount)
	}
	fmt.Println()
	return nil
}

func parseAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("parse command requires exactly one file path")
	}
	specPath := ctx.Args().First()

	result, err := parser.ParseWithOptions(
		parser.WithFilePath(specPath),
		parser.WithValidateStructure(ctx.Bool(validateStructureFlag)),
	)
	if err != nil {
		return fmt.Errorf("parsing file: %w", err)
	}

	fmt.Printf("oasv %s\n", oasv.Version())
	fmt.Printf("Specification: %s\n", specPath)
	fmt.Printf("OAS Version: %s\n", result.Version)
	fmt.Printf("Source Format: %s\n", result.SourceFormat)
	fmt.Printf("Source Size: %d bytes\n", result.SourceSize)
	fmt.Printf("Load Time: %v\n\n", result.LoadTime)

	if len(result.Warnings) > 0 {
		fmt.Printf("Warnings:\n")
		for _, warning := range result.Warnings {
			fmt.Printf("  - %s\n", warning)
		}
		fmt.Println()
	}

	if len(result.Errors) > 0 {
		fmt.Printf("Structure Errors:\n")
		for _, err := range result.Errors {
			fmt.Printf("  - %s\n", err)
		}
		fmt.Println()
		return cli.Exit("", 1)
	}

	switch doc := result.Document.(type) {
	case *parser.OAS2Document:
		fmt.Printf("Document Type: OpenAPI 2.0 (Swagger)\n")
		if doc.Info != nil {
			fmt.Printf("Title: %s\n", doc.Info.Title)
			fmt.Printf("Version: %s\n", doc.Info.Version)
		}
		fmt.Printf("Paths: %d\n", len(doc.Paths))
		fmt.Printf("Definitions: %d\n", len(doc.Definitions))

	case *parser.OAS3Document:
		fmt.Printf("Document Type: OpenAPI 3.x\n")
		if doc.Info != nil {
			fmt.Printf("Title: %s\n", doc.Info.Title)
			if doc.Info.Summary != "" {
				fmt.Printf("Summary: %s\n", doc.Info.Summary)
			}
			fmt.Printf("Version: %s\n", doc.Info.Version)
		}
		fmt.Printf("Servers: %d\n", len(doc.Servers))
		fmt.Printf("Paths: %d\n", len(doc.Paths))
		if len(doc.Webhooks) > 0 {
			fmt.Printf("Webhooks: %d\n", len(doc.Webhooks))
		}
	}

	if ctx.Bool(jsonFlag) {
		jsonData, err := json.MarshalIndent(result.Data, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling to JSON: %w", err)
		}
		fmt.Printf("\n%s\n", jsonData)
	}

	return nil
}
