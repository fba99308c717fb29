package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/cinefleet/fleetcheck/pkg/measurement"
	"github.com/cinefleet/fleetcheck/pkg/ranges"
)

func rangesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "ranges",
		EnableShellCompletion: true,
		Usage:                 "Show the range registry.",
		Description: `Prints the effective range registry: the built-in specs with any --ranges
overrides applied. The output is itself a valid --ranges document.

Show every field:
  fleetcheck ranges --format table

Show a single field:
  fleetcheck ranges --field brightness

Show one category:
  fleetcheck ranges --category environmental`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "field",
				Aliases: []string{"f"},
				Usage:   "Show only this field",
			},
			&cli.StringFlag{
				Name:    "category",
				Aliases: []string{"c"},
				Usage:   "Show only fields in this category (critical, technical, environmental, operational)",
			},
			rangesFlag,
			kubeconfigFlag,
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			reg, err := loadRegistry(ctx, cmd)
			if err != nil {
				return err
			}

			doc, err := selectRanges(reg, cmd.String("field"), cmd.String("category"))
			if err != nil {
				return err
			}

			return writeOutput(ctx, cmd, doc)
		},
	}
}

// selectRanges returns the registry document narrowed to field and category.
func selectRanges(reg *ranges.Registry, field, category string) (*ranges.Document, error) {
	doc := reg.Document()

	if field != "" {
		spec, ok := reg.Lookup(measurement.Field(field))
		if !ok {
			msg := fmt.Sprintf("field %q is not registered", field)
			if suggestions := reg.Suggest(field); len(suggestions) > 0 {
				names := make([]string, 0, len(suggestions))
				for _, s := range suggestions {
					names = append(names, string(s))
				}
				msg += fmt.Sprintf(", did you mean %s?", strings.Join(names, ", "))
			}
			return nil, fmt.Errorf("%s", msg)
		}
		doc.Specs = []ranges.RangeSpec{*spec}
	}

	if category != "" {
		c := ranges.Category(strings.ToLower(category))
		if !c.IsValid() {
			return nil, fmt.Errorf("unknown category %q", category)
		}
		filtered := doc.Specs[:0]
		for _, s := range doc.Specs {
			if s.Category == c {
				filtered = append(filtered, s)
			}
		}
		doc.Specs = filtered
	}

	return doc, nil
}
