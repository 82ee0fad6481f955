package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/siteicon/icon"
)

// resolveOutput is the JSON printed for one resolution.
type resolveOutput struct {
	Kind       string `json:"kind"`
	Domain     string `json:"domain"`
	URL        string `json:"url,omitempty"`
	Char       string `json:"char,omitempty"`
	Color      string `json:"color,omitempty"`
	ImageBytes int    `json:"image_bytes,omitempty"`
}

func newResolveCmd(a *app) *cobra.Command {
	var (
		name    string
		outFile string
	)

	cmd := &cobra.Command{
		Use:   "resolve <domain>",
		Short: "Resolve the icon for a domain",
		Long: `Resolve the icon for a domain through the cache and the provider
cascade. Inline image payloads can be written to a file with --out;
metadata is printed as JSON either way.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.setup(ctx); err != nil {
				return err
			}
			defer a.teardown(ctx)

			res, err := a.resolver.Resolve(ctx, args[0], name)
			if err != nil {
				return err
			}

			if outFile != "" && res.Kind == icon.KindImage {
				if err := os.WriteFile(outFile, res.Image, 0o644); err != nil {
					return fmt.Errorf("writing icon: %w", err)
				}
			}

			out := resolveOutput{
				Kind:       res.Kind.String(),
				Domain:     res.Domain,
				URL:        res.URL,
				Char:       res.Char,
				Color:      res.Color,
				ImageBytes: len(res.Image),
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name used for the letter glyph fallback")
	cmd.Flags().StringVar(&outFile, "out", "", "write an inline image payload to this file")
	return cmd
}
