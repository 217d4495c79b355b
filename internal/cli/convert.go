package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/odoo-tools/domainconv"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	File   string
	Python bool
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert [DOMAIN]",
		Short: "Convert a domain expression to readable form",
		Long: `Convert an Odoo domain expression to human-readable pseudocode,
or with --python to an infix Python-style condition.

The domain is read from the argument, from --file, or from stdin.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "read the domain from a file")
	cmd.Flags().BoolVar(&opts.Python, "python", false, "emit a Python-style infix condition")

	return cmd
}

func runConvert(opts *ConvertOptions, args []string, cmd *cobra.Command) error {
	logger := newLogger(cmd, opts.RootOptions)

	source, err := readDomainSource(opts, args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	logger.Debug("parsing domain", "length", len(source))

	domain, err := domainconv.ParseDomain(source)
	if err != nil {
		return fmt.Errorf("parsing domain: %w", err)
	}

	var out string
	if opts.Python {
		out, err = domainconv.ConvertToPython(domain)
	} else {
		out, err = domainconv.ConvertToPseudocode(domain)
	}
	if err != nil {
		return fmt.Errorf("converting domain: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// readDomainSource resolves the domain text from the positional argument,
// the --file flag, or stdin, in that order.
func readDomainSource(opts *ConvertOptions, args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 && opts.File != "" {
		return "", fmt.Errorf("cannot combine a DOMAIN argument with --file")
	}
	if len(args) == 1 {
		return args[0], nil
	}
	if opts.File != "" {
		data, err := os.ReadFile(opts.File)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", opts.File, err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	source := strings.TrimSpace(string(data))
	if source == "" {
		return "", fmt.Errorf("no domain given: pass it as an argument, via --file, or on stdin")
	}
	return source, nil
}
