package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/odoo-tools/domainconv"
	"github.com/odoo-tools/domainconv/internal/observability"
	"github.com/odoo-tools/domainconv/internal/odoorpc"
	"github.com/odoo-tools/domainconv/internal/schema"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	ConnectionFlags
	Model string
	File  string
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate [DOMAIN]",
		Short: "Validate a domain against a live Odoo server",
		Long: `Parse a domain expression and check its fields, operators and value
types against the field definitions of a model on a live Odoo server.

The model may be given as a technical name (res.partner) or a display
name (Contact).`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Model, "model", "m", "", "model to validate against (required)")
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "read the domain from a file")
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "YAML config file with connection settings")
	cmd.Flags().StringVar(&opts.URL, "url", "", "Odoo server URL")
	cmd.Flags().StringVar(&opts.Database, "db", "", "database name")
	cmd.Flags().StringVar(&opts.Username, "user", "", "login user")
	cmd.Flags().StringVar(&opts.Password, "password", "", "login password or API key")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}

func runValidate(opts *ValidateOptions, args []string, cmd *cobra.Command) error {
	logger := newLogger(cmd, opts.RootOptions)
	ctx := cmd.Context()

	convertOpts := &ConvertOptions{RootOptions: opts.RootOptions, File: opts.File}
	source, err := readDomainSource(convertOpts, args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	domain, err := domainconv.ParseDomain(source)
	if err != nil {
		return fmt.Errorf("parsing domain: %w", err)
	}

	cfg, err := loadConnection(opts.ConnectionFlags)
	if err != nil {
		return err
	}

	// The global providers are no-ops unless an SDK is installed, so this
	// costs nothing in the plain CLI case.
	tracer := observability.NewTracer(otel.GetTracerProvider())
	metrics := observability.NewMetrics(otel.GetMeterProvider())

	client := odoorpc.NewClient(cfg,
		odoorpc.WithLogger(logger),
		odoorpc.WithTracer(tracer),
		odoorpc.WithMetrics(metrics))

	version, err := client.Version(ctx)
	if err != nil {
		return err
	}
	logger.Debug("connected", "server_version", version)

	if _, err := client.Authenticate(ctx); err != nil {
		return err
	}

	model, err := client.ResolveModel(ctx, opts.Model)
	if err != nil {
		return err
	}
	logger.Debug("resolved model", "model", model)

	validator := schema.NewValidator(client)
	vctx, span := tracer.StartValidate(ctx, model)
	findings := validator.ValidateDomain(vctx, model, domain)
	observability.EndSpan(span, nil)

	if model != strings.TrimSpace(opts.Model) {
		resolved := schema.Finding{Level: schema.LevelInfo,
			Message: fmt.Sprintf("resolved %q to %s", opts.Model, model)}
		findings = append([]schema.Finding{resolved}, findings...)
	}

	printFindings(cmd.OutOrStdout(), model, findings)
	if countLevel(findings, schema.LevelError) > 0 {
		return fmt.Errorf("domain is not valid for %s", model)
	}
	return nil
}

func printFindings(w io.Writer, model string, findings []schema.Finding) {
	if len(findings) == 0 {
		color.New(color.FgGreen).Fprintf(w, "✓ domain is valid for %s\n", model)
		return
	}

	errColor := color.New(color.FgRed)
	warnColor := color.New(color.FgYellow)
	infoColor := color.New(color.FgCyan)

	for _, finding := range findings {
		switch finding.Level {
		case schema.LevelError:
			errColor.Fprintf(w, "error: %s\n", finding.Message)
		case schema.LevelWarning:
			warnColor.Fprintf(w, "warning: %s\n", finding.Message)
		default:
			infoColor.Fprintf(w, "info: %s\n", finding.Message)
		}
	}

	fmt.Fprintf(w, "\n%d error(s), %d warning(s)\n",
		countLevel(findings, schema.LevelError), countLevel(findings, schema.LevelWarning))
}

func countLevel(findings []schema.Finding, level schema.Level) int {
	n := 0
	for _, finding := range findings {
		if finding.Level == level {
			n++
		}
	}
	return n
}
