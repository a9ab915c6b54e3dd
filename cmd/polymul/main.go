// Command polymul multiplies polynomials with the poly backends.
//
// Coefficients are given lowest degree first as comma-separated lists.
//
// Examples:
//
//	polymul mul 1,2,3 4,5
//	polymul mul --backend parallel --plot 1,-1,0.5 2,2,2,2
//	polymul check 1,2,3 4,5
//	polymul backends
//	polymul config init polymul.yaml
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-polymul/internal/config"
	"github.com/cwbudde/algo-polymul/internal/reference"
	"github.com/cwbudde/algo-polymul/poly"
)

type options struct {
	configFile string
	backend    string
	workers    int
	minChunk   int
	plot       bool
	force      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "polymul",
		Short:        "dense polynomial multiplication with pluggable backends",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "YAML config file")

	mulCmd := &cobra.Command{
		Use:   "mul P1 P2",
		Short: "multiply two polynomials",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMul(cmd, opts, args)
		},
	}
	mulCmd.Flags().StringVar(&opts.backend, "backend", "", "backend name (default: best for this CPU)")
	mulCmd.Flags().IntVar(&opts.workers, "workers", 0, "parallel backend worker count (0 = one per CPU)")
	mulCmd.Flags().IntVar(&opts.minChunk, "min-chunk", 0, "parallel backend minimum outputs per worker")
	mulCmd.Flags().BoolVar(&opts.plot, "plot", false, "plot the product coefficients")

	checkCmd := &cobra.Command{
		Use:   "check P1 P2",
		Short: "run every backend and compare against the FFT reference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args)
		},
	}

	backendsCmd := &cobra.Command{
		Use:   "backends",
		Short: "list registered backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printBackends(cmd.OutOrStdout())
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage polymul config files",
	}
	initCmd := &cobra.Command{
		Use:   "init PATH",
		Short: "write the default config to PATH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, opts, args[0])
		},
	}
	initCmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(initCmd)

	rootCmd.AddCommand(mulCmd, checkCmd, backendsCmd, configCmd)
	return rootCmd
}

// loadConfig reads the config file if one was given and applies flags that
// were set explicitly on cmd.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.configFile != "" {
		loaded, err := config.Load(opts.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = opts.backend
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if flags.Changed("min-chunk") {
		cfg.MinChunk = opts.minChunk
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveBackend(cfg *config.Config) (poly.Backend, error) {
	switch cfg.Backend {
	case "":
		return poly.Default(), nil
	case "parallel":
		return poly.NewParallel(poly.WithWorkers(cfg.Workers), poly.WithMinChunk(cfg.MinChunk)), nil
	default:
		return poly.Lookup(cfg.Backend)
	}
}

func runMul(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	p1, p2, err := parseOperands(args)
	if err != nil {
		return err
	}

	backend, err := resolveBackend(cfg)
	if err != nil {
		return err
	}

	product, err := poly.MultiplyWith(backend, p1, p2)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formatCoefficients(product))

	if opts.plot {
		fmt.Fprintln(out, asciigraph.Plot(product,
			asciigraph.Height(cfg.Plot.Height),
			asciigraph.Width(cfg.Plot.Width),
			asciigraph.Caption(fmt.Sprintf("degree %d product (%s)", poly.Degree(product), backend.Name())),
		))
	}
	return nil
}

var errCheckFailed = errors.New("polymul: backend results differ from reference")

func runCheck(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	p1, p2, err := parseOperands(args)
	if err != nil {
		return err
	}

	want, err := reference.Convolve(p1, p2)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "BACKEND\tMAX ABS DIFF\tRESULT\n")

	failed := false
	for _, e := range poly.Entries() {
		backend, err := poly.Lookup(e.Name)
		if errors.Is(err, poly.ErrBackendUnavailable) {
			fmt.Fprintf(tw, "%s\t-\tunavailable\n", e.Name)
			continue
		}
		if err != nil {
			return err
		}

		got, err := poly.MultiplyWith(backend, p1, p2)
		if err != nil {
			fmt.Fprintf(tw, "%s\t-\terror: %v\n", e.Name, err)
			failed = true
			continue
		}

		diff, err := reference.MaxAbsDiff(got, want)
		if err != nil {
			return err
		}

		status := "ok"
		if !reference.AllClose(got, want, cfg.RTol, cfg.ATol) {
			status = "FAIL"
			failed = true
		}
		fmt.Fprintf(tw, "%s\t%.3e\t%s\n", e.Name, diff, status)
	}

	if err := tw.Flush(); err != nil {
		return err
	}
	if failed {
		return errCheckFailed
	}
	return nil
}

func printBackends(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "NAME\tPRIORITY\tSIMD\tSTATUS\n")

	for _, e := range poly.Entries() {
		status := "available"
		if _, err := poly.Lookup(e.Name); err != nil {
			status = "unavailable"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", e.Name, e.Priority, e.SIMDLevel, status)
	}

	if def := poly.Default(); def != nil {
		fmt.Fprintf(tw, "\ndefault:\t%s\n", def.Name())
	}
	return tw.Flush()
}

var errConfigExists = errors.New("polymul: config file already exists")

func runConfigInit(cmd *cobra.Command, opts *options, path string) error {
	if !opts.force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s (use --force to overwrite)", errConfigExists, path)
		}
	}
	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func parseOperands(args []string) (p1, p2 []float64, err error) {
	if p1, err = parseCoefficients(args[0]); err != nil {
		return nil, nil, fmt.Errorf("first polynomial: %w", err)
	}
	if p2, err = parseCoefficients(args[1]); err != nil {
		return nil, nil, fmt.Errorf("second polynomial: %w", err)
	}
	return p1, p2, nil
}

// parseCoefficients parses a comma-separated coefficient list, lowest degree
// first. Surrounding whitespace and brackets are ignored.
func parseCoefficients(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: no coefficients", poly.ErrInvalidInput)
	}

	fields := strings.Split(s, ",")
	coeffs := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: coefficient %d: %v", poly.ErrInvalidInput, i, err)
		}
		coeffs[i] = v
	}
	return coeffs, nil
}

func formatCoefficients(p []float64) string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}
