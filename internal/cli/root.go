package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/harvest/internal/config"
	"github.com/roach88/harvest/internal/document"
	"github.com/roach88/harvest/internal/ir"
)

// Options holds the harvest flags.
type Options struct {
	Input          string
	Beds           []string
	OutBackbone    string
	Fasta          string
	OutFasta       string
	Genbanks       []string
	MFA            string
	Newick         string
	OutNewick      string
	MidpointReroot bool
	Output         string
	OutSNP         string
	VCF            string
	OutVCF         string
	XMFA           string
	OutXMFA        string
	Summary        string
	Quiet          bool
	ConfigFile     string

	// IDs overrides the document ID generator (for testing).
	// If nil, defaults to document.UUIDv7Generator.
	IDs document.IDGenerator
}

// StdoutPath is the output path that denotes standard output.
const StdoutPath = "-"

// NewRootCommand creates the harvest command.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&Options{})
}

func newRootCommand(opts *Options) *cobra.Command {
	v := config.New()

	cmd := &cobra.Command{
		Use:   "harvest",
		Short: "Archive and convert comparative-genomics results",
		Long: `harvest loads a reference, an alignment, a phylogeny, annotations,
variant calls and filters into one document, then writes any of its views.

All loads complete before any output is written. Inputs are loaded in this
order: container, MFA, FASTA, GenBank, XMFA, Newick, VCF, BED filters.
Outputs given as "-" are written to standard output.

Example:
  harvest -x parsnp.xmfa -n parsnp.tree -o parsnp.ggr
  harvest -i parsnp.ggr -b core.bed,core,"core genome" -V calls.vcf -S snps.fa`,
		Version:       ir.ToolVersion,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usage(cmd, fmt.Errorf("unexpected argument %q", args[0]))
			}
			if cmd.Flags().NFlag() == 0 {
				return cmd.Help()
			}
			cfg, err := config.Load(v, opts.ConfigFile)
			if err != nil {
				return WrapExitError(ExitUsage, "configuration", err)
			}
			return runHarvest(cmd.Context(), opts, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.SetFlagErrorFunc(usage)

	f := cmd.Flags()
	f.SortFlags = false
	f.StringVarP(&opts.Input, "input", "i", "", "binary container input")
	f.StringVarP(&opts.MFA, "mfa", "m", "", "multi-FASTA alignment input")
	f.StringVarP(&opts.Fasta, "fasta", "f", "", "reference FASTA input (explicit reference)")
	f.StringArrayVarP(&opts.Genbanks, "genbank", "g", nil, "GenBank annotation input (repeatable)")
	f.StringVarP(&opts.XMFA, "xmfa", "x", "", "XMFA alignment input")
	f.StringVarP(&opts.Newick, "newick", "n", "", "Newick tree input")
	f.StringVarP(&opts.VCF, "vcf", "v", "", "VCF variant input")
	f.StringArrayVarP(&opts.Beds, "bed", "b", nil, `filter: <bed file>,<name>,"<description>" (repeatable)`)
	f.BoolVar(&opts.MidpointReroot, "midpoint-reroot", false, "reroot the tree at its midpoint")
	f.StringVarP(&opts.Output, "output", "o", "", "binary container output")
	f.StringVarP(&opts.OutFasta, "out-fasta", "F", "", "reference FASTA output")
	f.StringVarP(&opts.OutNewick, "out-newick", "N", "", "Newick tree output")
	f.StringVarP(&opts.OutSNP, "out-snp", "S", "", "multi-FASTA SNP output")
	f.StringVarP(&opts.OutBackbone, "out-backbone", "B", "", "backbone interval output")
	f.StringVarP(&opts.OutXMFA, "out-xmfa", "X", "", "XMFA alignment output")
	f.StringVarP(&opts.OutVCF, "out-vcf", "V", "", "VCF variant output")
	f.StringVar(&opts.Summary, "summary", "", "YAML document summary output")
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress progress messages")
	f.StringVar(&opts.ConfigFile, "config", "", "YAML config file")

	_ = v.BindPFlag(config.KeyQuiet, f.Lookup("quiet"))

	return cmd
}

// errUsageShown marks a usage problem already reported with the help text.
var errUsageShown = errors.New("usage shown")

// usage reports an unrecognized option followed by the help text. Like
// --help it ends the run successfully.
func usage(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "ERROR: Unrecognized option (%v)\n\n", err)
	cmd.SetOut(cmd.ErrOrStderr())
	_ = cmd.Help()
	return errUsageShown
}

// Execute runs harvest with args and returns the process exit code.
// Errors are reported on stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return execute(ctx, &Options{}, args, stdout, stderr)
}

func execute(ctx context.Context, opts *Options, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil || errors.Is(err, errUsageShown) {
		return ExitSuccess
	}
	fmt.Fprintln(stderr, "ERROR: "+strings.TrimSpace(err.Error()))
	return GetExitCode(err)
}
