package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/harvest/internal/config"
	"github.com/roach88/harvest/internal/document"
)

// runHarvest performs one batch run: every load in the fixed order, the
// optional reroot, then every requested write.
func runHarvest(ctx context.Context, opts *Options, cfg config.Config, stdout, stderr io.Writer) error {
	// Filter arguments are checked before anything is read or written.
	filters := make([]document.FilterSpec, 0, len(opts.Beds))
	for _, arg := range opts.Beds {
		spec, err := document.ParseFilterSpec(arg)
		if err != nil {
			return WrapExitError(ExitUsage, "", err)
		}
		filters = append(filters, spec)
	}
	if opts.Output == StdoutPath {
		return NewExitError(ExitUsage, "the binary container cannot be written to standard output")
	}

	level := slog.LevelInfo
	if cfg.Quiet {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	docOpts := []document.Option{
		document.WithLogger(logger),
		document.WithStrictIdentifiers(cfg.Identifiers.Strict),
		document.WithLineWidth(cfg.Fasta.LineWidth),
	}
	if opts.IDs != nil {
		docOpts = append(docOpts, document.WithIDGenerator(opts.IDs))
	}
	doc := document.New(docOpts...)

	if err := load(ctx, doc, opts, filters); err != nil {
		return loadFailure(err)
	}
	if opts.MidpointReroot {
		if err := doc.MidpointReroot(); err != nil {
			return WrapExitError(ExitFailure, "", err)
		}
	}
	if err := save(ctx, doc, opts, stdout); err != nil {
		return WrapExitError(ExitFailure, "", err)
	}
	return nil
}

func load(ctx context.Context, doc *document.Document, opts *Options, filters []document.FilterSpec) error {
	deriveVariants := opts.VCF == ""

	if opts.Input != "" {
		if err := doc.LoadContainer(ctx, opts.Input); err != nil {
			return err
		}
	}
	if opts.MFA != "" {
		if err := doc.LoadMFA(opts.MFA, deriveVariants); err != nil {
			return err
		}
	}
	if opts.Fasta != "" {
		if err := doc.LoadFasta(opts.Fasta); err != nil {
			return err
		}
	}
	for _, path := range opts.Genbanks {
		if err := doc.LoadGenbank(path); err != nil {
			return err
		}
	}
	if opts.XMFA != "" {
		if err := doc.LoadXMFA(opts.XMFA, deriveVariants); err != nil {
			return err
		}
	}
	if opts.Newick != "" {
		if err := doc.LoadNewick(opts.Newick); err != nil {
			return err
		}
	}
	if opts.VCF != "" {
		if err := doc.LoadVCF(opts.VCF); err != nil {
			return err
		}
	}
	for _, spec := range filters {
		if err := doc.AddFilter(spec); err != nil {
			return err
		}
	}
	return nil
}

func loadFailure(err error) error {
	var de *document.Error
	if errors.As(err, &de) && de.Code == document.ErrCodeNoSequence {
		return NewExitError(ExitFailure,
			fmt.Sprintf("No sequence in Genbank file (%s) and no other reference loaded.", de.File))
	}
	return WrapExitError(ExitFailure, "", err)
}

func save(ctx context.Context, doc *document.Document, opts *Options, stdout io.Writer) error {
	outputs := []struct {
		kind  document.Output
		path  string
		write func(io.Writer) error
	}{
		{document.OutputFasta, opts.OutFasta, doc.WriteFasta},
		{document.OutputNewick, opts.OutNewick, doc.WriteNewick},
		{document.OutputSNP, opts.OutSNP, doc.WriteSNPs},
		{document.OutputBackbone, opts.OutBackbone, doc.WriteBackbone},
		{document.OutputXMFA, opts.OutXMFA, doc.WriteXMFA},
		{document.OutputVCF, opts.OutVCF, doc.WriteVCF},
		{document.OutputSummary, opts.Summary, doc.WriteSummary},
	}

	// Nothing is opened until every requested output can be produced.
	if opts.Output != "" {
		if err := doc.CheckOutput(document.OutputContainer); err != nil {
			return err
		}
	}
	for _, out := range outputs {
		if out.path == "" {
			continue
		}
		if err := doc.CheckOutput(out.kind); err != nil {
			return err
		}
	}

	if opts.Output != "" {
		if err := doc.SaveContainer(ctx, opts.Output); err != nil {
			return err
		}
	}
	for _, out := range outputs {
		if out.path == "" {
			continue
		}
		if err := writeOutput(out.path, stdout, out.write); err != nil {
			return err
		}
	}
	return nil
}
