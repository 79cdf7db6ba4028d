package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"datamapper/internal/document"
	"datamapper/internal/mapping"
	"datamapper/internal/match"
	"datamapper/internal/mutation"
)

type suggestOptions struct {
	target   string
	sources  []string
	params   []string
	depth    int
	top      int
	minScore float64
	minGap   float64
	write    string
}

func newSuggestCmd(a *app) *cobra.Command {
	opts := &suggestOptions{}

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest source fields for the leaves of a target document",
		Long: "Ranks the fields of the source documents against every leaf of the target\n" +
			"document. With --write, confident suggestions are turned into a mapping\n" +
			"snapshot.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSuggest(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.target, "target", "", "target type (import/path.Type)")
	flags.StringSliceVar(&opts.sources, "source", nil, "source body type; repeatable")
	flags.StringSliceVar(&opts.params, "param", nil, "parameter type; repeatable")
	flags.IntVar(&opts.depth, "depth", 4, "how deep fields are collected")
	flags.IntVar(&opts.top, "top", 3, "candidates printed per target field")
	flags.Float64Var(&opts.minScore, "min-score", match.DefaultMinScore, "score a suggestion needs to be written")
	flags.Float64Var(&opts.minGap, "min-gap", match.DefaultMinGap, "lead over the runner-up a written suggestion needs")
	flags.StringVar(&opts.write, "write", "", "write confident suggestions as a mapping snapshot")

	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func (a *app) runSuggest(cmd *cobra.Command, opts *suggestOptions) error {
	if len(opts.sources) == 0 && len(opts.params) == 0 {
		return errors.New("at least one --source or --param is required")
	}

	targets, diags, err := a.loadDocuments(document.KindTargetBody, []string{opts.target})
	if err != nil {
		return err
	}

	printDiagnostics(cmd, diags)

	var sources []*document.Document

	for _, group := range []struct {
		kind document.Kind
		refs []string
	}{
		{document.KindSourceBody, opts.sources},
		{document.KindParameter, opts.params},
	} {
		if len(group.refs) == 0 {
			continue
		}

		docs, diags, err := a.loadDocuments(group.kind, group.refs)
		if err != nil {
			return err
		}

		printDiagnostics(cmd, diags)
		sources = append(sources, docs...)
	}

	target := targets[0]
	sourceFields := match.SourceFields(opts.depth, sources...)

	mappings := mapping.NewTree(target.Ref())
	mutations := mutation.NewService(a.logger)
	out := cmd.OutOrStdout()

	for _, field := range match.SourceFields(opts.depth, target) {
		if !field.IsLeaf() {
			continue
		}

		candidates := match.RankCandidates(field, sourceFields)
		fmt.Fprintf(out, "%s\n", field.Path())

		for _, c := range candidates.Top(opts.top) {
			fmt.Fprintf(out, "  %.2f %-15s %s\n", c.Score, c.Compat.Compatibility,
				mutation.SourceExpression(c.Source.Document, c.Source))
		}

		if opts.write == "" {
			continue
		}

		best := candidates.HighConfidence(opts.minScore, opts.minGap)
		if best == nil {
			continue
		}

		if _, ok := mutations.MapToField(mappings, best.Source, field); ok {
			a.logger.Debug("suggestion applied",
				zap.String("target", field.Path()),
				zap.String("source", best.Source.Path()),
				zap.Float64("score", best.Score))
		}
	}

	if opts.write == "" {
		return nil
	}

	if err := mapping.WriteFile(mapping.Snapshot(mappings), opts.write); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d mapping items to %s\n", mappings.Count(), opts.write)

	return nil
}
