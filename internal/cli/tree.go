package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"datamapper/internal/document"
	"datamapper/internal/mapping"
	"datamapper/internal/tree"
	"datamapper/internal/visualize"
)

type treeOptions struct {
	kind        string
	mappingPath string
	depth       int
	budget      int
	expand      []string
	collapsed   bool
	dump        bool
	reverse     bool
}

// row is the dump form of one visible tree node.
type row struct {
	Depth  int
	Kind   string
	Title  string
	Path   string
	Parsed bool
	Leaf   bool
}

func newTreeCmd(a *app) *cobra.Command {
	opts := &treeOptions{}

	cmd := &cobra.Command{
		Use:   "tree <import/path.Type>",
		Short: "Print the view tree of a document",
		Long: "Builds the document from a Go struct type, optionally attaches a mapping\n" +
			"snapshot, parses it within the configured limits and prints the visible rows.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTree(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.kind, "kind", document.KindTargetBody.String(), "document kind: sourceBody, targetBody or param")
	flags.StringVar(&opts.mappingPath, "mapping", "", "mapping snapshot (YAML) for a target document")
	flags.IntVar(&opts.depth, "depth", -1, "initial parse depth (default from config)")
	flags.IntVar(&opts.budget, "budget", -1, "field budget beyond the initial depth (default from config)")
	flags.StringSliceVar(&opts.expand, "expand", nil, "paths of nodes to expand after the bounded parse")
	flags.BoolVar(&opts.collapsed, "collapsed", false, "show only the top level and the --expand paths")
	flags.BoolVar(&opts.dump, "dump", false, "dump the visible rows instead of printing them")
	flags.BoolVar(&opts.reverse, "reverse", false, "list merged children newest first")

	return cmd
}

func (a *app) runTree(cmd *cobra.Command, ref string, opts *treeOptions) error {
	kind, err := document.ParseKind(opts.kind)
	if err != nil {
		return err
	}

	docs, diags, err := a.loadDocuments(kind, []string{ref})
	if err != nil {
		return err
	}

	printDiagnostics(cmd, diags)

	doc := docs[0]

	var mappings *mapping.Tree
	if !kind.IsSource() {
		mappings, err = a.loadMappings(cmd, doc, opts.mappingPath)
		if err != nil {
			return err
		}
	}

	depth, budget := a.cfg.Parser.InitialDepth, a.cfg.Parser.FieldBudget
	if opts.depth >= 0 {
		depth = opts.depth
	}

	if opts.budget >= 0 {
		budget = opts.budget
	}

	var engineOpts []visualize.Option
	if opts.reverse {
		engineOpts = append(engineOpts, visualize.WithComparator(func(x, y mapping.Item) int {
			return mapping.ByCreation(y, x)
		}))
	}

	parser := tree.NewParser(visualize.NewService(engineOpts...), a.logger)
	store := tree.NewStore(parser, depth, budget, a.logger)
	dt := store.GetOrBuild(doc, mappings)

	expanded := make(map[string]bool, len(opts.expand))

	for _, path := range opts.expand {
		node, ok := dt.FindNodeByPath(path)
		if !ok {
			return fmt.Errorf("no node at path %q", path)
		}

		parser.ExpandNode(node)

		for n := node; n != nil; n = n.Parent {
			expanded[n.Path] = true
		}
	}

	var isExpanded func(string) bool
	if opts.collapsed {
		isExpanded = func(path string) bool { return expanded[path] }
	}

	rows := rowsOf(tree.Flatten(dt, isExpanded))

	if opts.dump {
		spew.Fdump(cmd.OutOrStdout(), rows)
		return nil
	}

	return printRows(cmd.OutOrStdout(), rows)
}

func (a *app) loadMappings(cmd *cobra.Command, doc *document.Document, path string) (*mapping.Tree, error) {
	if path == "" {
		return mapping.NewTree(doc.Ref()), nil
	}

	sf, err := mapping.LoadFile(path)
	if err != nil {
		return nil, err
	}

	mappings, diags := mapping.Build(sf, doc)
	printDiagnostics(cmd, diags)

	if err := diags.Error(); err != nil {
		return nil, fmt.Errorf("invalid mapping snapshot %s: %w", path, err)
	}

	a.logger.Debug("mapping snapshot loaded", zap.String("path", path), zap.Int("items", mappings.Count()))

	return mappings, nil
}

// rowsOf converts flattened nodes into printable rows.
func rowsOf(nodes []tree.FlatNode) []row {
	rows := make([]row, 0, len(nodes))

	for _, n := range nodes {
		rows = append(rows, row{
			Depth:  n.Depth,
			Kind:   n.Node.Data.Kind().String(),
			Title:  n.Node.Data.Title(),
			Path:   n.Node.Path,
			Parsed: n.Node.IsParsed,
			Leaf:   visualize.IsTerminal(n.Node.Data),
		})
	}

	return rows
}

func printRows(w io.Writer, rows []row) error {
	for _, r := range rows {
		marker := " "
		if !r.Parsed && !r.Leaf {
			marker = "+"
		}

		if _, err := fmt.Fprintf(w, "%s%s %s [%s]\n", strings.Repeat("  ", r.Depth), marker, r.Title, r.Kind); err != nil {
			return fmt.Errorf("writing tree: %w", err)
		}
	}

	return nil
}
