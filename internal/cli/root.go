// Package cli implements the datamapper commands.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"datamapper/internal/analyze"
	"datamapper/internal/config"
	"datamapper/internal/diagnostic"
	"datamapper/internal/document"
	"datamapper/internal/logging"
)

// app carries what the persistent flags resolved for the subcommands.
type app struct {
	configPath string
	logLevel   string
	dir        string

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCmd creates the root datamapper command with all subcommands
// registered.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "datamapper",
		Short:         "datamapper - inspect documents and their mapping trees",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "settings file (YAML)")
	flags.StringVar(&a.logLevel, "log-level", "", "override the configured log level")
	flags.StringVar(&a.dir, "dir", "", "directory the Go packages are resolved from")

	root.AddCommand(newTreeCmd(a))
	root.AddCommand(newSuggestCmd(a))

	return root
}

func (a *app) init() error {
	cfg := config.Default()

	if a.configPath != "" {
		loaded, err := config.LoadFile(a.configPath)
		if err != nil {
			return err
		}

		cfg = loaded
	}

	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}

	logger, _, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger

	return nil
}

// typeRef splits "import/path.Type".
func typeRef(s string) (analyze.TypeID, error) {
	idx := strings.LastIndex(s, ".")
	if idx <= 0 || idx == len(s)-1 {
		return analyze.TypeID{}, fmt.Errorf("type reference %q must have the form import/path.Type", s)
	}

	return analyze.TypeID{PkgPath: s[:idx], Name: s[idx+1:]}, nil
}

// loadDocuments loads the packages of all refs and converts each type into
// a document of the given kind.
func (a *app) loadDocuments(kind document.Kind, refs []string) ([]*document.Document, *diagnostic.Diagnostics, error) {
	ids := make([]analyze.TypeID, 0, len(refs))
	pkgs := make([]string, 0, len(refs))
	seen := make(map[string]bool, len(refs))

	for _, r := range refs {
		id, err := typeRef(r)
		if err != nil {
			return nil, nil, err
		}

		ids = append(ids, id)

		if !seen[id.PkgPath] {
			seen[id.PkgPath] = true
			pkgs = append(pkgs, id.PkgPath)
		}
	}

	analyzer := analyze.NewAnalyzer(a.dir)
	if _, err := analyzer.LoadPackages(pkgs...); err != nil {
		return nil, nil, err
	}

	diags := &diagnostic.Diagnostics{}
	docs := make([]*document.Document, 0, len(ids))

	for _, id := range ids {
		doc, d, err := analyzer.Document(kind, id)
		if err != nil {
			return nil, nil, fmt.Errorf("converting %s: %w", id, err)
		}

		diags.Merge(d)
		docs = append(docs, doc)

		a.logger.Debug("document loaded",
			zap.Stringer("document", doc.Ref()),
			zap.Int("fields", len(doc.Fields)),
			zap.Int("fragments", len(doc.Fragments)))
	}

	return docs, diags, nil
}

// printDiagnostics writes each diagnostic to stderr in human-readable form.
func printDiagnostics(cmd *cobra.Command, diags *diagnostic.Diagnostics) {
	if diags == nil {
		return
	}

	for _, d := range diags.All() {
		if d.Severity == diagnostic.SeverityInfo {
			continue
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", d.Severity, d)
	}
}
