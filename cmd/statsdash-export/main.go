// Command statsdash-export runs a transformer over a documents file and
// writes the series as indented JSON or a standalone HTML chart page
package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"statsdash/internal/core/chart"
	"statsdash/internal/core/transform"
	perr "statsdash/internal/platform/errors"
	"statsdash/internal/platform/logger"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logger.Get().Fatal().Err(err).Msg("export failed")
	}
}

type exportCommand struct {
	kind     string
	input    string
	output   string
	format   string
	families []string
}

func newRootCommand() *cobra.Command {
	ec := &exportCommand{}
	cmd := &cobra.Command{
		Use:          "statsdash-export",
		Short:        "Transform stored aggregation documents into chart-ready series",
		RunE:         ec.run,
		SilenceUsage: true,
	}

	flags := cmd.Flags()
	flags.StringVarP(&ec.kind, "kind", "k", "", "transformer kind: "+kindList())
	flags.StringVarP(&ec.input, "in", "i", "-", "input documents file (JSON array), - for stdin")
	flags.StringVarP(&ec.output, "out", "o", "-", "output file, - for stdout")
	flags.StringVarP(&ec.format, "format", "f", "json", "output format: json or html")
	flags.StringSliceVar(&ec.families, "families", nil, "category families to keep, empty keeps all")
	_ = cmd.MarkFlagRequired("kind")

	return cmd
}

func kindList() string {
	ks := transform.Kinds()
	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = string(k)
	}
	return strings.Join(out, ", ")
}

func (ec *exportCommand) run(_ *cobra.Command, _ []string) error {
	tr, err := transform.New(transform.Kind(ec.kind), transform.Config{})
	if err != nil {
		return err
	}

	docs, err := readDocuments(ec.input)
	if err != nil {
		return err
	}

	out := keepFamilies(tr.Transform(docs), ec.families)

	w, done, err := openOutput(ec.output)
	if err != nil {
		return err
	}
	defer done()

	switch ec.format {
	case "html":
		return chart.Render(w, "Statsdash "+ec.kind, out)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	return perr.InvalidArgf("unknown output format %q", ec.format)
}

// readDocuments loads a JSON array of aggregation documents
func readDocuments(path string) ([]transform.Document, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "read documents from %q", path)
	}

	var docs []transform.Document
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "decode documents from %q", path)
	}
	return docs, nil
}

// openOutput returns the destination writer and a close func
func openOutput(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "create output %q", path)
	}
	return f, func() { _ = f.Close() }, nil
}

// keepFamilies prunes category families the caller did not ask for
// global and file presence always survive
func keepFamilies(out transform.Output, families []string) transform.Output {
	if len(families) == 0 {
		return out
	}
	keep := make(map[string]bool, len(families))
	for _, f := range families {
		keep[f] = true
	}
	pruned := make(transform.Output, len(out))
	for key, metrics := range out {
		if key == transform.KeyGlobal || key == transform.KeyFilePresence || keep[key] {
			pruned[key] = metrics
		}
	}
	return pruned
}
