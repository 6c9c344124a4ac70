// Package export writes datasets as CSV tables and engine scripts to a sink.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-feederdata/pkg/dataset"
	"github.com/dd0wney/cluso-feederdata/pkg/metrics"
)

// Artifact names.
const (
	LoadLabelsFile        = "load-labels.csv"
	TransformerLabelsFile = "xfmr-labels.csv"
	ProfilesFile          = "load-profile.csv"
	BaseProfilesFile      = "base-profiles.csv"
	CommandsFile          = "loadshape-commands.dss"
	MonitorCommandsFile   = "monitor-commands.dss"
)

// SnappySuffix is appended to compressed artifact names.
const SnappySuffix = ".sz"

// Artifact is one written file.
type Artifact struct {
	Name  string
	Bytes int64
}

type artifact struct {
	name  string
	write func(io.Writer) error
}

func artifacts(ds *dataset.Dataset) []artifact {
	return []artifact{
		{LoadLabelsFile, func(w io.Writer) error { return writeRows(w, LoadLabelRows(ds)) }},
		{TransformerLabelsFile, func(w io.Writer) error { return writeRows(w, TransformerLabelRows(ds)) }},
		{ProfilesFile, func(w io.Writer) error { return WriteProfiles(w, ds) }},
		{BaseProfilesFile, func(w io.Writer) error { return WriteBaseProfiles(w, ds) }},
		{CommandsFile, func(w io.Writer) error { return writeLines(w, ds.Commands) }},
		{MonitorCommandsFile, func(w io.Writer) error { return writeLines(w, ds.MonitorCommands()) }},
	}
}

// WriteDataset renders every artifact and stores it in sink. With compress
// set each artifact is snappy-framed and its name gets the ".sz" suffix.
// reg may be nil.
func WriteDataset(ctx context.Context, sink Sink, ds *dataset.Dataset, compress bool, reg *metrics.Registry) ([]Artifact, error) {
	all := artifacts(ds)
	written := make([]Artifact, 0, len(all))

	for _, a := range all {
		var buf bytes.Buffer
		name := a.name

		if compress {
			name += SnappySuffix
			sw := snappy.NewBufferedWriter(&buf)
			if err := a.write(sw); err != nil {
				return written, fmt.Errorf("render %s: %w", name, err)
			}
			if err := sw.Close(); err != nil {
				return written, fmt.Errorf("compress %s: %w", name, err)
			}
		} else if err := a.write(&buf); err != nil {
			return written, fmt.Errorf("render %s: %w", name, err)
		}

		n := int64(buf.Len())
		if err := sink.Put(ctx, name, &buf); err != nil {
			return written, err
		}
		if reg != nil {
			reg.RecordExport(name, n)
		}
		written = append(written, Artifact{Name: name, Bytes: n})
	}

	return written, nil
}

// Decompress returns a reader over a snappy-framed artifact.
func Decompress(r io.Reader) io.Reader {
	return snappy.NewReader(r)
}
