package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/dd0wney/cluso-feederdata/pkg/dataset"
)

// Column headers of the label tables.
var (
	LoadLabelHeader        = []string{"load_name", "phase", "loadshape", "transformer_name"}
	TransformerLabelHeader = []string{"load_indices", "load_names", "phase", "transformer_name"}
)

// HourColumn heads the time axis of the profile table.
const HourColumn = "hour"

// LoadLabelRows flattens the load labels, header first.
func LoadLabelRows(ds *dataset.Dataset) [][]string {
	rows := make([][]string, 0, len(ds.LoadLabels)+1)
	rows = append(rows, LoadLabelHeader)
	for _, l := range ds.LoadLabels {
		rows = append(rows, []string{l.LoadName, strconv.Itoa(l.Phase), l.Loadshape, l.TransformerName})
	}
	return rows
}

// TransformerLabelRows flattens the transformer labels, header first.
func TransformerLabelRows(ds *dataset.Dataset) [][]string {
	rows := make([][]string, 0, len(ds.TransformerLabels)+1)
	rows = append(rows, TransformerLabelHeader)
	for _, t := range ds.TransformerLabels {
		rows = append(rows, []string{t.JoinIndices(), t.JoinNames(), strconv.Itoa(t.Phase), t.TransformerName})
	}
	return rows
}

// WriteProfiles writes the profile matrix: one column per load, one row per timestep.
func WriteProfiles(w io.Writer, ds *dataset.Dataset) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(ds.Profiles)+1)
	header[0] = HourColumn
	for i, p := range ds.Profiles {
		header[i+1] = p.ElementName
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for t, hour := range ds.TimestepHours() {
		row[0] = strconv.FormatFloat(hour, 'g', -1, 64)
		for i, p := range ds.Profiles {
			row[i+1] = strconv.FormatFloat(p.Values[t], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteBaseProfiles writes the coarse base shapes: one column per base
// profile, one row per hour. Shorter shapes leave trailing cells empty.
func WriteBaseProfiles(w io.Writer, ds *dataset.Dataset) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(ds.BaseProfiles)+1)
	header[0] = HourColumn
	points := 0
	for i, b := range ds.BaseProfiles {
		header[i+1] = b.Name
		points = max(points, len(b.Values))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for t := 0; t < points; t++ {
		row[0] = strconv.Itoa(t)
		for i, b := range ds.BaseProfiles {
			row[i+1] = ""
			if t < len(b.Values) {
				row[i+1] = strconv.FormatFloat(b.Values[t], 'g', -1, 64)
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeRows(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
