// Package report emits solver output as CSV (incumbent trajectories,
// battery-test aggregation) and Graphviz (tour rendering). Out of core
// scope per the laboratory design; specified only at the boundary where the
// core hands it a Tour and a Tracker.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/dariolupo/tsplab/distance"
	"github.com/dariolupo/tsplab/tour"
	"github.com/dariolupo/tsplab/tracker"
)

// WriteTrajectoryCSV writes a Tracker's (time_ms, objective) points as CSV
// with a header row.
func WriteTrajectoryCSV(w io.Writer, runID string, tr *tracker.Tracker) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()
	if err := cw.Write([]string{"run_id", "time_ms", "objective"}); err != nil {
		return err
	}
	for _, p := range tr.Points() {
		row := []string{
			runID,
			strconv.FormatFloat(p.TimeMS, 'f', 3, 64),
			strconv.FormatFloat(p.Obj, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// BatteryRow summarizes one instance of a battery test for CSV aggregation.
type BatteryRow struct {
	RunID     string
	N         int
	Objective float64
	ElapsedMS float64
}

// WriteBatteryCSV writes a slice of BatteryRow as CSV with a header row.
func WriteBatteryCSV(w io.Writer, rows []BatteryRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()
	if err := cw.Write([]string{"run_id", "n", "objective", "elapsed_ms"}); err != nil {
		return err
	}
	for _, r := range rows {
		row := []string{
			r.RunID,
			strconv.Itoa(r.N),
			strconv.FormatFloat(r.Objective, 'f', 6, 64),
			strconv.FormatFloat(r.ElapsedMS, 'f', 3, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteGraphviz renders a tour as an undirected Graphviz graph, one node
// per entry of nodes (positioned at its coordinates) and one edge per tour
// arc.
func WriteGraphviz(w io.Writer, t *tour.Tour, nodes []distance.Node) error {
	if _, err := fmt.Fprintln(w, "graph tour {"); err != nil {
		return err
	}
	for i, p := range nodes {
		if _, err := fmt.Fprintf(w, "  %d [pos=\"%g,%g!\"];\n", i, p.X, p.Y); err != nil {
			return err
		}
	}
	for _, e := range tour.SuccToEdges(t.Succ) {
		if _, err := fmt.Fprintf(w, "  %d -- %d;\n", e.A, e.B); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}
