// Package tsplib parses the TSPLIB file-format subset named in the
// laboratory's external interfaces: line-oriented KEY : VALUE headers
// followed by data sections, out of core scope but needed to get real
// instances and tours in and out of the solver.
package tsplib

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dariolupo/tsplab/distance"
)

// ErrInvalidInput covers parse failures, inconsistent DIMENSION, wrong
// section order, and unhandled metrics — all InvalidInput per the error
// handling design.
var ErrInvalidInput = errors.New("tsplib: invalid input")

// Instance is a parsed TSPLIB problem.
type Instance struct {
	Name           string
	Type           string
	Dimension      int
	EdgeWeightType string
	Nodes          []distance.Node // populated for EUC_2D/GEO-style instances
	ExplicitRows   [][]float64     // populated when EdgeWeightType == "EXPLICIT"; rows[i] has length i
}

// Metric derives the distance.Metric this instance implies, honoring a
// forced override for --integer_costs.
func (inst *Instance) Metric(forceRounded bool) (distance.Metric, error) {
	switch inst.EdgeWeightType {
	case "EXPLICIT":
		return distance.Explicit, nil
	case "GEO":
		return distance.GEO, nil
	case "EUC_2D", "ATT":
		if forceRounded {
			return distance.L2Rounded, nil
		}
		return distance.L2Real, nil
	default:
		return 0, ErrInvalidInput
	}
}

// Parse reads a TSPLIB instance file.
func Parse(r io.Reader) (*Instance, error) {
	inst := &Instance{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var section string
	var explicitRows [][]float64

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "EOF" {
			break
		}

		if section == "" {
			if key, val, ok := splitHeader(line); ok {
				switch key {
				case "NAME":
					inst.Name = val
				case "TYPE":
					inst.Type = val
					if val != "TSP" && val != "TOUR" {
						return nil, fmt.Errorf("%w: unsupported TYPE %q", ErrInvalidInput, val)
					}
				case "COMMENT":
					// ignored
				case "DIMENSION":
					n, err := strconv.Atoi(val)
					if err != nil || n <= 0 {
						return nil, fmt.Errorf("%w: bad DIMENSION", ErrInvalidInput)
					}
					inst.Dimension = n
				case "EDGE_WEIGHT_TYPE":
					inst.EdgeWeightType = val
				case "EDGE_WEIGHT_FORMAT":
					// only LOWER_DIAG_ROW supported; stored implicitly by parse below.
				default:
					return nil, fmt.Errorf("%w: unrecognised key %q", ErrInvalidInput, key)
				}
				continue
			}
		}

		switch line {
		case "NODE_COORD_SECTION", "DISPLAY_DATA_SECTION":
			section = "NODE_COORD_SECTION"
			inst.Nodes = make([]distance.Node, inst.Dimension)
			continue
		case "EDGE_WEIGHT_SECTION":
			section = "EDGE_WEIGHT_SECTION"
			continue
		case "TOUR_SECTION":
			section = "TOUR_SECTION"
			continue
		}

		switch section {
		case "NODE_COORD_SECTION":
			if err := parseNodeCoordLine(inst, line); err != nil {
				return nil, err
			}
		case "EDGE_WEIGHT_SECTION":
			explicitRows = appendWeights(explicitRows, line)
		case "TOUR_SECTION":
			// a TOUR_SECTION inside an instance file is ignored by Parse;
			// use ParseTour for standalone tour files.
		default:
			return nil, fmt.Errorf("%w: data outside a recognised section", ErrInvalidInput)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if inst.Dimension == 0 {
		return nil, fmt.Errorf("%w: missing DIMENSION", ErrInvalidInput)
	}

	if inst.EdgeWeightType == "EXPLICIT" {
		rows, err := buildExplicitRows(inst.Dimension, explicitRows)
		if err != nil {
			return nil, err
		}
		inst.ExplicitRows = rows
	}

	return inst, nil
}

func splitHeader(line string) (key, val string, ok bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:idx])
	val = strings.TrimSpace(line[idx+1:])
	if key == "" {
		return "", "", false
	}
	for _, r := range key {
		if !(r == '_' || (r >= 'A' && r <= 'Z')) {
			return "", "", false
		}
	}
	return key, val, true
}

func parseNodeCoordLine(inst *Instance, line string) error {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return fmt.Errorf("%w: malformed node coordinate line %q", ErrInvalidInput, line)
	}
	idx, err1 := strconv.Atoi(fields[0])
	x, err2 := strconv.ParseFloat(fields[1], 64)
	y, err3 := strconv.ParseFloat(fields[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return fmt.Errorf("%w: malformed node coordinate line %q", ErrInvalidInput, line)
	}
	if idx < 1 || idx > inst.Dimension {
		return fmt.Errorf("%w: node index %d out of range", ErrInvalidInput, idx)
	}
	inst.Nodes[idx-1] = distance.Node{X: x, Y: y}
	return nil
}

func appendWeights(rows [][]float64, line string) [][]float64 {
	fields := strings.Fields(line)
	vals := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err == nil {
			vals = append(vals, v)
		}
	}
	return append(rows, vals)
}

// buildExplicitRows reshapes LOWER_DIAG_ROW-ordered EDGE_WEIGHT_SECTION
// values (row i holds columns 0..i inclusive; the diagonal zero is dropped)
// into distance.NewExplicitOracle's rows[i][j] layout (length i, j < i),
// preserving the parsed float64 weights verbatim — TSPLIB explicit weights
// are not necessarily integral.
func buildExplicitRows(n int, rows [][]float64) ([][]float64, error) {
	flat := make([]float64, 0, n*(n+1)/2)
	for _, r := range rows {
		flat = append(flat, r...)
	}
	want := n * (n + 1) / 2
	if len(flat) < want {
		return nil, fmt.Errorf("%w: EDGE_WEIGHT_SECTION too short", ErrInvalidInput)
	}
	out := make([][]float64, n)
	pos := 0
	for i := 0; i < n; i++ {
		out[i] = make([]float64, i)
		for j := 0; j <= i; j++ {
			w := flat[pos]
			pos++
			if i == j {
				continue
			}
			out[i][j] = w
		}
	}
	return out, nil
}

// ParseTour reads a standalone TOUR_SECTION file (1-indexed node list
// terminated by -1) into a 0-indexed visiting order.
func ParseTour(r io.Reader) ([]int, error) {
	sc := bufio.NewScanner(r)
	var order []int
	inSection := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "EOF" {
			break
		}
		if !inSection {
			if line == "TOUR_SECTION" {
				inSection = true
			}
			continue
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed TOUR_SECTION line %q", ErrInvalidInput, line)
		}
		if v == -1 {
			break
		}
		order = append(order, v-1)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("%w: empty TOUR_SECTION", ErrInvalidInput)
	}
	return order, nil
}
