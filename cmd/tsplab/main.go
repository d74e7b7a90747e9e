// Command tsplab is the laboratory's CLI front-end: it reads a TSPLIB
// instance, runs one named algorithm (or a battery of random instances),
// and writes the resulting tour, objective, and trajectory.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dariolupo/tsplab/distance"
	"github.com/dariolupo/tsplab/internal/solver"
	"github.com/dariolupo/tsplab/internal/solverlog"
	"github.com/dariolupo/tsplab/report"
	"github.com/dariolupo/tsplab/tsplib"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Options for the supplemented --config FILE override;
// CLI flags that were explicitly set always win over the file.
type fileConfig struct {
	ModelName    string  `yaml:"model_name"`
	TimeLimit    float64 `yaml:"time_limit"`
	CplexSeed    int64   `yaml:"cplex_seed"`
	Threads      int     `yaml:"threads"`
	Memory       int     `yaml:"memory"`
	IntegerCosts bool    `yaml:"integer_costs"`
	Verbose      bool    `yaml:"verbose"`
	BatteryTest  int     `yaml:"battery_test"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tsplab", flag.ContinueOnError)
	fs.SetOutput(stderr)

	modelName := fs.String("model_name", solver.ModelNearestNeighbour, "algorithm to run")
	timeLimit := fs.Float64("time_limit", 10, "time limit in seconds")
	cplexSeed := fs.Int64("cplex_seed", 1, "RNG seed")
	threads := fs.Int("threads", 1, "worker threads for battery tests")
	memory := fs.Int("memory", 0, "memory budget in MB (informational)")
	integerCosts := fs.Bool("integer_costs", false, "force rounded-integer Euclidean costs")
	verbose := fs.Bool("verbose", false, "enable debug logging")
	batteryTest := fs.Int("battery_test", 0, "run N randomly generated instances instead of reading a file")
	batterySize := fs.Int("battery_size", 50, "node count per battery-test instance")
	configPath := fs.String("config", "", "optional YAML file overriding the defaults of the above; explicitly set flags win")
	instancePath := fs.String("instance", "", "path to a TSPLIB instance file")
	outPath := fs.String("out", "", "optional path to write a Graphviz rendering of the result")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	opts := solver.Options{
		ModelName:    *modelName,
		TimeLimit:    time.Duration(*timeLimit * float64(time.Second)),
		Seed:         *cplexSeed,
		Threads:      *threads,
		MemoryMB:     *memory,
		IntegerCosts: *integerCosts,
		Verbose:      *verbose,
		BatteryTest:  *batteryTest,
	}

	if *configPath != "" {
		if err := applyConfigFile(*configPath, &opts); err != nil {
			fmt.Fprintf(stderr, "tsplab: %v\n", err)
			return 2
		}
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "model_name":
				opts.ModelName = *modelName
			case "time_limit":
				opts.TimeLimit = time.Duration(*timeLimit * float64(time.Second))
			case "cplex_seed":
				opts.Seed = *cplexSeed
			case "threads":
				opts.Threads = *threads
			case "memory":
				opts.MemoryMB = *memory
			case "integer_costs":
				opts.IntegerCosts = *integerCosts
			case "verbose":
				opts.Verbose = *verbose
			case "battery_test":
				opts.BatteryTest = *batteryTest
			}
		})
	}

	log := solverlog.New(opts.Verbose)

	if opts.BatteryTest > 0 {
		results, err := solver.RunBattery(opts, opts.BatteryTest, *batterySize, log)
		if err != nil {
			fmt.Fprintf(stderr, "tsplab: battery test failed: %v\n", err)
			return 1
		}
		rows := make([]report.BatteryRow, len(results))
		for i, r := range results {
			if r.Err != nil {
				fmt.Fprintf(stderr, "tsplab: instance %d failed: %v\n", r.Index, r.Err)
				return 1
			}
			rows[i] = report.BatteryRow{
				RunID:     fmt.Sprintf("battery-%d", r.Index),
				N:         r.N,
				Objective: r.Objective,
				ElapsedMS: r.ElapsedMS,
			}
		}
		if err := report.WriteBatteryCSV(stdout, rows); err != nil {
			fmt.Fprintf(stderr, "tsplab: %v\n", err)
			return 1
		}
		return 0
	}

	if *instancePath == "" {
		fmt.Fprintln(stderr, "tsplab: --instance FILE or --battery_test N is required")
		return 2
	}

	f, err := os.Open(*instancePath)
	if err != nil {
		fmt.Fprintf(stderr, "tsplab: %v\n", err)
		return 2
	}
	defer f.Close()

	inst, err := tsplib.Parse(f)
	if err != nil {
		fmt.Fprintf(stderr, "tsplab: %v\n", err)
		return 2
	}

	metric, err := inst.Metric(opts.IntegerCosts)
	if err != nil {
		fmt.Fprintf(stderr, "tsplab: %v\n", err)
		return 2
	}

	var res *solver.Result
	if metric == distance.Explicit {
		oracle, oerr := distance.NewExplicitOracle(inst.ExplicitRows, inst.Dimension)
		if oerr != nil {
			fmt.Fprintf(stderr, "tsplab: %v\n", oerr)
			return 2
		}
		res, err = solver.RunExplicit(opts, oracle, log)
	} else {
		res, err = solver.Run(opts, inst.Nodes, metric, log)
	}
	if err != nil {
		fmt.Fprintf(stderr, "tsplab: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "model=%s objective=%.6f elapsed_ms=%.3f\n", opts.ModelName, res.Objective, res.ElapsedMS)
	if err := report.WriteTrajectoryCSV(stdout, inst.Name, res.Tracker); err != nil {
		fmt.Fprintf(stderr, "tsplab: %v\n", err)
		return 1
	}

	if *outPath != "" {
		gf, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(stderr, "tsplab: %v\n", err)
			return 1
		}
		defer gf.Close()
		if err := report.WriteGraphviz(gf, res.Tour, inst.Nodes); err != nil {
			fmt.Fprintf(stderr, "tsplab: %v\n", err)
			return 1
		}
	}

	return 0
}

func applyConfigFile(path string, opts *solver.Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	if cfg.ModelName != "" {
		opts.ModelName = cfg.ModelName
	}
	if cfg.TimeLimit != 0 {
		opts.TimeLimit = time.Duration(cfg.TimeLimit * float64(time.Second))
	}
	if cfg.CplexSeed != 0 {
		opts.Seed = cfg.CplexSeed
	}
	if cfg.Threads != 0 {
		opts.Threads = cfg.Threads
	}
	if cfg.Memory != 0 {
		opts.MemoryMB = cfg.Memory
	}
	opts.IntegerCosts = opts.IntegerCosts || cfg.IntegerCosts
	opts.Verbose = opts.Verbose || cfg.Verbose
	if cfg.BatteryTest != 0 {
		opts.BatteryTest = cfg.BatteryTest
	}
	return nil
}
