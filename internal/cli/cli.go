// Package cli is the cpusched command line.
//
//	cpusched
//	├── run       simulate one algorithm over a process file
//	├── compare   rank all algorithms by average waiting time
//	├── generate  draw a random process set
//	└── serve     HTTP API with a gRPC health endpoint
//
// Every command reads configs/default.yaml (or --config) and lets its flags
// override the file.
package cli

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/Barritosaurus/cpusched/internal/api"
	"github.com/Barritosaurus/cpusched/internal/report"
	"github.com/Barritosaurus/cpusched/internal/scheduler"
	"github.com/Barritosaurus/cpusched/internal/stats"
	"github.com/Barritosaurus/cpusched/internal/telemetry"
	"github.com/Barritosaurus/cpusched/internal/workload"
	"github.com/Barritosaurus/cpusched/pkg/types"
)

var (
	configFile string
	noColor    bool
)

func BuildCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cpusched",
		Short: "cpusched: a CPU scheduling simulator",
		Long: `cpusched simulates FCFS, round-robin, non-preemptive priority and
preemptive shortest-job-first scheduling over a set of processes, prints a
Gantt chart and timing table per run, and ranks the algorithms by average
waiting time.`,
		Version:      "1.0.0",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "configs/default.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(buildRunCommand())
	rootCmd.AddCommand(buildCompareCommand())
	rootCmd.AddCommand(buildGenerateCommand())
	rootCmd.AddCommand(buildServeCommand())

	return rootCmd
}

// setup loads the configuration and applies the output settings.
func setup() (*Config, error) {
	cfg, err := resolveConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	report.SetColor(cfg.Output.Color && !noColor)
	return cfg, nil
}

func quantumFlag(cmd *cobra.Command, cfg *Config, quantum int64) int64 {
	if cmd.Flags().Changed("quantum") {
		return quantum
	}
	return cfg.Scheduler.Quantum
}

func buildRunCommand() *cobra.Command {
	var (
		file    string
		algName string
		quantum int64
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one scheduling algorithm over a process file",
		Long:  "Simulate one algorithm (fcfs, rr, priority, sjf) and print its Gantt chart and timing table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			return runSchedule(cmd.OutOrStdout(), file, algName, quantumFlag(cmd, cfg, quantum), asJSON)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "process file (.csv, .yaml or text)")
	cmd.Flags().StringVarP(&algName, "algorithm", "a", string(types.FirstComeFirstServe), "algorithm: fcfs, rr, priority, sjf")
	cmd.Flags().Int64VarP(&quantum, "quantum", "q", scheduler.DefaultQuantum, "round-robin time quantum")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runSchedule(w io.Writer, file, algName string, quantum int64, asJSON bool) error {
	alg, err := types.ParseAlgorithm(algName)
	if err != nil {
		return err
	}
	processes, err := workload.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to load processes: %w", err)
	}

	res, err := scheduler.Run(alg, processes, scheduler.Options{Quantum: quantum})
	if err != nil {
		return err
	}
	sum, err := stats.Summarize(processes, res)
	if err != nil {
		return err
	}

	if asJSON {
		return report.JSON(w, api.ScheduleResponse{Result: res, Summary: sum})
	}
	report.Schedule(w, processes, res, sum)
	return nil
}

func buildCompareCommand() *cobra.Command {
	var (
		file    string
		quantum int64
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare all scheduling algorithms over a process file",
		Long:  "Run every algorithm, rank them by average waiting time and report the best",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			return compareAll(cmd.OutOrStdout(), file, quantumFlag(cmd, cfg, quantum), asJSON)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "process file (.csv, .yaml or text)")
	cmd.Flags().Int64VarP(&quantum, "quantum", "q", scheduler.DefaultQuantum, "round-robin time quantum")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the comparison as JSON")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func compareAll(w io.Writer, file string, quantum int64, asJSON bool) error {
	processes, err := workload.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to load processes: %w", err)
	}

	cmp, err := scheduler.Compare(processes, quantum)
	if err != nil {
		return err
	}

	if asJSON {
		return report.JSON(w, cmp)
	}
	for _, r := range cmp.Rankings {
		report.Schedule(w, processes, r.Result, r.Summary)
	}
	report.Comparison(w, cmp)
	return nil
}

func buildGenerateCommand() *cobra.Command {
	var (
		params     workload.Params
		paramsFile string
		seed       int64
		output     string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random process set",
		Long: `Draw arrival and burst times from normal distributions and priorities from a
Poisson distribution. Parameters come from the config file, a four-line
--params file, or flags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}

			p := cfg.Generator.Params
			if paramsFile != "" {
				if p, err = readParams(paramsFile); err != nil {
					return err
				}
			}
			flags := cmd.Flags()
			if flags.Changed("count") {
				p.Count = params.Count
			}
			if flags.Changed("arrival-mean") {
				p.ArrivalMean = params.ArrivalMean
			}
			if flags.Changed("arrival-std") {
				p.ArrivalStd = params.ArrivalStd
			}
			if flags.Changed("burst-mean") {
				p.BurstMean = params.BurstMean
			}
			if flags.Changed("burst-std") {
				p.BurstStd = params.BurstStd
			}
			if flags.Changed("priority-lambda") {
				p.PriorityLambda = params.PriorityLambda
			}

			s := cfg.Generator.Seed
			if flags.Changed("seed") {
				s = seed
			}
			if s == 0 {
				s = time.Now().UnixNano()
			}

			return generate(cmd.OutOrStdout(), p, s, output)
		},
	}

	cmd.Flags().IntVarP(&params.Count, "count", "n", 0, "number of processes")
	cmd.Flags().Float64Var(&params.ArrivalMean, "arrival-mean", 0, "mean arrival time")
	cmd.Flags().Float64Var(&params.ArrivalStd, "arrival-std", 0, "arrival time standard deviation")
	cmd.Flags().Float64Var(&params.BurstMean, "burst-mean", 0, "mean burst time")
	cmd.Flags().Float64Var(&params.BurstStd, "burst-std", 0, "burst time standard deviation")
	cmd.Flags().Float64Var(&params.PriorityLambda, "priority-lambda", 0, "Poisson mean of the priorities")
	cmd.Flags().StringVar(&paramsFile, "params", "", "four-line parameter file")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")

	return cmd
}

func readParams(path string) (workload.Params, error) {
	f, closeFn, err := workload.Open(path)
	if err != nil {
		return workload.Params{}, err
	}
	defer closeFn()

	p, err := workload.LoadParams(f)
	if err != nil {
		return workload.Params{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func generate(w io.Writer, p workload.Params, seed int64, output string) error {
	processes, err := workload.Generate(p, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}

	if output == "" {
		return workload.Save(w, processes)
	}
	if err := workload.WriteFile(output, processes); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	log.Printf("Wrote %d processes to %s (seed %d)\n", len(processes), output, seed)
	return nil
}

func buildServeCommand() *cobra.Command {
	var (
		port     int
		grpcPort int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the scheduling HTTP API",
		Long:  "Serve the scheduling API over HTTP, metrics on /metrics and gRPC health checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("grpc-port") {
				cfg.Server.GRPCPort = grpcPort
			}
			return serve(cmd, cfg)
		},
	}

	cmd.Flags().IntVar(&port, "port", 9095, "HTTP port")
	cmd.Flags().IntVar(&grpcPort, "grpc-port", 50051, "gRPC health port")

	return cmd
}

func serve(cmd *cobra.Command, cfg *Config) error {
	log.Printf("Starting cpusched with config: %s\n", configFile)

	reg := prometheus.NewRegistry()
	gatherer := prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		gatherer = reg
	}
	handler := api.NewSchedulerHandlerImpl(telemetry.NewCollector(reg), cfg.Scheduler.Quantum)
	srv := api.NewServer(api.NewApp(handler, gatherer))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := srv.ListenAndServe(ctx,
		fmt.Sprintf(":%d", cfg.Server.Port),
		fmt.Sprintf(":%d", cfg.Server.GRPCPort))
	if err != nil {
		return err
	}
	log.Println("Server stopped. Goodbye!")
	return nil
}
