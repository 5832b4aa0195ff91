package main

import (
	"fmt"
	"os"

	"github.com/Yunpeng-J/zipf/pkg/client"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	loglevel = "ZIPF_LOGLEVEL"
)

var (
	app = kingpin.New("zipfgen", "A skewed key-access load generator")
	con = app.Flag("config", "Path to config file").Required().Short('c').String()

	seed    = app.Flag("seed", "[Optional] seed of keyspace and client sources, default 0 as current time").Default("0").Uint64()
	clients = app.Flag("clients", "[Optional] number of clients, overrides the config").Default("0").Int()
	sampler = app.Flag("sampler", "[Optional] sampler type [table, rejection, uniform], overrides the config").String()

	run      = app.Command("run", "Issue accesses and report the observed distribution").Default()
	interval = run.Flag("time", "time of the run in seconds, overrides the config").Default("0").Short('t').Int()
	capped   = run.Flag("capped", "stop after --number accesses").Bool()
	number   = app.Flag("number", "number of accesses, overrides the config").Default("0").Short('n').Int()

	trace = app.Command("trace", "Write a keyspace and per client trace files")

	sample = app.Command("sample", "Print samples of a single stream")
	count  = sample.Arg("count", "number of samples").Default("10").Int()

	version = app.Command("version", "Show version information")
)

func loadConfig() client.Config {
	config, err := client.LoadConfig(*con)
	if err != nil {
		log.Fatalf("load config error: %v\n", err)
	}
	if *seed != 0 {
		config.Workload.Seed = *seed
	}
	if *clients != 0 {
		config.Clients = *clients
	}
	if *sampler != "" {
		config.Workload.Sampler = *sampler
	}
	if *interval != 0 {
		config.Interval = *interval
	}
	if *number != 0 {
		config.Number = *number
	}
	return config
}

func main() {
	var err error

	logger := log.New()
	logger.SetLevel(log.WarnLevel)
	if customerLevel, customerSet := os.LookupEnv(loglevel); customerSet {
		if lvl, err := log.ParseLevel(customerLevel); err == nil {
			logger.SetLevel(lvl)
		}
	}

	fullCmd := kingpin.MustParse(app.Parse(os.Args[1:]))
	switch fullCmd {
	case version.FullCommand():
		fmt.Print(client.GetVersionInfo())
	case run.FullCommand():
		var report client.Report
		report, err = client.RunLoadCmd(loadConfig(), *capped, logger)
		if err == nil {
			report.Log(logger)
			printReport(report)
		}
	case trace.FullCommand():
		err = client.RunTraceCmd(loadConfig(), logger)
	case sample.FullCommand():
		if *count < 0 {
			os.Stderr.WriteString("zipfgen: error: count must not be negative\n")
			os.Exit(1)
		}
		err = client.RunSingleCmd(loadConfig(), *count, os.Stdout, logger)
	default:
		err = errors.Errorf("invalid command: %s", fullCmd)
	}

	if err != nil {
		logger.Error(err)
		os.Exit(1)
	}
	os.Exit(0)
}

func printReport(r client.Report) {
	fmt.Printf("accesses: %d, distinct: %d, duration: %+v, tps: %f\n", r.Total, r.Distinct, r.Duration, r.Throughput())
	if r.Fit != nil {
		fmt.Printf("chi2: %f, freedom: %d, p-value: %g\n", r.Fit.Statistic, r.Fit.Freedom, r.Fit.PValue)
	}
	for i, rank := range r.Top {
		fmt.Printf("%3d %8d %-20s %10d %6.2f%%\n", i, rank.Index, rank.Key, rank.Count, rank.Share*100)
	}
}
