// Command softdqn resolves, validates and prints soft-update DQN agent
// configurations.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/samuelfneumann/softdqn/agent"
	"github.com/samuelfneumann/softdqn/agent/nonlinear/discrete/softdqn"
	"github.com/samuelfneumann/softdqn/internal/loader"
	"github.com/samuelfneumann/softdqn/internal/logging"
)

// overrideFlags records hyperparameter flags and whether the user set
// them
type overrideFlags struct {
	bufferSize, batchSize, updateEvery          int
	gamma, tau, learningRate                    float64
	seed                                        int64
	bufferSizeSet, batchSizeSet, updateEverySet bool
	gammaSet, tauSet, learningRateSet, seedSet  bool
}

func registerOverrides(cmd *kingpin.CmdClause) *overrideFlags {
	f := &overrideFlags{}
	cmd.Flag("buffer-size", "Replay buffer capacity").
		IsSetByUser(&f.bufferSizeSet).IntVar(&f.bufferSize)
	cmd.Flag("batch-size", "Minibatch size").
		IsSetByUser(&f.batchSizeSet).IntVar(&f.batchSize)
	cmd.Flag("gamma", "Discount factor").
		IsSetByUser(&f.gammaSet).Float64Var(&f.gamma)
	cmd.Flag("tau", "Soft update interpolation factor").
		IsSetByUser(&f.tauSet).Float64Var(&f.tau)
	cmd.Flag("learning-rate", "Optimizer step size").
		IsSetByUser(&f.learningRateSet).Float64Var(&f.learningRate)
	cmd.Flag("update-every", "Steps between network updates").
		IsSetByUser(&f.updateEverySet).IntVar(&f.updateEvery)
	cmd.Flag("seed", "Random seed").
		IsSetByUser(&f.seedSet).Int64Var(&f.seed)
	return f
}

func (f *overrideFlags) overrides(configFile string) *loader.Overrides {
	o := &loader.Overrides{ConfigFile: configFile}
	if f.bufferSizeSet {
		o.BufferSize = &f.bufferSize
	}
	if f.batchSizeSet {
		o.BatchSize = &f.batchSize
	}
	if f.gammaSet {
		o.Gamma = &f.gamma
	}
	if f.tauSet {
		o.Tau = &f.tau
	}
	if f.learningRateSet {
		o.LearningRate = &f.learningRate
	}
	if f.updateEverySet {
		o.UpdateEvery = &f.updateEvery
	}
	if f.seedSet {
		o.Seed = &f.seed
	}
	return o
}

func main() {
	app := kingpin.New("softdqn", "Soft-update DQN agent configuration tool")
	logLevel := app.Flag("log-level", "Log level").Default("info").
		Enum("debug", "info", "warn", "error")

	defaultsCmd := app.Command("defaults", "Print the default configuration")
	defaultsFormat := defaultsCmd.Flag("format", "Output format").
		Default("yaml").Enum("json", "yaml")

	showCmd := app.Command("show", "Resolve, validate and print a "+
		"configuration")
	showConfig := showCmd.Flag("config", "Path to a JSON or YAML "+
		"configuration file").String()
	showFormat := showCmd.Flag("format", "Output format").Default("yaml").
		Enum("json", "yaml")
	flags := registerOverrides(showCmd)

	sweepCmd := app.Command("sweep", "Print every configuration of a "+
		"typed ConfigList JSON file")
	sweepFile := sweepCmd.Arg("file", "Typed ConfigList JSON file").
		Required().ExistingFile()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	logger, err := logging.New(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	switch command {
	case defaultsCmd.FullCommand():
		err = printConfig(os.Stdout, softdqn.NewConfig(), *defaultsFormat)

	case showCmd.FullCommand():
		var c softdqn.Config
		c, err = loader.Load(flags.overrides(*showConfig))
		if err == nil {
			logger.Info("resolved configuration", logging.ConfigFields(c)...)
			err = printConfig(os.Stdout, c, *showFormat)
		}

	case sweepCmd.FullCommand():
		var n int
		n, err = sweep(os.Stdout, *sweepFile)
		if err == nil {
			logger.Info("expanded sweep", zap.String("file", *sweepFile),
				zap.Int("configs", n))
		}
	}

	if err != nil {
		logger.Fatal("command failed", zap.String("command", command),
			zap.Error(err))
	}
}

// printConfig writes c to w in the given format
func printConfig(w io.Writer, c softdqn.Config, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(c)

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()

	default:
		return fmt.Errorf("printConfig: unknown format %q", format)
	}
}

// sweep reads a typed ConfigList from the JSON file at path and writes
// each of its Configs to w, one per line. The number of Configs
// written is returned.
func sweep(w io.Writer, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("sweep: %w", err)
	}

	var list agent.TypedConfigList
	if err := json.Unmarshal(data, &list); err != nil {
		return 0, fmt.Errorf("sweep: %v: %w", path, err)
	}

	configs, err := agent.Configs(list.ConfigList)
	if err != nil {
		return 0, fmt.Errorf("sweep: %w", err)
	}

	for i, c := range configs {
		if _, err := fmt.Fprintf(w, "%d\t%v\n", i, c); err != nil {
			return i, err
		}
	}
	return len(configs), nil
}
