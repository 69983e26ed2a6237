// Command robodrive-sim runs the motor, encoder and current drivers against a
// simulated board, either from a script or as an interactive shell.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/abiosoft/ishell"
	"github.com/caarlos0/env/v6"
	"github.com/dikkadev/prettyslog"

	"robodrive/config"
	"robodrive/core"
	"robodrive/host/bench"
)

// EnvConfig is read from the environment; flags override it.
type EnvConfig struct {
	ConfigFile string `env:"ROBODRIVE_CONFIG"`
	Debug      bool   `env:"ROBODRIVE_DEBUG" envDefault:"false"`
	LogLevel   string `env:"ROBODRIVE_LOG_LEVEL" envDefault:"info"`
}

var (
	ENV *EnvConfig

	boardFile = flag.String("config", "", "YAML board file (default: built-in board)")
	script    = flag.String("script", "", "Run commands from file and exit")
	verbose   = flag.Bool("verbose", false, "Enable driver debug output")
)

func main() {
	flag.Parse()

	ENV = new(EnvConfig)
	if err := env.Parse(ENV); err != nil {
		fmt.Fprintf(os.Stderr, "Error: bad environment: %v\n", err)
		os.Exit(1)
	}
	if *boardFile != "" {
		ENV.ConfigFile = *boardFile
	}
	if *verbose {
		ENV.Debug = true
		ENV.LogLevel = "debug"
	}

	logger := slog.New(prettyslog.NewPrettyslogHandler("sim",
		prettyslog.WithLevel(parseLevel(ENV.LogLevel)),
	))

	cfg := config.Default()
	if ENV.ConfigFile != "" {
		var err error
		cfg, err = config.LoadFile(ENV.ConfigFile)
		if err != nil {
			logger.Error("unable to load board", "file", ENV.ConfigFile, "err", err)
			os.Exit(1)
		}
		logger.Info("board loaded", "file", ENV.ConfigFile)
	}

	b := bench.New(cfg, logger)
	defer b.Close()
	core.SetDebugEnabled(ENV.Debug)

	if *script != "" {
		f, err := os.Open(*script)
		if err != nil {
			logger.Error("unable to open script", "err", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := b.Run(f, os.Stdout); err != nil {
			logger.Error("script failed", "err", err)
			os.Exit(1)
		}
		return
	}

	shell := ishell.New()
	shell.Println("robodrive simulated board shell")
	for _, cmd := range bench.Commands() {
		name := cmd.Name
		shell.AddCmd(&ishell.Cmd{
			Name: name,
			Help: cmd.Help,
			Func: func(c *ishell.Context) {
				out, err := b.Exec(name, c.Args...)
				if err != nil {
					c.Println("error:", err)
					return
				}
				if out != "" {
					c.Println(out)
				}
			},
		})
	}
	shell.AddCmd(&ishell.Cmd{
		Name: "board",
		Help: "board: print the active configuration",
		Func: func(c *ishell.Context) {
			c.Printf("motors=%d encoders=%d duty_limit=%d modulus=%d current=%s\n",
				cfg.MotorCount, cfg.EncoderCount, cfg.DutyLimit, cfg.EncoderModulus, cfg.Current.Mode)
			for i, m := range cfg.Motors {
				c.Printf("  M%d sleep=%d off=%d in1=%d fault=%d ch=%s\n",
					i+1, m.Sleep, m.Off, m.Forward, m.Fault, strconv.Itoa(int(m.Channel)))
			}
		},
	})
	shell.Run()
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}
