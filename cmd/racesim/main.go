package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/tutumagi/racenav"
	"github.com/tutumagi/racenav/race"
)

func main() {
	var (
		file     string
		trackDoc string
		bots     int
		duration time.Duration
		seed     int64
		level    string
	)

	flag.StringVar(&file, "config", "", "config file (yaml, json or toml)")
	flag.StringVar(&trackDoc, "track", "", "track file, the builtin loop when empty")
	flag.IntVar(&bots, "bots", 0, "number of bots, 0 keeps the configured value")
	flag.DurationVar(&duration, "duration", 0, "simulated race time, 0 keeps the configured value")
	flag.Int64Var(&seed, "seed", -1, "random seed, -1 keeps the configured value")
	flag.StringVar(&level, "log-level", "", "debug, info, warn or error")
	flag.Parse()

	conf, err := configApp(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if trackDoc != "" {
		conf.Set("racenav.sim.track", trackDoc)
	}
	if bots > 0 {
		conf.Set("racenav.sim.bots", bots)
	}
	if duration > 0 {
		conf.Set("racenav.sim.duration", duration)
	}
	if seed >= 0 {
		conf.Set("racenav.sim.seed", seed)
	}
	if level != "" {
		conf.Set("logger.level", level)
	}

	racenav.Configure("racesim", conf)
	standings, err := racenav.Start()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(race.Format(standings))
}

func configApp(file string) (*viper.Viper, error) {
	conf := viper.New()
	if file == "" {
		return conf, nil
	}
	conf.SetConfigFile(file)
	if err := conf.ReadInConfig(); err != nil {
		return nil, err
	}
	return conf, nil
}
