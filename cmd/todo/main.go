package main

import (
	"fmt"
	"os"

	"github.com/benjamonnguyen/todogo"
	"github.com/benjamonnguyen/todogo/charmlog"
	"github.com/benjamonnguyen/todogo/jsonfile"
)

func main() {
	conf, err := todogo.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	logger, closeLog := charmlog.NewFileLogger(conf.LogPath, conf.LogLevel)
	logger.Info("loaded config", "config", conf)

	store := todogo.NewTaskStore(jsonfile.NewCodec(logger), logger)

	// os.Exit skips defers, so close the log explicitly on both paths
	err = Execute(store, logger, conf)
	_ = closeLog()
	if err != nil {
		os.Exit(1)
	}
}
