package main

import (
	"context"
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/emellab/campus/core"
	"github.com/emellab/campus/core/content"
	logsvc "github.com/emellab/campus/services/logger"
	"github.com/emellab/campus/storage/database"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	store, err := database.Open(conf, logger)
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), conf.Database.Timeout)
	defer cancel()
	if err = database.WaitReady(ctx, store, 5); err != nil {
		logger.Fatal(err.Error(), err)
	}

	// set up services
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	content.InitValidators(validate, translator)

	// start CLI
	cli := commandLine{
		conf:     conf,
		store:    store,
		services: content.NewServices(store, validate, translator, nil),
		out:      os.Stdout,
	}
	err = cli.run(os.Args)
	_ = store.Close(context.Background())
	if err != nil {
		if err != errHelp {
			log.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
