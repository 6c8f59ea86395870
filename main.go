package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/peterbourgon/ff"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/polar-server/api"
	"github.com/a-bouts/polar-server/config"
	"github.com/a-bouts/polar-server/polar"
)

func main() {

	fs := flag.NewFlagSet("polar-server", flag.ExitOnError)
	var (
		configFile = fs.String("config-file", "config.yaml", "config file")
		port       = fs.Int("port", 8080, "http port")
		debug      = fs.Bool("debug", false, "debug logs")
	)
	ff.Parse(fs, os.Args[1:], ff.WithEnvVarNoPrefix())

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	conf, err := config.Load(*configFile)
	if err != nil {
		log.WithError(err).Fatalf("Error loading config file '%s'", *configFile)
	}

	store, err := polar.New(conf.PolarsDir, conf.ArchivedDir)
	if err != nil {
		log.WithError(err).Fatal("Error initializing polar store")
	}

	log.Infof("Start server on port %d", *port)

	router := api.InitServer(store)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", *port), handlers.LoggingHandler(os.Stdout, router)))
}
