package main

import (
	"flag"

	"github.com/adverxo/prebid-bidder/config"
	"github.com/adverxo/prebid-bidder/router"
	"github.com/adverxo/prebid-bidder/server"
	"github.com/golang/glog"
	"github.com/spf13/viper"
)

// Rev holds binary revision string
// Set manually at build time using:
//
//	go build -ldflags "-X main.Rev=`git rev-parse --short HEAD`"
var Rev string

// Version holds the release tag of the binary, set like Rev.
var Version string

func main() {
	flag.Parse() // required for glog flags and testing package flags

	cfg, err := loadConfig()
	if err != nil {
		glog.Exitf("Configuration could not be loaded or did not pass validation: %v", err)
	}

	err = serve(Rev, Version, cfg)
	if err != nil {
		glog.Exitf("adverxo sandbox failed: %v", err)
	}
}

const configFileName = "avx"

func loadConfig() (*config.Configuration, error) {
	v := viper.New()
	config.SetupViper(v, configFileName)
	return config.New(v)
}

func serve(revision, version string, cfg *config.Configuration) error {
	r, err := router.New(cfg)
	if err != nil {
		return err
	}

	corsRouter := router.SupportCORS(r)
	return server.Listen(cfg, router.NoCache{Handler: corsRouter}, router.Admin(revision, version), r.MetricsEngine)
}
