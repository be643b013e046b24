package main

import (
	"github.com/projectdiscovery/gologger"

	"github.com/tongchengbin/portscan/pkg/runner"
)

func main() {
	options, err := runner.ParseOptions()
	if err != nil {
		gologger.Fatal().Msgf("could not parse options: %v", err)
	}

	r, err := runner.New(options)
	if err != nil {
		gologger.Fatal().Msgf("could not create runner: %v", err)
	}

	r.ShowBanner()
	if err := r.Run(); err != nil {
		gologger.Fatal().Msgf("scan failed: %v", err)
	}
}
