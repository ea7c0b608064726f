// Package main is a single-screen Drift app that asks for the coarse
// location permission and shows the device's last known position.
package main

import (
	_ "embed"
	"log"
	"os"

	"github.com/go-drift/drift/pkg/drift"
	"github.com/go-drift/drift/pkg/errors"

	"github.com/nagaoyuriko/fusedlocation/internal/config"
)

//go:embed drift.yaml
var driftYAML []byte

func main() {
	cfg := loadConfig(driftYAML, config.ModulePath())
	errors.SetHandler(&errors.LogHandler{Verbose: cfg.Debug})
	logger := log.New(os.Stderr, cfg.LogTag+": ", log.LstdFlags)

	drift.NewApp(App(cfg, logger)).Run()
}

// loadConfig resolves the embedded drift.yaml. A broken file is reported and
// the built-in defaults are used instead.
func loadConfig(data []byte, modulePath string) *config.Resolved {
	cfg, err := config.Resolve(data, modulePath)
	if err == nil {
		return cfg
	}
	errors.Report(&errors.DriftError{
		Op:   "config.resolve",
		Kind: errors.KindInit,
		Err:  err,
	})
	cfg, err = config.Resolve(nil, config.DefaultModulePath)
	if err != nil {
		// The default module path is a constant, so this cannot fail.
		panic(err)
	}
	return cfg
}
