// Command stealthbox is an offline driver for stealth payments. It derives
// the recipient key from a mnemonic, builds R4..R7 for a payment, recognizes
// stealth boxes and prints the secrets a wallet needs to sign their spend.
// It performs no network I/O: boxes are read as JSON in the node's format.
//
// Usage:
//
//	stealthbox [global flags] <command> [flags]
//
// Commands:
//
//	pubkey                  print the recipient public key
//	send    -to <hex>       print registers for a payment to a public key
//	scan    -boxes <file>   list the boxes spendable by the configured key
//	witness -box <file>     print sign secrets for one spendable box (-prove: local tuple proof)
//
// Global flags:
//
//	-config     YAML configuration file
//	-verbosity  log level: trace, debug, info, warn, error, crit
//
// The mnemonic is read from the configuration or STEALTH_MNEMONIC.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"

	"github.com/smallyu/go-dht-stealth/internal/config"
	"github.com/smallyu/go-dht-stealth/internal/keys"
	"github.com/smallyu/go-dht-stealth/internal/logging"
	"github.com/smallyu/go-dht-stealth/pkg/stealth"
)

// Build-time version info, overridable with ldflags.
var version = "v0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type env struct {
	cfg    *config.Config
	curve  stealth.Curve
	stdout io.Writer
	logger log.Logger
}

type command func(e *env, args []string) error

var commands = map[string]command{
	"pubkey":  cmdPubkey,
	"send":    cmdSend,
	"scan":    cmdScan,
	"witness": cmdWitness,
}

// errUsage marks errors that should exit with status 2.
var errUsage = errors.New("usage")

// run is the actual entry point, returning an exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("stealthbox", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	verbosity := fs.String("verbosity", "", "log level (overrides config)")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		fmt.Fprintf(stdout, "stealthbox %s\n", version)
		return 0
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "Error: missing command (pubkey, send, scan, witness)")
		return 2
	}
	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n", fs.Arg(0))
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if *verbosity != "" {
		cfg.LogLevel = *verbosity
	}
	if err := logging.Setup(stderr, cfg.LogLevel); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	curve, err := stealth.CurveByName(cfg.Curve)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	e := &env{cfg: cfg, curve: curve, stdout: stdout, logger: logging.Module("stealthbox")}
	e.logger.Debug("Loaded configuration", "config", cfg.String())
	if err := cmd(e, fs.Args()[1:]); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, errUsage) {
			return 2
		}
		return 1
	}
	return 0
}

// keyPair derives the recipient key from the configured mnemonic.
func (e *env) keyPair() (*stealth.KeyPair, error) {
	if e.cfg.Mnemonic == "" {
		return nil, fmt.Errorf("%w: no mnemonic configured (set STEALTH_MNEMONIC)", errUsage)
	}
	path, err := keys.ParsePath(e.cfg.DerivationPath)
	if err != nil {
		return nil, err
	}
	return stealth.KeyPairFromMnemonic(e.curve, e.cfg.Mnemonic, e.cfg.Passphrase, path)
}
