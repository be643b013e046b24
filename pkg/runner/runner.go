package runner

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"

	"github.com/tongchengbin/portscan/pkg/banner"
	"github.com/tongchengbin/portscan/pkg/netutil"
	"github.com/tongchengbin/portscan/pkg/output"
	"github.com/tongchengbin/portscan/pkg/ports"
	"github.com/tongchengbin/portscan/pkg/scanner"
	"github.com/tongchengbin/portscan/pkg/utils"
)

// Runner wires the CLI to the scanning core: it resolves the target,
// expands the port spec, runs the scan and renders results.
type Runner struct {
	options *Options
	scanner *scanner.Scanner
	target  *scanner.Target
	ports   []int
	dialer  scanner.Dialer
}

// New validates options and prepares a runner. All configuration failures
// surface here, before any probing starts.
func New(options *Options) (*Runner, error) {
	if options.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if options.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelDebug)
	} else {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelInfo)
	}

	portList, err := ports.Parse(options.Ports)
	if err != nil {
		return nil, err
	}

	ip, err := netutil.Resolve(options.Target)
	if err != nil {
		return nil, err
	}

	var dialer scanner.Dialer
	if options.Proxy != "" {
		dialer, err = netutil.SOCKS5Dialer(options.Proxy)
		if err != nil {
			return nil, err
		}
	}

	scanOptions := []scanner.Option{
		scanner.WithTimeout(time.Duration(options.Timeout) * time.Second),
		scanner.WithWorkers(options.Workers),
		scanner.WithVerbose(options.Verbose),
	}
	if dialer != nil {
		scanOptions = append(scanOptions, scanner.WithDialer(dialer))
	}
	s, err := scanner.New(scanOptions...)
	if err != nil {
		return nil, err
	}

	return &Runner{
		options: options,
		scanner: s,
		target:  scanner.NewTarget(options.Target, ip),
		ports:   portList,
		dialer:  dialer,
	}, nil
}

// ShowBanner prints the program banner.
func (r *Runner) ShowBanner() {
	if !r.options.Silent {
		fmt.Print(r.options.Banner)
	}
}

// Run executes the scan and writes results to the configured outputs.
func (r *Runner) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt)
	defer signal.Stop(signalChan)
	go func() {
		<-signalChan
		gologger.Info().Msg("interrupt received, stopping dispatch...")
		cancel()
	}()

	var progress *utils.Progress
	if !r.options.Silent && !r.options.NoProgress {
		progress = utils.NewProgress("scan progress", 5*time.Second, r.scanner.Snapshot)
		go progress.Start()
		defer progress.Stop()
	}

	gologger.Info().Msgf("scanning %d ports on %s (workers: %d, timeout: %ds)",
		len(r.ports), r.target, r.options.Workers, r.options.Timeout)

	result, err := r.scanner.ScanWithContext(ctx, r.target, r.ports)
	if err != nil {
		return err
	}
	if progress != nil {
		progress.Stop()
	}

	if r.options.GrabBanner || r.options.ServiceDetect {
		r.enrich(result)
	}

	console := output.NewConsoleOuter(r.options.Verbose, r.options.Silent, r.options.NoColor)
	if err := console.Output(result); err != nil {
		gologger.Error().Msgf("console output failed: %v", err)
	}

	if r.options.Output != "" {
		var fileOuter output.Outer
		switch r.options.OutType {
		case "txt":
			fileOuter = output.NewTextOuter(r.options.Output)
		default:
			fileOuter = output.NewJSONOuter(r.options.Output)
		}
		if err := fileOuter.Output(result); err != nil {
			gologger.Error().Msgf("file output failed: %v", err)
		} else {
			gologger.Info().Msgf("results written to %s", r.options.Output)
		}
	}
	return nil
}

// enrich grabs banners from open ports and runs service detection. Failures
// are per-port and non-fatal; the scan result already stands on its own.
func (r *Runner) enrich(result *scanner.Result) {
	grabber := banner.NewGrabber(r.dialer, time.Duration(r.options.Timeout)*time.Second)
	for _, outcome := range result.Outcomes {
		if outcome.Status != scanner.StatusOpen {
			continue
		}
		text, err := grabber.Grab(result.Target, outcome.Port)
		if err != nil {
			gologger.Debug().Msgf("banner grab failed for port %d: %v", outcome.Port, err)
		}
		if r.options.GrabBanner {
			outcome.Banner = text
		}
		if r.options.ServiceDetect {
			outcome.Service = banner.DetectService(outcome.Port, text)
		}
	}
}
