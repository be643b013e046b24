package runner

import (
	"fmt"
	"os"

	"github.com/projectdiscovery/goflags"
)

// Version is the release version.
const Version = "v0.1.0"

// Banner is printed at startup unless silent mode is set.
var Banner = fmt.Sprintf(`
                    __
    ____  ____  ____/ /_______________ _____
   / __ \/ __ \/ __/ __/ ___/ ___/ __ '/ __ \
  / /_/ / /_/ / /_/ /_(__  ) /__/ /_/ / / / /
 / .___/\____/\__/\__/____/\___/\__,_/_/ /_/
/_/                                  %s
`, Version)

// ParseOptions parses the command line.
func ParseOptions() (*Options, error) {
	options := &Options{}
	options.Version = Version
	options.Banner = Banner

	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription("portscan - a concurrent TCP connect scanner")

	flagSet.CreateGroup("target", "Target",
		flagSet.StringVarP(&options.Target, "target", "t", "", "target IP address or hostname"),
		flagSet.StringVarP(&options.Ports, "ports", "p", "", "ports to scan: \"80\", \"22,80,443\" or \"1-1000\" (default: common ports)"),
	)

	flagSet.CreateGroup("scan", "Scan",
		flagSet.IntVar(&options.Timeout, "timeout", 1, "connect timeout per port in seconds"),
		flagSet.IntVarP(&options.Workers, "workers", "c", 100, "maximum concurrent connection attempts"),
		flagSet.StringVarP(&options.Proxy, "proxy", "x", "", "SOCKS5 proxy, format: host:port"),
	)

	flagSet.CreateGroup("detection", "Detection",
		flagSet.BoolVar(&options.GrabBanner, "banner", false, "grab banners from open ports"),
		flagSet.BoolVarP(&options.ServiceDetect, "service-detect", "sd", false, "detect services from banners"),
	)

	var versionFlag bool
	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&options.Output, "output", "o", "", "write results to file"),
		flagSet.StringVarP(&options.OutType, "output-type", "ot", "json", "output file format (json, txt)"),
		flagSet.BoolVarP(&options.Verbose, "verbose", "v", false, "show closed and filtered ports too"),
		flagSet.BoolVarP(&options.Silent, "silent", "s", false, "print open ports only"),
		flagSet.BoolVarP(&options.NoColor, "no-color", "nc", false, "disable colored output"),
		flagSet.BoolVar(&options.NoProgress, "no-progress", false, "disable progress reporting"),
		flagSet.BoolVar(&versionFlag, "version", false, "show version and exit"),
	)

	if err := flagSet.Parse(); err != nil {
		return nil, fmt.Errorf("could not parse flags: %w", err)
	}

	if versionFlag {
		fmt.Printf("portscan %s\n", Version)
		os.Exit(0)
	}

	if options.Target == "" {
		return nil, fmt.Errorf("no target specified, use -target")
	}
	if options.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive")
	}
	if options.Workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1")
	}
	if options.OutType != "json" && options.OutType != "txt" {
		return nil, fmt.Errorf("unsupported output type: %s", options.OutType)
	}
	return options, nil
}
