package runner

// Options holds all command-line options.
type Options struct {
	// Version and banner
	Version string
	Banner  string

	// Target
	Target string
	Ports  string

	// Scan
	Timeout int
	Workers int
	Proxy   string

	// Detection
	GrabBanner    bool
	ServiceDetect bool

	// Output
	Output     string
	OutType    string
	Verbose    bool
	Silent     bool
	NoColor    bool
	NoProgress bool
}
