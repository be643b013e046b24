package ports

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidSpec is returned when a port specification cannot be resolved.
// All parse failures wrap this error so callers can test with errors.Is.
var ErrInvalidSpec = errors.New("invalid port spec")

// CommonPorts is the default scan set used when no spec is supplied.
var CommonPorts = []int{
	20, 21, 22, 23, 25, 53, 80, 110, 111, 135, 139, 143, 443, 445, 993,
	995, 1723, 3306, 3389, 5900, 8080, 8443,
}

// Parse resolves a port specification into a deduplicated, ascending list.
// Supported forms:
//   - single: "80"
//   - list: "22,80,443"
//   - range: "1-1024"
//   - mixed: "22,80,8000-8100"
//
// An empty spec resolves to CommonPorts.
func Parse(spec string) ([]int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		out := make([]int, len(CommonPorts))
		copy(out, CommonPorts)
		return out, nil
	}

	seen := make(map[int]struct{})
	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, fmt.Errorf("%w: empty token in %q", ErrInvalidSpec, spec)
		}
		if strings.Contains(token, "-") {
			low, high, err := parseRange(token)
			if err != nil {
				return nil, err
			}
			for p := low; p <= high; p++ {
				seen[p] = struct{}{}
			}
			continue
		}
		p, err := parsePort(token)
		if err != nil {
			return nil, err
		}
		seen[p] = struct{}{}
	}

	out := make([]int, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Ints(out)
	return out, nil
}

func parseRange(token string) (int, int, error) {
	bounds := strings.SplitN(token, "-", 2)
	low, err := parsePort(strings.TrimSpace(bounds[0]))
	if err != nil {
		return 0, 0, err
	}
	high, err := parsePort(strings.TrimSpace(bounds[1]))
	if err != nil {
		return 0, 0, err
	}
	if low > high {
		return 0, 0, fmt.Errorf("%w: range start greater than end in %q", ErrInvalidSpec, token)
	}
	return low, high, nil
}

func parsePort(s string) (int, error) {
	p, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: non-numeric token %q", ErrInvalidSpec, s)
	}
	if p < 1 || p > 65535 {
		return 0, fmt.Errorf("%w: port %d out of range 1-65535", ErrInvalidSpec, p)
	}
	return p, nil
}
