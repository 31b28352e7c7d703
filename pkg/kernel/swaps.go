package kernel

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// swapsPath returns the /proc/swaps path, checking an env var override
// first (for hermetic tests).
func swapsPath() string {
	if v := os.Getenv("DYNSWAPD_SWAPS_FILE"); v != "" {
		return v
	}
	return "/proc/swaps"
}

// SwapRow is one data row of /proc/swaps: Filename Type Size Used Priority.
// Size and Used are reported by the kernel in 1-KiB pages.
type SwapRow struct {
	Path      string
	Type      string
	SizePages uint64
	UsedPages uint64
	Priority  int
}

// ReadSwaps parses /proc/swaps, skipping its header line. The returned rows
// are in file order (kernel-listed order); callers that need a specific
// ordering (e.g. heaviest-first) sort the result themselves.
func ReadSwaps() ([]SwapRow, error) {
	f, err := os.Open(swapsPath())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", swapsPath(), err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read %s header: %w", swapsPath(), err)
		}
		return nil, ErrNoHeader
	}

	var rows []SwapRow
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 5 {
			continue
		}
		size, err := strconv.ParseUint(fields[2], 10, 64)
		if err != nil {
			continue
		}
		used, err := strconv.ParseUint(fields[3], 10, 64)
		if err != nil {
			continue
		}
		prio, _ := strconv.Atoi(fields[4])
		rows = append(rows, SwapRow{
			Path:      fields[0],
			Type:      fields[1],
			SizePages: size,
			UsedPages: used,
			Priority:  prio,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", swapsPath(), err)
	}
	return rows, nil
}

// SwapUsage looks up a single device's row in /proc/swaps and returns its
// used/size in pages. ErrDeviceNotActive is returned if the path isn't
// currently listed as active.
func SwapUsage(path string) (used, size uint64, err error) {
	rows, err := ReadSwaps()
	if err != nil {
		return 0, 0, err
	}
	for _, r := range rows {
		if r.Path == path {
			return r.UsedPages, r.SizePages, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: %s", ErrDeviceNotActive, path)
}

// IsActive reports whether path currently appears in /proc/swaps.
func IsActive(path string) bool {
	_, _, err := SwapUsage(path)
	return err == nil
}
