package kernel

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// pressureRoot returns the directory holding /proc/pressure/<resource>
// files. It checks an env var override first (for hermetic tests), falling
// back to the real kernel path.
func pressureRoot() string {
	if v := os.Getenv("DYNSWAPD_PRESSURE_DIR"); v != "" {
		return v
	}
	return "/proc/pressure"
}

// ReadPressure reads one metric from /proc/pressure/<resource>.
//
// A pressure file has one line per level ("some"/"full"), each holding
// space-separated key=value pairs (avg10, avg60, avg300, total). ReadPressure
// scans for the line whose first token equals level and returns the value
// for key. Any failure to open the file, find the line, or find the key
// is reported as ErrUnreadable — the caller re-samples next tick, there is
// no retry here.
func ReadPressure(resource, level, key string) (float64, error) {
	path := fmt.Sprintf("%s/%s", pressureRoot(), resource)
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: open %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || fields[0] != level {
			continue
		}
		for _, kv := range fields[1:] {
			k, v, ok := strings.Cut(kv, "=")
			if !ok || k != key {
				continue
			}
			val, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return 0, fmt.Errorf("%w: parse %s=%s: %v", ErrUnreadable, key, v, err)
			}
			return val, nil
		}
		return 0, fmt.Errorf("%w: %s: key %s not on %s line", ErrUnreadable, path, key, level)
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("%w: scan %s: %v", ErrUnreadable, path, err)
	}
	return 0, fmt.Errorf("%w: %s: no %s line", ErrUnreadable, path, level)
}
