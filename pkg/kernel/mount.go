package kernel

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// VerifyMounted is a startup preflight check: it scans /proc/self/mountinfo
// and confirms /proc itself is mounted with fstype "proc", i.e. that the
// pseudo-files this daemon depends on (pressure, swappiness, swaps) are
// backed by a real procfs rather than something unexpected. It returns a
// human-readable detail string for startup logging.
//
// mountinfo lines have the form "<fields> - <fstype> <source> <superopts>";
// we only need the fstype and the mount point that precedes the separator.
func VerifyMounted() (bool, string, error) {
	f, err := os.Open("/proc/self/mountinfo")
	if err != nil {
		return false, "", fmt.Errorf("open mountinfo: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		const sep = " - "
		i := strings.LastIndex(line, sep)
		if i < 0 {
			continue
		}
		pre := strings.Fields(line[:i])
		if len(pre) < 5 {
			continue
		}
		mountPoint := pre[4]

		tail := strings.Fields(line[i+len(sep):])
		if len(tail) < 1 {
			continue
		}
		fstype := tail[0]

		if mountPoint == "/proc" && fstype == "proc" {
			return true, fmt.Sprintf("/proc mounted (fstype=%s)", fstype), nil
		}
	}
	if err := sc.Err(); err != nil {
		return false, "", fmt.Errorf("scan mountinfo: %w", err)
	}
	return false, "/proc not found in mountinfo", nil
}
