// Package pidfile maintains a small on-disk PID registry: one "name=pid"
// record per line, unique by name, rewritten in place on every save.
package pidfile

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Save records pid under name in the registry file at path. If name already
// has an entry, it is replaced; the new entry is always written last.
func Save(path, name string, pid int) error {
	var lines []string
	found := false

	if f, err := os.Open(path); err == nil {
		scanner := bufio.NewScanner(f)
		prefix := name + "="
		for scanner.Scan() {
			line := scanner.Text()
			if strings.HasPrefix(line, prefix) {
				found = true
				continue
			}
			lines = append(lines, line)
		}
		f.Close()
	}

	lines = append(lines, fmt.Sprintf("%s=%d", name, pid))

	out, err := os.Create(path)
	if err != nil {
		slog.Error("pidfile: unable to open for writing", "path", path, "err", err)
		return err
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	slog.Debug("pidfile: saved", "name", name, "pid", pid, "updated", found)
	return nil
}
