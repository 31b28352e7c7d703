package swap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/fmiop/dynswapd/pkg/kernel"
)

var suffixRE = regexp.MustCompile(`(\d+)$`)

// Classify infers a device's class from its path: a path containing "zram"
// is Compressed; a path containing marker (the configured swap-file marker,
// default "fmiop_swap.") is File. zram is checked first so a path that
// happens to contain both substrings still classifies as Compressed.
func Classify(path, marker string) Class {
	if strings.Contains(path, "zram") {
		return Compressed
	}
	if marker != "" && strings.Contains(path, marker) {
		return File
	}
	return Compressed
}

// suffix extracts the trailing numeric suffix of a path, e.g. 3 for
// ".../zram3". Returns ErrNoSuffix if there is none.
func suffix(path string) (int, error) {
	m := suffixRE.FindStringSubmatch(path)
	if m == nil {
		return 0, fmt.Errorf("%w: %s", ErrNoSuffix, path)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrNoSuffix, path, err)
	}
	return n, nil
}

// sortBySuffixDescending orders devices by trailing numeric suffix,
// descending, so that popping the tail of the result yields the
// lowest-numbered candidate first. Entries with no numeric suffix sort
// first (as if their suffix were +Inf), since they're never meant to be
// auto-consumed ahead of numbered ones.
func sortBySuffixDescending(devices []Device) {
	sort.SliceStable(devices, func(i, j int) bool {
		si, erri := suffix(devices[i].Path)
		sj, errj := suffix(devices[j].Path)
		if erri != nil && errj != nil {
			return false
		}
		if erri != nil {
			return true
		}
		if errj != nil {
			return false
		}
		return si > sj
	})
}

// ListCandidates scans dirs for swap backing-store candidates: regular
// (non-directory) entries whose path contains "swap" or "zram" and that are
// not currently active. It returns two ordered lists, one per class, each
// sorted by trailing numeric suffix descending (smallest index at the tail,
// so it is popped first).
func ListCandidates(dirs []string, fileMarker string) (compressed, file []Device, err error) {
	for _, dir := range dirs {
		entries, readErr := os.ReadDir(dir)
		if readErr != nil {
			slog.Warn("list candidates: read dir failed", "dir", dir, "err", readErr)
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			path := filepath.Join(dir, e.Name())
			if !strings.Contains(path, "swap") && !strings.Contains(path, "zram") {
				continue
			}
			if kernel.IsActive(path) {
				continue
			}
			d := Device{Path: path, Class: Classify(path, fileMarker)}
			switch d.Class {
			case Compressed:
				compressed = append(compressed, d)
			case File:
				file = append(file, d)
			}
		}
	}
	sortBySuffixDescending(compressed)
	sortBySuffixDescending(file)
	return compressed, file, nil
}

// ListActive parses /proc/swaps (via kernel.ReadSwaps) into Devices, sorted
// by used pages descending (heaviest first), classified with fileMarker.
func ListActive(fileMarker string) ([]Device, error) {
	rows, err := kernel.ReadSwaps()
	if err != nil {
		return nil, err
	}
	devices := make([]Device, 0, len(rows))
	for _, r := range rows {
		devices = append(devices, Device{
			Path:      r.Path,
			Class:     Classify(r.Path, fileMarker),
			SizePages: r.SizePages,
			UsedPages: r.UsedPages,
		})
	}
	sort.SliceStable(devices, func(i, j int) bool {
		return devices[i].UsedPages > devices[j].UsedPages
	})
	return devices, nil
}

// Usage reports a single active device's utilization. If the device reports
// zero size (undefined utilization per the data model invariant) it returns
// 0% with a diagnostic log instead of an error.
func Usage(path string) (usedMB, usedPct float64, err error) {
	used, size, err := kernel.SwapUsage(path)
	if err != nil {
		return 0, 0, err
	}
	usedMB = float64(used) / 1024
	if size == 0 {
		slog.Warn("swap device reports zero size", "path", path)
		return usedMB, 0, nil
	}
	usedPct = float64(used) / float64(size) * 100
	return usedMB, usedPct, nil
}
