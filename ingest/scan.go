package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

var elmNoRe = regexp.MustCompile(`ElmNo=(\d+)`)

// ElementNumber extracts the ElmNo= tag from the base name of path.
func ElementNumber(path string) (int, bool) {
	m := elmNoRe.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ScanElements lists the element numbers tagged on the .csv files in dir.
// Present holds every number found, ascending; missing holds the numbers in
// [1, maxElm] with no file. Files without an ElmNo= tag are ignored.
func ScanElements(dir string, maxElm int) (present, missing []int, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("ingest: %w", err)
	}

	seen := make(map[int]bool)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".csv" {
			continue
		}
		if n, ok := ElementNumber(entry.Name()); ok {
			seen[n] = true
		}
	}

	present = make([]int, 0, len(seen))
	for n := range seen {
		present = append(present, n)
	}
	sort.Ints(present)

	for n := 1; n <= maxElm; n++ {
		if !seen[n] {
			missing = append(missing, n)
		}
	}
	return present, missing, nil
}
