package ingest

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"regexp"
	"strings"
)

// Regex for valid reddit usernames
var userNameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{3,20}$`)

// LoadUsers reads target usernames from a single-column CSV with a header
// row. Invalid rows are skipped rather than failing the whole file.
func LoadUsers(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Wrap in BOM stripper
	r := csv.NewReader(stripBOM(f))
	r.FieldsPerRecord = -1

	var users []string
	seen := make(map[string]bool)
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		line++
		if line == 1 {
			continue // Skip header
		}
		if len(record) == 0 {
			continue
		}

		// Validation (Fail-Soft)
		name := strings.TrimPrefix(strings.TrimSpace(record[0]), "u/")
		if !userNameRegex.MatchString(name) || seen[name] {
			continue
		}
		seen[name] = true
		users = append(users, name)
	}
	return users, nil
}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	rdr, _, err := br.ReadRune()
	if err != nil {
		return br
	}
	if rdr != '\uFEFF' {
		br.UnreadRune()
	}
	return br
}
