package source

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// FromFile reads a curated URL list, one URL per line. The file is trusted
// to contain only URLs; no pattern filtering is applied.
func FromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening URL list: %v", err)
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading URL list: %v", err)
	}
	return urls, nil
}
