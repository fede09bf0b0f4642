package utils

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:135.0) Gecko/20100101 Firefox/135.0",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64; rv:135.0) Gecko/20100101 Firefox/135.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.3 Safari/605.1.15",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:135.0) Gecko/20100101 Firefox/135.0",
	"curl/7.88.1",
}

func GetRandomUserAgent() string {
	return userAgents[time.Now().UnixNano()%int64(len(userAgents))]
}

// Clean removes leftover temp artifacts under dir. Partial downloads live
// in <dir>/.cratedl-temp; the directory is removed once empty.
func Clean(dir string) error {
	tempDir := filepath.Join(dir, TempDirName)
	files, err := os.ReadDir(tempDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, file := range files {
		filePath := filepath.Join(tempDir, file.Name())
		if strings.HasSuffix(file.Name(), ".part") || strings.Contains(file.Name(), "-dl-") {
			if err := os.Remove(filePath); err != nil {
				return err
			}
		}
	}
	remaining, err := os.ReadDir(tempDir)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		return os.Remove(tempDir)
	}
	return nil
}
