package extract

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/tanq16/cratedl/internal/utils"
)

// EnsureYtdlp locates a yt-dlp binary on PATH or next to the executable,
// downloading the latest release to the temp dir as a last resort.
func EnsureYtdlp() (string, error) {
	path, err := exec.LookPath("yt-dlp")
	if err == nil {
		return path, nil
	}
	execDir, err := os.Executable()
	if err == nil {
		ytdlpPath := filepath.Join(filepath.Dir(execDir), "yt-dlp")
		if runtime.GOOS == "windows" {
			ytdlpPath += ".exe"
		}
		if _, err := os.Stat(ytdlpPath); err == nil {
			return ytdlpPath, nil
		}
	}
	return downloadYtdlp()
}

func downloadYtdlp() (string, error) {
	goos := runtime.GOOS
	goarch := runtime.GOARCH
	var filename string
	switch {
	case goos == "windows" && goarch == "amd64":
		filename = "yt-dlp.exe"
	case goos == "windows" && goarch == "arm64":
		filename = "yt-dlp_arm64.exe"
	case goos == "linux" && goarch == "amd64":
		filename = "yt-dlp_linux"
	case goos == "linux" && goarch == "arm64":
		filename = "yt-dlp_linux_aarch64"
	case goos == "darwin":
		filename = "yt-dlp_macos"
	default:
		return "", fmt.Errorf("unsupported OS/arch: %s/%s", goos, goarch)
	}

	tempDir := utils.TempDirName
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return "", fmt.Errorf("error creating temp directory: %v", err)
	}
	downloadURL := fmt.Sprintf("https://github.com/yt-dlp/yt-dlp/releases/latest/download/%s", filename)
	filePath := filepath.Join(tempDir, "yt-dlp")
	if goos == "windows" {
		filePath += ".exe"
	}
	if err := downloadFile(downloadURL, filePath); err != nil {
		return "", err
	}
	if goos != "windows" {
		if err := os.Chmod(filePath, 0755); err != nil {
			return "", fmt.Errorf("error setting permissions: %v", err)
		}
	}
	return filePath, nil
}

func downloadFile(url, filepath string) error {
	client := utils.NewCrateHTTPClient(utils.HTTPClientConfig{})
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}
	out, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, resp.Body)
	return err
}
