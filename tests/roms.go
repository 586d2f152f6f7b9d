// Package tests provides the nes-test-roms collection to tests that need
// real programs. The collection is downloaded on first use.
package tests

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

const romsURL = `https://github.com/christopherpow/nes-test-roms/archive/refs/heads/master.zip`

func decompress(zipFile, dest string) (int, error) {
	r, err := zip.OpenReader(zipFile)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	for _, f := range r.File {
		fname := strings.Replace(f.Name, "nes-test-roms-master", "nes-test-roms", 1)
		fpath := filepath.Join(dest, fname)
		if !strings.HasPrefix(fpath, filepath.Clean(dest)+string(os.PathSeparator)) {
			return 0, fmt.Errorf("%s: illegal file path", fpath)
		}

		if f.FileInfo().IsDir() {
			os.MkdirAll(fpath, os.ModePerm)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(fpath), os.ModePerm); err != nil {
			return 0, err
		}
		if err := extract(f, fpath); err != nil {
			return 0, err
		}
	}
	return len(r.File), nil
}

func extract(f *zip.File, path string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func downloadTestRoms(tb testing.TB, dest string) error {
	resp, err := http.Get(romsURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", romsURL, resp.Status)
	}

	tmpf, err := os.CreateTemp("", "nes-test-roms-*-.zip")
	if err != nil {
		return err
	}
	defer os.Remove(tmpf.Name())

	if _, err := io.Copy(tmpf, resp.Body); err != nil {
		tmpf.Close()
		return err
	}
	tmpf.Close()

	n, err := decompress(tmpf.Name(), dest)
	if err != nil {
		return fmt.Errorf("failed to decompress test roms: %s", err)
	}
	tb.Log("decompressed", n, "files")
	return nil
}

// RomsPath returns the directory holding the test roms. The test is skipped
// in short mode, or if the roms can't be downloaded.
func RomsPath(tb testing.TB) string {
	tb.Helper()
	if testing.Short() {
		tb.Skip("test roms not used in short mode")
	}

	_, b, _, _ := runtime.Caller(0)
	testsDir := filepath.Dir(b)
	romsDir := filepath.Join(testsDir, "nes-test-roms")

	if _, err := os.Stat(romsDir); errors.Is(err, fs.ErrNotExist) {
		tb.Log("nes-test-roms directory not found, downloading it...")
		if err := downloadTestRoms(tb, testsDir); err != nil {
			tb.Skipf("failed to download test roms: %s", err)
		}
		tb.Log("Test roms downloaded in", romsDir)
	}

	return romsDir
}
