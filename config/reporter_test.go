package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("unable to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("unable to read %s: %v", f.Name, err)
		}
		files[f.Name] = string(data)
	}
	return files
}

func TestReport_Close(t *testing.T) {
	tmpDir := t.TempDir()

	conf := ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	src := filepath.Join(tmpDir, "button.yaml")
	if err := os.WriteFile(src, []byte("version: 1\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	log := filepath.Join(tmpDir, "final.log")
	if err := os.WriteFile(log, []byte("log line\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	r.Store("final.log", log)
	r.StoreData("output/button.css", []byte(".btn svg {}\n"))
	if err := r.StoreCopy("source/button.yaml", src); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	// same name twice gets versioned
	if err := r.StoreCopy("source/button.yaml", src); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	r.Store("missing.log", filepath.Join(tmpDir, "absent.log"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := readArchive(t, conf.Destination)
	if files["final.log"] != "log line\n" {
		t.Errorf("final.log = %q", files["final.log"])
	}
	if files["output/button.css"] != ".btn svg {}\n" {
		t.Errorf("output/button.css = %q", files["output/button.css"])
	}
	if files["source/button.yaml"] != "version: 1\n" {
		t.Errorf("source/button.yaml = %q", files["source/button.yaml"])
	}
	if _, ok := files["missing.log"]; ok {
		t.Error("absent file must not be archived")
	}
	var versioned int
	for name := range files {
		if strings.HasPrefix(name, "source/button.yaml-") {
			versioned++
		}
	}
	if versioned != 1 {
		t.Errorf("expected 1 versioned copy, got %d", versioned)
	}
	if !strings.Contains(files["MANIFEST"], "output/button.css") {
		t.Errorf("MANIFEST does not list stored data:\n%s", files["MANIFEST"])
	}
}

func TestReport_StoreConflict(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("a", "/tmp/a")
	r.Store("a", "/tmp/a")

	defer func() {
		if recover() == nil {
			t.Error("expected panic on conflicting Store")
		}
	}()
	r.Store("a", "/tmp/b")
}

func TestReport_Nil(t *testing.T) {
	var r *Report
	r.Store("a", "b")
	r.StoreData("c", nil)
	if err := r.StoreCopy("d", "/nonexistent"); err != nil {
		t.Errorf("StoreCopy on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Errorf("Name() on nil report = %q", r.Name())
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
