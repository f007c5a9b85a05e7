package config

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gvs/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates initialized empty reporter.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	r := &Report{entries: make(map[string]entry)}

	if f, err := os.Create(conf.Destination); err == nil {
		r.file = f
	} else if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err == nil {
		r.file = f
	} else {
		return nil, fmt.Errorf("unable to create report: %w", err)
	}
	return r, nil
}

type entry struct {
	original string
	actual   string
	stamp    time.Time
	data     []byte
}

// Report accumulates information necessary to prepare full debug report:
// configuration, definition files, generated stylesheets and logs.
// All methods are safe to call on nil Report, which means no report has been
// requested.
// NOTE: presently not to be used concurrently!
type Report struct {
	entries map[string]entry
	file    *os.File
}

// Close finalizes debug report.
func (r *Report) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	defer r.file.Close()
	return r.finalize()
}

// Name returns name of underlying file.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// Store saves path to file to be put in the final archive later. File
// content is read when report is closed.
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}
	if old, exists := r.entries[name]; exists && old.original != path {
		panic(fmt.Sprintf("Attempt to overwrite file in the report for [%s]: was %s, now %s", name, old.original, path))
	}

	e := entry{original: path, actual: path}
	if p, err := filepath.Abs(path); err == nil {
		e.actual = p
	}
	r.entries[name] = e
}

// StoreData saves binary data to be put in the final archive later as a file
// under requested name.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	if _, exists := r.entries[name]; exists {
		panic(fmt.Sprintf("Attempt to overwrite data in the report for [%s]", name))
	}
	r.entries[name] = entry{data: data, stamp: time.Now()}
}

// StoreCopy reads file content at the time of a call to be put in the final
// archive later. Names are versioned with timestamps to avoid collisions, so
// it is safe to put the same file into report multiple times.
func (r *Report) StoreCopy(name, path string) error {
	if r == nil {
		return nil
	}

	e := entry{stamp: time.Now(), original: path, actual: path}
	if p, err := filepath.Abs(path); err == nil {
		e.actual = p
	}
	data, err := os.ReadFile(e.actual)
	if err != nil {
		return err
	}
	e.data = data

	if _, exists := r.entries[name]; exists {
		name = fmt.Sprintf("%s-%d", name, e.stamp.UnixNano())
	}
	r.entries[name] = e
	return nil
}

// finalize creates the final archive (report) with all previously stored items.
func (r *Report) finalize() error {
	arc := zip.NewWriter(r.file)
	defer arc.Close()

	names, manifest := prepareManifest(r.entries)
	if err := saveFile(arc, "MANIFEST", time.Now(), manifest); err != nil {
		return err
	}

	// in the same order as in manifest
	for _, name := range names {
		e := r.entries[name]
		if len(e.data) > 0 {
			if err := saveFile(arc, name, e.stamp, bytes.NewReader(e.data)); err != nil {
				return err
			}
			continue
		}
		// ignoring absent files and directories
		info, err := os.Stat(e.actual)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		f, err := os.Open(e.actual)
		if err != nil {
			return err
		}
		err = saveFile(arc, name, info.ModTime(), f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func prepareManifest(entries map[string]entry) ([]string, *bytes.Buffer) {
	now := time.Now()

	buf := new(bytes.Buffer)
	if len(entries) == 0 {
		return nil, buf
	}

	keys := slices.Sorted(maps.Keys(entries))
	for _, k := range keys {
		e := entries[k]
		if e.stamp.IsZero() {
			e.stamp = now
		}
		fmt.Fprintf(buf, "%s\t%s\t%s : %s\n", e.stamp.UTC().Format(time.UnixDate), k, e.original, e.actual)
	}
	return keys, buf
}

func saveFile(dst *zip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := dst.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: t})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
