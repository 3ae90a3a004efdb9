package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	oerrors "github.com/structml/tabrec/internal/errors"
	"github.com/structml/tabrec/internal/output"
)

// Record is one PubTabNet-style label line: the image filename, the split it
// belongs to, and the ground-truth structure annotation.
type Record struct {
	Filename string          `json:"filename"`
	Split    string          `json:"split,omitempty"`
	HTML     json.RawMessage `json:"html,omitempty"`
}

// maxLineBytes bounds a single label line. PubTabNet annotations for dense
// tables run well past bufio's default 64K.
const maxLineBytes = 4 * 1024 * 1024

// ReadLabels reads label records from dataPath. A directory is treated as a
// collection of label files, matching how training sets are commonly sharded;
// a plain file is read as JSON Lines.
func ReadLabels(dataPath string) ([]Record, error) {
	info, err := os.Stat(dataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.NewPathError("dataset.data_path", dataPath, "path does not exist")
		}
		return nil, oerrors.NewPathError("dataset.data_path", dataPath, fmt.Sprintf("path is not readable: %v", err))
	}

	if !info.IsDir() {
		return readLabelFile(dataPath)
	}

	matches, err := filepath.Glob(filepath.Join(dataPath, "*.jsonl"))
	if err != nil {
		return nil, oerrors.NewPathError("dataset.data_path", dataPath, fmt.Sprintf("globbing label files: %v", err))
	}
	if len(matches) == 0 {
		return nil, oerrors.NewPathError("dataset.data_path", dataPath, "directory contains no .jsonl label files")
	}
	sort.Strings(matches)

	var records []Record
	for _, path := range matches {
		part, err := readLabelFile(path)
		if err != nil {
			return nil, err
		}
		records = append(records, part...)
	}
	return records, nil
}

func readLabelFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, oerrors.NewPathError("dataset.data_path", path, fmt.Sprintf("opening label file: %v", err))
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, oerrors.NewSchemaError(
				fmt.Sprintf("%s:%d", path, line),
				fmt.Sprintf("malformed label record: %v", err))
		}
		if rec.Filename == "" {
			return nil, oerrors.NewSchemaError(
				fmt.Sprintf("%s:%d", path, line),
				"label record has no filename")
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, oerrors.NewPathError("dataset.data_path", path, fmt.Sprintf("reading label file: %v", err))
	}

	return records, nil
}

// ScanResult summarizes an index scan over a label set.
type ScanResult struct {
	Total   int
	OK      int
	Missing int

	// MissingFiles holds the image filenames that had a label record but no
	// file under image_path.
	MissingFiles []string
}

// Scan reads the label records at dataPath and verifies each referenced
// image exists under imagePath. Records whose image is missing are warned
// and skipped rather than failing the scan.
func Scan(dataPath, imagePath string) (*ScanResult, error) {
	info, err := os.Stat(imagePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.NewPathError("dataset.image_path", imagePath, "path does not exist")
		}
		return nil, oerrors.NewPathError("dataset.image_path", imagePath, fmt.Sprintf("path is not readable: %v", err))
	}
	if !info.IsDir() {
		return nil, oerrors.NewPathError("dataset.image_path", imagePath, "must be a directory")
	}

	records, err := ReadLabels(dataPath)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{Total: len(records)}
	for _, rec := range records {
		img := filepath.Join(imagePath, rec.Filename)
		if _, err := os.Stat(img); err != nil {
			output.Warn("image file does not exist, skipping record", "image", img)
			result.Missing++
			result.MissingFiles = append(result.MissingFiles, rec.Filename)
			continue
		}
		result.OK++
	}

	return result, nil
}
