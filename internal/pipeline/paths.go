package pipeline

import (
	"fmt"
	"os"

	oerrors "github.com/structml/tabrec/internal/errors"
)

// CheckPaths verifies that the dataset paths referenced by the document
// exist and are readable. This check is intentionally separate from Load:
// documents are routinely inspected on machines that do not hold the data,
// so existence checking is deferred to the consuming loader (or to an
// explicit vet --check-paths).
func (d *Document) CheckPaths() error {
	for _, section := range d.sections() {
		ds := section.s.Dataset

		if err := checkPath(section.name+".dataset.data_path", ds.DataPath, false); err != nil {
			return err
		}

		// The image path must be a directory; label records are resolved
		// relative to it.
		if err := checkPath(section.name+".dataset.image_path", ds.ImagePath, true); err != nil {
			return err
		}
	}

	return nil
}

// checkPath stats a referenced path. data_path may be a label file or a
// directory of label files; image_path must be a directory.
func checkPath(field, path string, mustBeDir bool) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return oerrors.NewPathError(field, path, "path does not exist")
		}
		return oerrors.NewPathError(field, path, fmt.Sprintf("path is not readable: %v", err))
	}

	if mustBeDir && !info.IsDir() {
		return oerrors.NewPathError(field, path, "must be a directory")
	}

	return nil
}
