package backlog

import (
	"fmt"
	"path/filepath"

	"github.com/calvinalkan/taskscan/internal/fs"
)

const outputDirPerms = 0o755

// Write serializes b with ser and replaces path atomically, creating parent
// directories as needed. On error the previous content of path is intact.
func Write(fsys fs.FS, path string, b *Backlog, ser Serializer) error {
	if path == "" {
		return ErrOutputPathEmpty
	}

	data, err := ser.Marshal(b)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, outputDirPerms); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := fsys.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
