package backlog_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// writeTree creates files below root. Keys are slash-separated relative
// paths; a key ending in "/" creates an empty directory.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))

		if rel[len(rel)-1] == '/' {
			require.NoError(t, os.MkdirAll(path, 0o755))

			continue
		}

		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func fixedClock() time.Time {
	return time.Date(2026, time.March, 4, 10, 30, 0, 123456000, time.FixedZone("CET", 3600))
}
