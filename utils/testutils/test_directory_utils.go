package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteTestFile writes data to a file named fileName in an ephemeral directory owned by the test, and returns the
// absolute path of the file.
func WriteTestFile(t *testing.T, fileName string, data []byte) string {
	path := filepath.Join(t.TempDir(), fileName)
	err := os.WriteFile(path, data, 0644)
	require.NoError(t, err)

	path, err = filepath.Abs(path)
	require.NoError(t, err)
	return path
}

// ExecuteInDirectory executes the given method in a given test directory. It changes the current working directory
// to the directory specified, runs the provided method, then restores the working directory. If testPath refers to a
// file, its parent directory is used.
func ExecuteInDirectory(t *testing.T, testPath string, method func()) {
	// Backup our old working directory
	cwd, err := os.Getwd()
	require.NoError(t, err)

	testPathInfo, err := os.Stat(testPath)
	require.NoError(t, err)

	testDirectory := testPath
	if !testPathInfo.IsDir() {
		testDirectory = filepath.Dir(testPath)
	}

	err = os.Chdir(testDirectory)
	require.NoError(t, err)

	// Restore our working directory even if method fails the test, so temporary directories can be cleaned up
	defer func() {
		require.NoError(t, os.Chdir(cwd))
	}()

	method()
}
