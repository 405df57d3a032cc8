package testsupport

import (
	"bytes"
	"os"
	"testing"
)

// ReadFile returns the full contents of path.
func ReadFile(t testing.TB, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return data
}

// RequireUnchanged fails the test when path no longer holds want byte for byte.
func RequireUnchanged(t testing.TB, path string, want []byte) {
	t.Helper()

	got := ReadFile(t, path)
	if !bytes.Equal(got, want) {
		t.Fatalf("%s changed: %d bytes before, %d bytes after", path, len(want), len(got))
	}
}
