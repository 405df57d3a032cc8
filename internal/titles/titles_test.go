package titles_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"phototitles/internal/library"
	"phototitles/internal/testsupport"
	"phototitles/internal/titles"
)

func newLibraries(t *testing.T, oldRows, newRows []testsupport.Row) (oldPath, newPath string) {
	t.Helper()
	dir := t.TempDir()
	oldPath = testsupport.WriteLibrary(t, filepath.Join(dir, "old", "Library.apdb"), oldRows...)
	newPath = testsupport.WriteLibrary(t, filepath.Join(dir, "new", "Library.apdb"), newRows...)
	return oldPath, newPath
}

func commitAndClose(t *testing.T, store *library.Store) {
	t.Helper()
	if err := store.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestTitleFromFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"IMG_0001.JPG", "IMG_0001"},
		{"noext", "noext"},
		{"a.b.c", "a.b"},
		{"holiday photo.jpeg", "holiday photo"},
		{".hidden", ".hidden"},
		{".hidden.jpg", ".hidden"},
		{"trailing.", "trailing"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := titles.TitleFromFileName(tt.in); got != tt.want {
			t.Errorf("TitleFromFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInspect(t *testing.T) {
	oldPath, newPath := newLibraries(t,
		[]testsupport.Row{
			testsupport.Titled("u1", "a.jpg", "Beach"),
			testsupport.EmptyTitle("u2", "b.jpg"),
			testsupport.EmptyTitle("u3", "c.jpg"),
		},
		[]testsupport.Row{
			testsupport.NullTitle("u1", "a.jpg"),
			testsupport.Titled("u2", "b.jpg", "Hills"),
		},
	)
	ctx := context.Background()

	summary, err := titles.Inspect(ctx, testsupport.MustOpenLibrary(t, oldPath, true), "OLD", library.AbsentIsEmptyString)
	if err != nil {
		t.Fatalf("Inspect old: %v", err)
	}
	want := titles.Summary{Label: "OLD", Total: 3, WithTitle: 1, WithoutTitle: 2, Convention: library.AbsentIsEmptyString}
	if summary != want {
		t.Fatalf("old summary = %+v, want %+v", summary, want)
	}

	summary, err = titles.Inspect(ctx, testsupport.MustOpenLibrary(t, newPath, true), "NEW", library.AbsentIsNull)
	if err != nil {
		t.Fatalf("Inspect new: %v", err)
	}
	want = titles.Summary{Label: "NEW", Total: 2, WithTitle: 1, WithoutTitle: 1, Convention: library.AbsentIsNull}
	if summary != want {
		t.Fatalf("new summary = %+v, want %+v", summary, want)
	}
}

func TestCopyByIdentifierCopiesOnlyIntoAbsentTitles(t *testing.T) {
	oldPath, newPath := newLibraries(t,
		[]testsupport.Row{
			testsupport.Titled("match-empty", "a.jpg", "Beach"),
			testsupport.Titled("match-titled", "b.jpg", "Old name"),
			testsupport.Titled("only-old", "c.jpg", "Gone"),
			testsupport.EmptyTitle("untitled-old", "d.jpg"),
		},
		[]testsupport.Row{
			testsupport.NullTitle("match-empty", "a.jpg"),
			testsupport.Titled("match-titled", "b.jpg", "New name"),
			testsupport.NullTitle("untitled-old", "d.jpg"),
			testsupport.NullTitle("only-new", "e.jpg"),
		},
	)
	src := testsupport.MustOpenLibrary(t, oldPath, true)
	dst := testsupport.MustOpenLibrary(t, newPath, false)

	result, err := titles.CopyByIdentifier(context.Background(), src, dst, titles.DefaultCopyOptions())
	if err != nil {
		t.Fatalf("CopyByIdentifier: %v", err)
	}
	if result.Inspected != 3 || result.Matched != 2 || result.Updated != 1 {
		t.Fatalf("result = %+v, want inspected 3 matched 2 updated 1", result)
	}
	if result.Trace != nil {
		t.Fatalf("trace recorded without verbose: %+v", result.Trace)
	}
	commitAndClose(t, dst)

	got := testsupport.ReadTitles(t, newPath)
	if got["match-empty"] != testsupport.Title("Beach") {
		t.Fatalf("match-empty = %+v, want Beach", got["match-empty"])
	}
	if got["match-titled"] != testsupport.Title("New name") {
		t.Fatalf("existing destination title overwritten: %+v", got["match-titled"])
	}
	if got["untitled-old"].Valid || got["only-new"].Valid {
		t.Fatalf("unexpected titles written: %+v", got)
	}
}

func TestCopyByIdentifierVerboseTracesSkippedMatches(t *testing.T) {
	oldPath, newPath := newLibraries(t,
		[]testsupport.Row{
			testsupport.Titled("u1", "a.jpg", "Beach"),
			testsupport.Titled("u2", "b.jpg", "Old name"),
		},
		[]testsupport.Row{
			testsupport.NullTitle("u1", "a.jpg"),
			testsupport.Titled("u2", "b.jpg", "New name"),
		},
	)
	opts := titles.DefaultCopyOptions()
	opts.Verbose = true

	result, err := titles.CopyByIdentifier(context.Background(),
		testsupport.MustOpenLibrary(t, oldPath, true),
		testsupport.MustOpenLibrary(t, newPath, false),
		opts,
	)
	if err != nil {
		t.Fatalf("CopyByIdentifier: %v", err)
	}
	want := []titles.Change{
		{UUID: "u1", FileName: "a.jpg", Before: "NULL", After: `"Beach"`, Updated: true},
		{UUID: "u2", FileName: "b.jpg", Before: `"New name"`, After: `"New name"`, Updated: false},
	}
	if len(result.Trace) != len(want) {
		t.Fatalf("trace = %+v, want %+v", result.Trace, want)
	}
	for i := range want {
		if result.Trace[i] != want[i] {
			t.Fatalf("trace[%d] = %+v, want %+v", i, result.Trace[i], want[i])
		}
	}
}

func TestCopyByIdentifierFailsOnDuplicateDestinationUUID(t *testing.T) {
	oldPath, newPath := newLibraries(t,
		[]testsupport.Row{testsupport.Titled("dup", "a.jpg", "Beach")},
		[]testsupport.Row{
			testsupport.NullTitle("dup", "a.jpg"),
			testsupport.NullTitle("dup", "a copy.jpg"),
		},
	)
	_, err := titles.CopyByIdentifier(context.Background(),
		testsupport.MustOpenLibrary(t, oldPath, true),
		testsupport.MustOpenLibrary(t, newPath, false),
		titles.DefaultCopyOptions(),
	)
	if !errors.Is(err, library.ErrDataIntegrity) {
		t.Fatalf("got %v, want ErrDataIntegrity", err)
	}
}

func TestFillFromFileNamesIsIdempotent(t *testing.T) {
	_, newPath := newLibraries(t, nil, []testsupport.Row{
		testsupport.NullTitle("u1", "IMG_0001.JPG"),
		testsupport.NullTitle("u2", "scan"),
		testsupport.Titled("u3", "IMG_0003.JPG", "Kept"),
		testsupport.EmptyTitle("u4", "IMG_0004.JPG"),
	})
	dst := testsupport.MustOpenLibrary(t, newPath, false)
	ctx := context.Background()
	opts := titles.FillOptions{Absent: library.AbsentIsNull}

	first, err := titles.FillFromFileNames(ctx, dst, opts)
	if err != nil {
		t.Fatalf("first fill: %v", err)
	}
	if first.Updated != 2 {
		t.Fatalf("first fill updated %d, want 2", first.Updated)
	}
	second, err := titles.FillFromFileNames(ctx, dst, opts)
	if err != nil {
		t.Fatalf("second fill: %v", err)
	}
	if second.Updated != 0 {
		t.Fatalf("second fill updated %d, want 0", second.Updated)
	}
	commitAndClose(t, dst)

	got := testsupport.ReadTitles(t, newPath)
	want := map[string]string{"u1": "IMG_0001", "u2": "scan", "u3": "Kept", "u4": ""}
	for uuid, title := range want {
		if got[uuid] != testsupport.Title(title) {
			t.Fatalf("%s = %+v, want %q", uuid, got[uuid], title)
		}
	}
}

func TestFillFromFileNamesNormalizesUnicode(t *testing.T) {
	const (
		decomposed = "Cafe\u0301"
		composed   = "Caf\u00e9"
	)
	tests := []struct {
		name      string
		normalize bool
		want      string
	}{
		{"kept as stored", false, decomposed},
		{"normalized", true, composed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, newPath := newLibraries(t, nil, []testsupport.Row{
				testsupport.NullTitle("u1", decomposed+".jpg"),
			})
			dst := testsupport.MustOpenLibrary(t, newPath, false)

			result, err := titles.FillFromFileNames(context.Background(), dst, titles.FillOptions{
				Absent:           library.AbsentIsNull,
				NormalizeUnicode: tt.normalize,
				Verbose:          true,
			})
			if err != nil {
				t.Fatalf("FillFromFileNames: %v", err)
			}
			if len(result.Trace) != 1 || result.Trace[0].Before != "NULL" {
				t.Fatalf("trace = %+v", result.Trace)
			}
			commitAndClose(t, dst)

			if got := testsupport.ReadTitles(t, newPath)["u1"]; got != testsupport.Title(tt.want) {
				t.Fatalf("title = %+q, want %+q", got.String, tt.want)
			}
		})
	}
}

func TestFullCoverageAfterBothPasses(t *testing.T) {
	oldPath, newPath := newLibraries(t,
		[]testsupport.Row{
			testsupport.Titled("u1", "a.jpg", "Beach"),
			testsupport.EmptyTitle("u2", "b.jpg"),
		},
		[]testsupport.Row{
			testsupport.NullTitle("u1", "a.jpg"),
			testsupport.NullTitle("u2", "b.jpg"),
			testsupport.NullTitle("u3", "c.png"),
		},
	)
	ctx := context.Background()
	src := testsupport.MustOpenLibrary(t, oldPath, true)
	dst := testsupport.MustOpenLibrary(t, newPath, false)

	if _, err := titles.CopyByIdentifier(ctx, src, dst, titles.DefaultCopyOptions()); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if _, err := titles.FillFromFileNames(ctx, dst, titles.FillOptions{Absent: library.AbsentIsNull}); err != nil {
		t.Fatalf("fill: %v", err)
	}
	summary, err := titles.Inspect(ctx, dst, "NEW", library.AbsentIsNull)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if summary.WithoutTitle != 0 || summary.WithTitle != 3 {
		t.Fatalf("summary = %+v, want every version titled", summary)
	}

	if err := dst.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}
	summary, err = titles.Inspect(ctx, dst, "NEW", library.AbsentIsNull)
	if err != nil {
		t.Fatalf("Inspect after rollback: %v", err)
	}
	if summary.WithoutTitle != 3 {
		t.Fatalf("rollback left titles behind: %+v", summary)
	}
}

func TestPassesStopWhenContextCancelled(t *testing.T) {
	_, newPath := newLibraries(t, nil, []testsupport.Row{
		testsupport.NullTitle("u1", "a.jpg"),
	})
	dst := testsupport.MustOpenLibrary(t, newPath, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := titles.FillFromFileNames(ctx, dst, titles.FillOptions{Absent: library.AbsentIsNull}); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}
