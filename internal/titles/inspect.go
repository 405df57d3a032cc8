package titles

import (
	"context"
	"fmt"

	"phototitles/internal/library"
)

// Summary is the title coverage of one library.
type Summary struct {
	Label        string
	Total        int
	WithTitle    int
	WithoutTitle int
	Convention   library.AbsentConvention
}

// Inspect counts versions in store by title presence. Passing the wrong
// convention yields wrong counts rather than an error.
func Inspect(ctx context.Context, store *library.Store, label string, convention library.AbsentConvention) (Summary, error) {
	summary := Summary{Label: label, Convention: convention}
	counts := []struct {
		filter library.TitleFilter
		target *int
	}{
		{library.AllVersions, &summary.Total},
		{library.WithTitle, &summary.WithTitle},
		{library.WithoutTitle, &summary.WithoutTitle},
	}
	for _, c := range counts {
		n, err := store.Count(ctx, c.filter, convention)
		if err != nil {
			return Summary{}, fmt.Errorf("inspect %s library: %w", label, err)
		}
		*c.target = n
	}
	return summary, nil
}
