package migrate

import (
	"fmt"
	"io"
	"strings"
)

type Summary struct {
	Total   int
	Updated int
	Skipped int
	Errors  int
}

// Report writes the end-of-run box printed by migrate-recipe-data.
func (s Summary) Report(w io.Writer) {
	rule := strings.Repeat("═", 60)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "📈 Migration Summary:")
	fmt.Fprintf(w, "   Total recipes: %d\n", s.Total)
	fmt.Fprintf(w, "   ✅ Updated: %d\n", s.Updated)
	fmt.Fprintf(w, "   ⏭️  Skipped: %d\n", s.Skipped)
	fmt.Fprintf(w, "   ❌ Errors: %d\n", s.Errors)
	fmt.Fprintln(w, rule)
	if s.Errors == 0 {
		fmt.Fprintln(w, "\n✨ Migration completed successfully!")
	} else {
		fmt.Fprintln(w, "\n⚠️  Migration completed with errors. Please review above.")
	}
}
