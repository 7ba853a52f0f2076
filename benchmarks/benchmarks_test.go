package benchmarks

import (
	encoding_csv "encoding/csv"
	"fmt"
	"strings"
	"testing"

	"github.com/clarete/pegmatch"
	"github.com/clarete/pegmatch/examples/csv"
	"github.com/clarete/pegmatch/examples/keywords"
)

// BenchmarkCSV compares the csv grammar against encoding/csv.  Runners
// are created once and reused across iterations, which is how they're
// meant to be used.
func BenchmarkCSV(b *testing.B) {
	inputs := []struct {
		name string
		rows int
	}{
		{"10rows", 10},
		{"1000rows", 1000},
		{"10000rows", 10000},
	}

	parsers := []struct {
		name string
		fn   func(*testing.B, string)
	}{
		{"encoding_csv", benchmarkEncodingCSV},
		{"pegmatch", benchmarkRunner(csv.Grammar)},
		{"pegmatch_tree", benchmarkRunner(csv.Grammar, pegmatch.WithParseTree(true))},
	}

	for _, input := range inputs {
		data := generateCSV(input.rows)
		for _, parser := range parsers {
			fn := parser.fn
			b.Run(fmt.Sprintf("input=%s/parser=%s", input.name, parser.name), func(b *testing.B) {
				b.SetBytes(int64(len(data)))
				b.ReportAllocs()
				fn(b, data)
			})
		}
	}
}

func BenchmarkKeywords(b *testing.B) {
	for _, lines := range []int{10, 1000} {
		data := generateSource(lines)
		b.Run(fmt.Sprintf("input=%dlines", lines), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			benchmarkRunner(keywords.Grammar)(b, data)
		})
	}
}

func benchmarkEncodingCSV(b *testing.B, data string) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := encoding_csv.NewReader(strings.NewReader(data)).ReadAll(); err != nil {
			b.Fatalf("error in encoding/csv: %v", err)
		}
	}
}

func benchmarkRunner(grammar func(*pegmatch.Config) (pegmatch.Matcher, error), opts ...pegmatch.Option) func(*testing.B, string) {
	return func(b *testing.B, data string) {
		root, err := grammar(nil)
		if err != nil {
			b.Fatalf("error building grammar: %v", err)
		}
		runner := pegmatch.NewParseRunner(root, opts...)
		input := pegmatch.NewInputBuffer(data)

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			result, err := runner.RunBuffer(input)
			if err != nil {
				b.Fatalf("error in runner: %v", err)
			}
			if !result.Matched {
				b.Fatalf("input didn't match %s", root.Label())
			}
		}
	}
}

func generateCSV(rows int) string {
	var sb strings.Builder
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&sb, "%d,name %d,\"quoted, \"\"field\"\" %d\",%d.%02d\r\n", i, i, i, i*7, i%100)
	}
	return sb.String()
}

func generateSource(lines int) string {
	var sb strings.Builder
	for i := 0; i < lines; i++ {
		fmt.Fprintf(&sb, "if (count%d >= %d) { return java.util.List.of(x%d++); }\n", i, i, i)
	}
	return sb.String()
}
