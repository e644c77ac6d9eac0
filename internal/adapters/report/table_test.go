package report_test

import (
	"strings"
	"testing"

	"github.com/avasisht/gradelens/internal/adapters/report"
	"github.com/avasisht/gradelens/internal/domain/grade"
	"github.com/avasisht/gradelens/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// row builds a reconciled row with the given grade counts filled in over
// a zeroed canonical count map.
func row(year string, sem int, course string, counts map[grade.Grade]int, total int, avg *float64) model.ReconciledRow {
	full := make(map[grade.Grade]int, len(grade.Canonical()))
	for _, g := range grade.Canonical() {
		full[g] = counts[g]
	}
	return model.ReconciledRow{
		Year: year, Semester: sem, Course: course,
		Counts: full, Total: total, Avg: avg,
	}
}

func floatPtr(f float64) *float64 { return &f }

func TestWriteTable(t *testing.T) {
	Convey("Given reconciled rows", t, func() {
		rows := []model.ReconciledRow{
			row("2023-24", 1, "CS101", map[grade.Grade]int{grade.A: 10, grade.B: 5, grade.S: 2}, 17, floatPtr(9.33)),
			row("2023-24", 2, "CS350", nil, 0, nil),
		}

		Convey("When rendering the fixed-width table", func() {
			var b strings.Builder
			err := report.WriteTable(&b, rows)
			out := b.String()
			lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

			Convey("Then the header lists keys, every grade, Total, and Avg", func() {
				So(err, ShouldBeNil)
				So(lines, ShouldHaveLength, 3)
				for _, col := range []string{"Year", "Sem", "Course", "Total", "Avg"} {
					So(lines[0], ShouldContainSubstring, col)
				}
				for _, g := range grade.Canonical() {
					So(lines[0], ShouldContainSubstring, string(g))
				}
			})

			Convey("And data rows carry their counts and formatted average", func() {
				So(err, ShouldBeNil)
				So(lines[1], ShouldContainSubstring, "CS101")
				So(lines[1], ShouldContainSubstring, "17")
				So(lines[1], ShouldContainSubstring, "9.33")
			})

			Convey("And an undefined average renders as a dash, not zero", func() {
				So(err, ShouldBeNil)
				So(lines[2], ShouldContainSubstring, "CS350")
				So(strings.HasSuffix(lines[2], "-"), ShouldBeTrue)
				So(lines[2], ShouldNotContainSubstring, "0.00")
			})

			Convey("And columns align across all lines", func() {
				So(err, ShouldBeNil)
				// The last column right-aligns, so every line shares
				// one width.
				So(len(lines[1]), ShouldEqual, len(lines[0]))
				So(len(lines[2]), ShouldEqual, len(lines[0]))
			})
		})
	})
}
