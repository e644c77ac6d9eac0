package report_test

import (
	"bytes"
	"testing"

	"github.com/avasisht/gradelens/internal/adapters/report"
	"github.com/avasisht/gradelens/internal/domain/grade"
	"github.com/avasisht/gradelens/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDistribution(t *testing.T) {
	Convey("Given reconciled rows across several courses", t, func() {
		rows := []model.ReconciledRow{
			row("2023-24", 1, "CS101", map[grade.Grade]int{grade.A: 10, grade.B: 5, grade.S: 2}, 17, floatPtr(9.33)),
			row("2023-24", 2, "CS350", map[grade.Grade]int{grade.A: 10, grade.F: 3}, 13, floatPtr(7.69)),
		}

		Convey("When aggregating the distribution", func() {
			percentages, total, err := report.Distribution(rows)

			Convey("Then grade counts sum across rows before dividing by the grand total", func() {
				So(err, ShouldBeNil)
				So(total, ShouldEqual, 30)
				So(percentages[grade.A], ShouldEqual, 66.7) // 20/30
				So(percentages[grade.B], ShouldEqual, 16.7) // 5/30
				So(percentages[grade.S], ShouldEqual, 6.7)  // 2/30
				So(percentages[grade.F], ShouldEqual, 10.0) // 3/30
			})

			Convey("And every allowed grade has an entry, including zero ones", func() {
				So(err, ShouldBeNil)
				So(percentages, ShouldHaveLength, len(grade.Canonical()))
				So(percentages[grade.E], ShouldEqual, 0)
			})
		})

		Convey("When every count is zero", func() {
			empty := []model.ReconciledRow{row("2023-24", 1, "CS101", nil, 0, nil)}

			_, _, err := report.Distribution(empty)

			Convey("Then there is nothing to chart", func() {
				So(err, ShouldWrap, report.ErrNoData)
			})
		})
	})
}

func TestRenderChart(t *testing.T) {
	Convey("Given rows with grade counts", t, func() {
		rows := []model.ReconciledRow{
			row("2023-24", 1, "CS101", map[grade.Grade]int{grade.A: 10, grade.B: 5}, 15, floatPtr(9.33)),
		}

		Convey("When rendering the percentage chart", func() {
			var buf bytes.Buffer
			err := report.RenderChart(&buf, rows, "R Dey")

			Convey("Then it should produce a PNG", func() {
				So(err, ShouldBeNil)
				So(buf.Len(), ShouldBeGreaterThan, 0)
				So(bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), ShouldBeTrue)
			})
		})

		Convey("When there are no counts at all", func() {
			var buf bytes.Buffer
			err := report.RenderChart(&buf, nil, "R Dey")

			Convey("Then it should refuse with the no-data sentinel", func() {
				So(err, ShouldWrap, report.ErrNoData)
				So(buf.Len(), ShouldEqual, 0)
			})
		})
	})
}
