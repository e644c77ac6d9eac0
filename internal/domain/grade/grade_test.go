package grade_test

import (
	"testing"

	"github.com/avasisht/gradelens/internal/domain/grade"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGradeEnumeration(t *testing.T) {
	Convey("Given the canonical grade enumeration", t, func() {
		grades := grade.Canonical()

		Convey("Then it should contain the twelve allowed grades in order", func() {
			So(grades, ShouldResemble, []grade.Grade{
				grade.AStar, grade.A, grade.BPlus, grade.B,
				grade.CPlus, grade.C, grade.DPlus, grade.D,
				grade.E, grade.F, grade.S, grade.X,
			})
		})

		Convey("And mutating the returned slice should not affect the enumeration", func() {
			grades[0] = grade.X
			So(grade.Canonical()[0], ShouldEqual, grade.AStar)
		})
	})
}

func TestGradePoints(t *testing.T) {
	Convey("Given the grade-point mapping", t, func() {
		Convey("Then every weighted grade should carry its fixed value", func() {
			expected := map[grade.Grade]float64{
				grade.AStar: 10, grade.A: 10, grade.BPlus: 9, grade.B: 8,
				grade.CPlus: 7, grade.C: 6, grade.DPlus: 5, grade.D: 4,
				grade.E: 0, grade.F: 0,
			}
			for g, want := range expected {
				pts, ok := grade.Points(g)
				So(ok, ShouldBeTrue)
				So(pts, ShouldEqual, want)
			}
		})

		Convey("And S and X should carry no weight at all", func() {
			_, ok := grade.Points(grade.S)
			So(ok, ShouldBeFalse)
			_, ok = grade.Points(grade.X)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestGradeParse(t *testing.T) {
	Convey("Given raw grade text", t, func() {
		Convey("When the text names an allowed grade", func() {
			g, ok := grade.Parse(" B+ ")

			Convey("Then it should parse with trimming", func() {
				So(ok, ShouldBeTrue)
				So(g, ShouldEqual, grade.BPlus)
			})
		})

		Convey("When the text is outside the enumeration", func() {
			for _, raw := range []string{"", "A-", "Z", "pass", "a"} {
				_, ok := grade.Parse(raw)
				So(ok, ShouldBeFalse)
				So(grade.IsAllowed(raw), ShouldBeFalse)
			}
		})
	})
}
