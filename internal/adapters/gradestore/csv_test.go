package gradestore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/avasisht/gradelens/internal/adapters/gradestore"
	"github.com/avasisht/gradelens/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grades.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func TestCSVStore_Load(t *testing.T) {
	Convey("Given a CSV grade store", t, func() {
		ctx := context.Background()

		Convey("When loading a well-formed file", func() {
			path := writeTempCSV(t, "Year,Semester,Course,Grade,Count\n"+
				"2023-24,1,CS101,A,10\n"+
				"2023-24,1,CS101,B,5\n")

			records, err := gradestore.NewCSVStore(path).Load(ctx)

			Convey("Then all rows come back typed", func() {
				So(err, ShouldBeNil)
				So(records, ShouldResemble, []model.GradeRecord{
					{Year: "2023-24", Semester: "1", Course: "CS101", Grade: "A", Count: 10},
					{Year: "2023-24", Semester: "1", Course: "CS101", Grade: "B", Count: 5},
				})
			})
		})

		Convey("When the columns are reordered with extras present", func() {
			path := writeTempCSV(t, "Count,Course,Grade,Semester,Year,Instructor\n"+
				"7,EE250,B+,2,2022-23,R Dey\n")

			records, err := gradestore.NewCSVStore(path).Load(ctx)

			Convey("Then header addressing still finds every field", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 1)
				So(records[0].Course, ShouldEqual, "EE250")
				So(records[0].Count, ShouldEqual, 7)
			})
		})

		Convey("When the file is missing", func() {
			_, err := gradestore.NewCSVStore(filepath.Join(t.TempDir(), "absent.csv")).Load(ctx)

			Convey("Then it should fail as a data source error", func() {
				So(err, ShouldWrap, gradestore.ErrDataSource)
			})
		})

		Convey("When a required column is missing", func() {
			path := writeTempCSV(t, "Year,Semester,Course,Grade\n2023-24,1,CS101,A\n")

			_, err := gradestore.NewCSVStore(path).Load(ctx)

			Convey("Then it should fail as a data source error", func() {
				So(err, ShouldWrap, gradestore.ErrDataSource)
			})
		})

		Convey("When a count is not a non-negative integer", func() {
			Convey("Non-numeric", func() {
				path := writeTempCSV(t, "Year,Semester,Course,Grade,Count\n2023-24,1,CS101,A,many\n")
				_, err := gradestore.NewCSVStore(path).Load(ctx)
				So(err, ShouldWrap, gradestore.ErrDataSource)
			})

			Convey("Negative", func() {
				path := writeTempCSV(t, "Year,Semester,Course,Grade,Count\n2023-24,1,CS101,A,-3\n")
				_, err := gradestore.NewCSVStore(path).Load(ctx)
				So(err, ShouldWrap, gradestore.ErrDataSource)
			})
		})
	})
}
