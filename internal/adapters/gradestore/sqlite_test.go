package gradestore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/avasisht/gradelens/internal/adapters/gradestore"
	"github.com/avasisht/gradelens/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSQLiteStore(t *testing.T) {
	Convey("Given a SQLite grade store", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "grades.db")

		store, err := gradestore.OpenSQLite(path)
		So(err, ShouldBeNil)
		defer store.Close()

		Convey("When the store is fresh", func() {
			records, err := store.Load(ctx)

			Convey("Then it should load empty without error", func() {
				So(err, ShouldBeNil)
				So(records, ShouldBeEmpty)
			})
		})

		Convey("When importing grade records", func() {
			input := []model.GradeRecord{
				{Year: "2023-24", Semester: "1", Course: "CS101", Grade: "A", Count: 10},
				{Year: "2023-24", Semester: "1", Course: "CS101", Grade: "B", Count: 5},
				{Year: "2022-23", Semester: "2", Course: "EE250", Grade: "S", Count: 2},
			}
			So(store.Import(ctx, input), ShouldBeNil)

			Convey("Then Load returns every row in key order", func() {
				records, err := store.Load(ctx)
				So(err, ShouldBeNil)
				So(records, ShouldResemble, []model.GradeRecord{
					{Year: "2022-23", Semester: "2", Course: "EE250", Grade: "S", Count: 2},
					{Year: "2023-24", Semester: "1", Course: "CS101", Grade: "A", Count: 10},
					{Year: "2023-24", Semester: "1", Course: "CS101", Grade: "B", Count: 5},
				})
			})

			Convey("And re-importing the same keys upserts instead of duplicating", func() {
				updated := []model.GradeRecord{
					{Year: "2023-24", Semester: "1", Course: "CS101", Grade: "A", Count: 12},
				}
				So(store.Import(ctx, updated), ShouldBeNil)

				records, err := store.Load(ctx)
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 3)
				So(records[1].Count, ShouldEqual, 12)
			})
		})
	})
}
