package page_test

import (
	"testing"

	"github.com/avasisht/gradelens/internal/adapters/page"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseTable(t *testing.T) {
	Convey("Given rendered page source", t, func() {
		Convey("When the document contains a course table", func() {
			src := `<html><body>
				<table>
					<tr><th>ACADEMIC YEAR</th><th>SEM</th><th>COURSE NAME</th></tr>
					<tr><td> 2023-24 </td><td>1</td><td>CS101
						Introduction</td></tr>
				</table>
			</body></html>`

			snapshot, err := page.ParseTable(src)

			Convey("Then rows and collapsed cell text come back in order", func() {
				So(err, ShouldBeNil)
				So(snapshot.Rows, ShouldHaveLength, 2)
				So(snapshot.Rows[0], ShouldResemble, []string{"ACADEMIC YEAR", "SEM", "COURSE NAME"})
				So(snapshot.Rows[1], ShouldResemble, []string{"2023-24", "1", "CS101 Introduction"})
			})
		})

		Convey("When the document has several tables", func() {
			src := `<table><tr><td>first</td></tr></table>
				<table><tr><td>second</td></tr></table>`

			snapshot, err := page.ParseTable(src)

			Convey("Then only the first table is parsed", func() {
				So(err, ShouldBeNil)
				So(snapshot.Rows, ShouldResemble, [][]string{{"first"}})
			})
		})

		Convey("When the document has no table", func() {
			_, err := page.ParseTable(`<html><body><p>loading...</p></body></html>`)

			Convey("Then it should report no table", func() {
				So(err, ShouldWrap, page.ErrNoTable)
			})
		})

		Convey("When the table is empty", func() {
			_, err := page.ParseTable(`<table></table>`)

			Convey("Then it should report no table", func() {
				So(err, ShouldWrap, page.ErrNoTable)
			})
		})
	})
}
