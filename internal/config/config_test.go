package config_test

import (
	"testing"

	"github.com/avasisht/gradelens/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.BaseURL, convey.ShouldEqual, "http://172.26.142.68/dccourse/")
			convey.So(cfg.InstructorField, convey.ShouldEqual, "instructname")
			convey.So(cfg.SubmitField, convey.ShouldEqual, "showlist")
			convey.So(cfg.ResultsFrame, convey.ShouldEqual, "stu_course")
			convey.So(cfg.YearHeader, convey.ShouldEqual, "ACADEMIC YEAR")
			convey.So(cfg.SemHeader, convey.ShouldEqual, "SEM")
			convey.So(cfg.CourseHeader, convey.ShouldEqual, "COURSE NAME")
			convey.So(cfg.GradesDriver, convey.ShouldEqual, config.DriverCSV)
			convey.So(cfg.GradesPath, convey.ShouldEqual, "grades.csv")
			convey.So(cfg.MaxWaitSeconds, convey.ShouldEqual, 60)
			convey.So(cfg.StableForSeconds, convey.ShouldEqual, 6)
			convey.So(cfg.PollIntervalMS, convey.ShouldEqual, 1000)
		})

		convey.Convey("Then optional surfaces should start disabled", func() {
			convey.So(cfg.ChartPath, convey.ShouldBeEmpty)
			convey.So(cfg.MetricsAddr, convey.ShouldBeEmpty)
		})
	})
}
