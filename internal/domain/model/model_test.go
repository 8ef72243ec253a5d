package model_test

import (
	"testing"

	model "github.com/okian/attendsync/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestStatus(t *testing.T) {
	convey.Convey("Given attendance statuses", t, func() {
		convey.Convey("When rendering labels", func() {
			convey.Convey("Then each status has its roster label", func() {
				convey.So(model.StatusUnset.String(), convey.ShouldEqual, "")
				convey.So(model.StatusSuccessful.String(), convey.ShouldEqual, "Successful")
				convey.So(model.StatusUnsuccessful.String(), convey.ShouldEqual, "Unsuccessful")
				convey.So(model.StatusNoShow.String(), convey.ShouldEqual, "No Show")
			})
		})

		convey.Convey("When parsing labels", func() {
			convey.Convey("Then parsing is case-insensitive and tolerant of spacing", func() {
				convey.So(model.ParseStatus(" successful "), convey.ShouldEqual, model.StatusSuccessful)
				convey.So(model.ParseStatus("UNSUCCESSFUL"), convey.ShouldEqual, model.StatusUnsuccessful)
				convey.So(model.ParseStatus("No Show"), convey.ShouldEqual, model.StatusNoShow)
				convey.So(model.ParseStatus("no_show"), convey.ShouldEqual, model.StatusNoShow)
				convey.So(model.ParseStatus("Registered"), convey.ShouldEqual, model.StatusUnset)
			})
		})

		convey.Convey("When round-tripping through text", func() {
			var s model.Status
			b, err := model.StatusNoShow.MarshalText()
			convey.So(err, convey.ShouldBeNil)
			convey.So(s.UnmarshalText(b), convey.ShouldBeNil)

			convey.Convey("Then the status is preserved", func() {
				convey.So(s, convey.ShouldEqual, model.StatusNoShow)
			})
		})
	})
}

func TestFullName(t *testing.T) {
	convey.Convey("Given given and family name fields", t, func() {
		convey.Convey("Then they are joined with a single space", func() {
			convey.So(model.FullName("Jane", "Smith"), convey.ShouldEqual, "Jane Smith")
			convey.So(model.FullName(" Jane ", " Smith "), convey.ShouldEqual, "Jane Smith")
		})

		convey.Convey("Then a missing part yields the other part", func() {
			convey.So(model.FullName("", "Smith"), convey.ShouldEqual, "Smith")
			convey.So(model.FullName("Jane", ""), convey.ShouldEqual, "Jane")
		})

		convey.Convey("Then two empty parts yield an empty name", func() {
			convey.So(model.FullName(" ", ""), convey.ShouldEqual, "")
		})
	})
}
