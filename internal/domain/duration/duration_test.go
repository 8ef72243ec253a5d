package duration_test

import (
	"testing"

	"github.com/okian/attendsync/internal/domain/duration"
	"github.com/okian/attendsync/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTotal(t *testing.T) {
	Convey("Given export records with a rejoining attendee", t, func() {
		records := []model.SourceRecord{
			{Name: "Jane Smyth", Duration: 30},
			{Name: "John Doe", Duration: 12.5},
			{Name: "Jane Smyth", Duration: 25},
			{Name: "jane smyth", Duration: 100},
		}

		Convey("When totalling a repeated name", func() {
			Convey("Then every segment with the exact name is summed", func() {
				So(duration.Total("Jane Smyth", records), ShouldEqual, 55)
				So(duration.Total("John Doe", records), ShouldEqual, 12.5)
			})

			Convey("And names differing only by case are not merged", func() {
				So(duration.Total("jane smyth", records), ShouldEqual, 100)
			})
		})

		Convey("When totalling an absent name", func() {
			Convey("Then the total is 0", func() {
				So(duration.Total("Nobody", records), ShouldEqual, 0)
				So(duration.Total("Jane Smyth", nil), ShouldEqual, 0)
			})
		})
	})
}

func TestIndex(t *testing.T) {
	Convey("Given an index over export records", t, func() {
		records := []model.SourceRecord{
			{Name: "B", Duration: 1},
			{Name: "A", Duration: 2},
			{Name: "B", Duration: 3},
			{Name: "C", Duration: 0},
			{Name: "A", Duration: 4},
		}
		idx := duration.NewIndex(records)

		Convey("Then distinct names keep their first-appearance order", func() {
			So(idx.Names(), ShouldResemble, []string{"B", "A", "C"})
			So(idx.Len(), ShouldEqual, 3)
		})

		Convey("Then totals agree with Total for every name", func() {
			for _, name := range []string{"A", "B", "C", "missing"} {
				So(idx.Total(name), ShouldEqual, duration.Total(name, records))
			}
		})
	})

	Convey("Given an index over no records", t, func() {
		idx := duration.NewIndex(nil)

		Convey("Then it is empty", func() {
			So(idx.Len(), ShouldEqual, 0)
			So(idx.Names(), ShouldBeEmpty)
			So(idx.Total("x"), ShouldEqual, 0)
		})
	})
}
