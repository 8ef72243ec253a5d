package resolve_test

import (
	"testing"

	"github.com/okian/attendsync/internal/domain/resolve"
	. "github.com/smartystreets/goconvey/convey"
)

// constantScorer scores every pair the same so tie-breaking is observable.
func constantScorer(v float64) func(a, b string) float64 {
	return func(_, _ string) float64 { return v }
}

func TestResolver_Resolve(t *testing.T) {
	Convey("Given a resolver with the default scorer", t, func() {
		r := resolve.New()
		candidates := []string{"Jane Smyth", "John Doe", "Maria Garcia"}

		Convey("When the query closely matches a candidate", func() {
			m, ok := r.Resolve("Jane Smith", candidates, 80)

			Convey("Then that candidate is returned with its score", func() {
				So(ok, ShouldBeTrue)
				So(m.Candidate, ShouldEqual, "Jane Smyth")
				So(m.Index, ShouldEqual, 0)
				So(m.Score, ShouldEqual, 90)
			})
		})

		Convey("When no candidate reaches the threshold", func() {
			m, ok := r.Resolve("Unknown Person", candidates, 80)

			Convey("Then there is no match", func() {
				So(ok, ShouldBeFalse)
				So(m, ShouldResemble, resolve.Match{})
			})
		})

		Convey("When the best score equals the threshold", func() {
			_, ok := r.Resolve("Jane Smith", candidates, 90)

			Convey("Then the threshold is inclusive", func() {
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When the candidate list is empty", func() {
			Convey("Then there is never a match", func() {
				for _, th := range []float64{0, 50, 100} {
					_, ok := r.Resolve("Jane Smith", nil, th)
					So(ok, ShouldBeFalse)
					_, ok = r.Resolve("", []string{}, th)
					So(ok, ShouldBeFalse)
				}
			})
		})

		Convey("When the threshold is 0", func() {
			m, ok := r.Resolve("zzz", []string{"abc", "def"}, 0)

			Convey("Then the first best candidate always matches", func() {
				So(ok, ShouldBeTrue)
				So(m.Candidate, ShouldEqual, "abc")
				So(m.Score, ShouldEqual, 0)
			})
		})

		Convey("When resolving repeatedly", func() {
			first, _ := r.Resolve("Maria Garsia", candidates, 50)
			second, _ := r.Resolve("Maria Garsia", candidates, 50)

			Convey("Then the result is deterministic", func() {
				So(second, ShouldResemble, first)
				So(first.Candidate, ShouldEqual, "Maria Garcia")
			})
		})
	})

	Convey("Given a resolver whose scorer ties every candidate", t, func() {
		r := resolve.New(resolve.WithScorer(constantScorer(75)))

		Convey("When several candidates share the top score", func() {
			m, ok := r.Resolve("anyone", []string{"first", "second", "third"}, 70)

			Convey("Then the first candidate seen wins", func() {
				So(ok, ShouldBeTrue)
				So(m.Candidate, ShouldEqual, "first")
				So(m.Index, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a nil scorer option", t, func() {
		r := resolve.New(resolve.WithScorer(nil))

		Convey("Then the default scorer is kept", func() {
			m, ok := r.Resolve("Smith Jane", []string{"Jane Smith"}, 100)
			So(ok, ShouldBeTrue)
			So(m.Score, ShouldEqual, 100)
		})
	})
}
