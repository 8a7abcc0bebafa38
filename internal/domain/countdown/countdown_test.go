package countdown_test

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/okian/matchclock/internal/domain/countdown"
	. "github.com/smartystreets/goconvey/convey"
)

var epoch = time.Date(2025, time.June, 14, 18, 0, 0, 0, time.UTC)

func TestCompute(t *testing.T) {
	Convey("Given a fixed now", t, func() {
		now := epoch

		Convey("When the target is 1 day and 1 hour away", func() {
			b := countdown.Compute(now.Add(90000*time.Second), now)

			Convey("Then it should break down to 1d 1h 0m", func() {
				So(b, ShouldResemble, countdown.Breakdown{Days: 1, Hours: 1, Minutes: 0})
			})
		})

		Convey("When the target is 3661 seconds away", func() {
			b := countdown.Compute(now.Add(3661*time.Second), now)

			Convey("Then it should break down to 0d 1h 1m", func() {
				So(b, ShouldResemble, countdown.Breakdown{Days: 0, Hours: 1, Minutes: 1})
			})
		})

		Convey("When the target is 45 seconds away", func() {
			b := countdown.Compute(now.Add(45*time.Second), now)

			Convey("Then minutes should floor to zero", func() {
				So(b, ShouldResemble, countdown.Breakdown{})
			})
		})

		Convey("When the target equals now", func() {
			So(countdown.Compute(now, now), ShouldResemble, countdown.Breakdown{})
		})

		Convey("When the target is in the past", func() {
			past := []time.Duration{
				-400 * time.Millisecond,
				-time.Second,
				-59 * time.Second,
				-time.Hour,
				-(time.Hour + 30*time.Minute),
				-86401 * time.Second,
				-30 * 24 * time.Hour,
			}

			Convey("Then every field should be zero", func() {
				for _, d := range past {
					So(countdown.Compute(now.Add(d), now), ShouldResemble, countdown.Breakdown{})
				}
			})
		})

		Convey("When the difference is not a whole second", func() {
			Convey("Then half a second should round up", func() {
				b := countdown.Compute(now.Add(59*time.Second+500*time.Millisecond), now)
				So(b.Minutes, ShouldEqual, 1)
			})

			Convey("And just under half a second should round down", func() {
				b := countdown.Compute(now.Add(59*time.Second+499*time.Millisecond), now)
				So(b.Minutes, ShouldEqual, 0)
			})

			Convey("And sub-millisecond precision should be ignored", func() {
				b := countdown.Compute(now.Add(60*time.Second+999*time.Microsecond), now)
				So(b.Minutes, ShouldEqual, 1)
			})
		})

		Convey("When the target is several days away", func() {
			b := countdown.Compute(now.Add(3*24*time.Hour+23*time.Hour+59*time.Minute+59*time.Second), now)

			Convey("Then each unit should carry its remainder", func() {
				So(b, ShouldResemble, countdown.Breakdown{Days: 3, Hours: 23, Minutes: 59})
			})
		})

		Convey("When the instants are in different zones", func() {
			tokyo := time.FixedZone("JST", 9*60*60)
			b := countdown.Compute(now.Add(2*time.Hour).In(tokyo), now)

			Convey("Then only the absolute difference should matter", func() {
				So(b, ShouldResemble, countdown.Breakdown{Hours: 2})
			})
		})
	})
}

func TestUntil(t *testing.T) {
	Convey("Given a frozen clock", t, func() {
		clock := clockwork.NewFakeClockAt(epoch)
		target := epoch.Add(26*time.Hour + 5*time.Minute)

		Convey("When computing twice", func() {
			first := countdown.Until(clock, target)
			second := countdown.Until(clock, target)

			Convey("Then the results should be identical", func() {
				So(first, ShouldResemble, second)
				So(first, ShouldResemble, countdown.Breakdown{Days: 1, Hours: 2, Minutes: 5})
			})
		})

		Convey("When the clock advances past the target", func() {
			clock.Advance(27 * time.Hour)

			Convey("Then the countdown should be zero", func() {
				So(countdown.Until(clock, target).Started(), ShouldBeTrue)
			})
		})
	})
}

func TestMonotonicity(t *testing.T) {
	Convey("Given growing gaps between now and target", t, func() {
		now := epoch
		var prev int64 = -1

		Convey("Then the represented total should never decrease", func() {
			for gap := time.Duration(0); gap <= 10*24*time.Hour; gap += 17 * time.Minute {
				b := countdown.Compute(now.Add(gap), now)
				total := b.Seconds()

				So(total, ShouldBeGreaterThanOrEqualTo, prev)
				So(total, ShouldBeLessThanOrEqualTo, int64(gap/time.Second))
				So(int64(gap/time.Second)-total, ShouldBeLessThan, 60)
				prev = total
			}
		})
	})
}

func TestPhrase(t *testing.T) {
	Convey("Given breakdowns for the match list", t, func() {
		Convey("When days or hours remain", func() {
			So(countdown.Phrase(countdown.Breakdown{Days: 2, Hours: 0, Minutes: 30}), ShouldEqual, "Starting in: 2d 0h")
			So(countdown.Phrase(countdown.Breakdown{Days: 0, Hours: 5, Minutes: 1}), ShouldEqual, "Starting in: 0d 5h")
		})

		Convey("When only minutes remain", func() {
			So(countdown.Phrase(countdown.Breakdown{Minutes: 12}), ShouldEqual, "Starting in: 12 minutes")
		})

		Convey("When nothing remains", func() {
			b := countdown.Breakdown{}
			So(countdown.Phrase(b), ShouldEqual, "Game Started")
			So(b.String(), ShouldEqual, "Game Started")
			So(b.Started(), ShouldBeTrue)
		})
	})
}
