package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	service "github.com/okian/matchclock/internal/app"
	"github.com/okian/matchclock/internal/domain/countdown"
	"github.com/okian/matchclock/internal/domain/model"
	"github.com/okian/matchclock/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

var errDown = errors.New("connection refused")

type fakeSource struct {
	matches []model.Match
	byID    map[string]model.Match
	err     error
}

func (f *fakeSource) UpcomingMatches(context.Context) ([]model.Match, error) {
	return f.matches, f.err
}

func (f *fakeSource) Match(_ context.Context, id string) (model.Match, error) {
	if f.err != nil {
		return model.Match{}, f.err
	}
	m, ok := f.byID[id]
	if !ok {
		return model.Match{}, errors.New("not found")
	}
	return m, nil
}

func (f *fakeSource) Teams(context.Context) ([]model.Team, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []model.Team{{Name: "Sentinels", Tag: "SEN", VLRID: "2"}}, nil
}

func (f *fakeSource) Team(_ context.Context, id string) (model.Team, error) {
	return model.Team{Name: "Sentinels", VLRID: id}, f.err
}

func (f *fakeSource) Player(_ context.Context, id string) (model.Player, error) {
	return model.Player{IGN: "TenZ", VLRID: id}, f.err
}

func TestService_UpcomingMatches(t *testing.T) {
	Convey("Given a service with a frozen clock", t, func() {
		now := time.Date(2025, time.June, 14, 18, 0, 0, 0, time.UTC)
		clock := clockwork.NewFakeClockAt(now)
		src := &fakeSource{matches: []model.Match{
			{VLRID: "1", Team1: "SEN", Team2: "C9", DatePlayed: now.Add(-30 * time.Minute).Format(time.RFC3339)},
			{VLRID: "2", Team1: "TH", Team2: "FNC", DatePlayed: now.Add(12 * time.Minute).Format(time.RFC3339)},
			{VLRID: "3", Team1: "PRX", Team2: "DRX", DatePlayed: now.Add(90000 * time.Second).Format(time.RFC3339)},
			{VLRID: "4", Team1: "EDG", Team2: "BLG", DatePlayed: "TBD"},
		}}
		svc := service.New(src, service.WithClock(clock), service.WithLogger(logger.Nop()))
		ctx := context.Background()

		Convey("When listing upcoming matches", func() {
			list, err := svc.UpcomingMatches(ctx)

			Convey("Then each parseable match should carry its countdown", func() {
				So(err, ShouldBeNil)
				So(list, ShouldHaveLength, 3)

				So(list[0].VLRID, ShouldEqual, "1")
				So(list[0].Countdown, ShouldResemble, countdown.Breakdown{})
				So(list[0].Phrase, ShouldEqual, "Game Started")
				So(list[0].Status, ShouldEqual, model.StatusStarted)

				So(list[1].Countdown, ShouldResemble, countdown.Breakdown{Minutes: 12})
				So(list[1].Phrase, ShouldEqual, "Starting in: 12 minutes")

				So(list[2].Countdown, ShouldResemble, countdown.Breakdown{Days: 1, Hours: 1})
				So(list[2].Phrase, ShouldEqual, "Starting in: 1d 1h")
			})

			Convey("And the invalid record should be counted", func() {
				stats := svc.GetStats()
				So(stats["invalidStarts"], ShouldEqual, int64(1))
				So(stats["lastListed"], ShouldEqual, int64(3))
				So(stats["countdownsComputed"], ShouldEqual, int64(3))
			})
		})

		Convey("When listing twice without the clock moving", func() {
			first, err1 := svc.UpcomingMatches(ctx)
			second, err2 := svc.UpcomingMatches(ctx)

			Convey("Then the results should be identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(first, ShouldResemble, second)
			})
		})

		Convey("When the clock moves forward", func() {
			clock.Advance(15 * time.Minute)
			list, err := svc.UpcomingMatches(ctx)

			Convey("Then countdowns should shrink", func() {
				So(err, ShouldBeNil)
				So(list[1].Phrase, ShouldEqual, "Game Started")
				So(list[2].Countdown, ShouldResemble, countdown.Breakdown{Days: 1, Hours: 0, Minutes: 45})
			})

			Convey("And uptime should follow the clock", func() {
				So(svc.GetStats()["uptimeSeconds"], ShouldEqual, int64(900))
			})
		})

		Convey("When the source fails", func() {
			src.err = errDown
			_, err := svc.UpcomingMatches(ctx)

			Convey("Then the error should be wrapped and counted", func() {
				So(errors.Is(err, errDown), ShouldBeTrue)
				So(svc.GetStats()["upstreamErrors"], ShouldEqual, int64(1))
			})
		})
	})
}

func TestService_Match(t *testing.T) {
	Convey("Given a service with one known match", t, func() {
		now := time.Date(2025, time.June, 14, 18, 0, 0, 0, time.UTC)
		src := &fakeSource{byID: map[string]model.Match{
			"10": {VLRID: "10", DatePlayed: now.Add(3661 * time.Second).Format(time.RFC3339)},
			"11": {VLRID: "11", DatePlayed: ""},
		}}
		svc := service.New(src, service.WithClock(clockwork.NewFakeClockAt(now)), service.WithLogger(logger.Nop()))
		ctx := context.Background()

		Convey("When fetching it", func() {
			m, err := svc.Match(ctx, "10")

			Convey("Then it should carry the countdown", func() {
				So(err, ShouldBeNil)
				So(m.Countdown, ShouldResemble, countdown.Breakdown{Hours: 1, Minutes: 1})
				So(m.StartsAt.Equal(now.Add(3661*time.Second)), ShouldBeTrue)
			})
		})

		Convey("When its start is missing", func() {
			_, err := svc.Match(ctx, "11")

			Convey("Then it should report an invalid start", func() {
				So(errors.Is(err, model.ErrInvalidStart), ShouldBeTrue)
			})
		})

		Convey("When fetching an unknown match", func() {
			_, err := svc.Match(ctx, "99")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestService_PassThrough(t *testing.T) {
	Convey("Given a service", t, func() {
		src := &fakeSource{}
		svc := service.New(src, service.WithLogger(logger.Nop()))
		ctx := context.Background()

		Convey("When reading teams and players", func() {
			teams, err := svc.Teams(ctx)
			So(err, ShouldBeNil)
			So(teams, ShouldHaveLength, 1)

			team, err := svc.Team(ctx, "2")
			So(err, ShouldBeNil)
			So(team.VLRID, ShouldEqual, "2")

			player, err := svc.Player(ctx, "9")
			So(err, ShouldBeNil)
			So(player.IGN, ShouldEqual, "TenZ")
		})

		Convey("When the source is down", func() {
			src.err = errDown

			_, err := svc.Teams(ctx)
			So(errors.Is(err, errDown), ShouldBeTrue)
			_, err = svc.Player(ctx, "9")
			So(errors.Is(err, errDown), ShouldBeTrue)
		})

		Convey("When created without a logger option", func() {
			So(func() { service.New(src) }, ShouldNotPanic)
		})
	})
}
