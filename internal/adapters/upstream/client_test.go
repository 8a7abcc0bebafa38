package upstream_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/matchclock/internal/adapters/upstream"
	"github.com/okian/matchclock/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const upcomingBody = `[
	{"event":"VCT Americas","team1_id":"2","team2_id":"188","team1":"Sentinels","team2":"Cloud9",
	 "team1_logo":"https://owcdn.net/img/sen.png","team2_logo":"https://owcdn.net/img/c9.png",
	 "date_played":"2025-06-14T20:00:00Z","vlr_id":"500100","is_finished":false,"team1_score":0,"team2_score":0},
	{"event":"VCT EMEA","team1_id":"1001","team2_id":"2593","team1":"Team Heretics","team2":"FNATIC",
	 "team1_logo":"","team2_logo":"","date_played":"2025-06-15T17:00:00Z","vlr_id":"500101",
	 "is_finished":false,"team1_score":0,"team2_score":0}
]`

func newUpstream(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/upcoming_matches", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(upcomingBody))
	})
	mux.HandleFunc("GET /api/matches", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("GET /api/match/{id}", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if r.PathValue("id") != "500100" {
			http.Error(w, `{"detail":"No Match matches the given query."}`, http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"team1":"Sentinels","team2":"Cloud9","vlr_id":"500100","date_played":"2025-06-14T20:00:00Z"}`))
	})
	mux.HandleFunc("GET /api/teams", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"name":"Sentinels","team_tag":"SEN","team_rating":1870,"vlr_id":"2","last_updated":"2025-06-01T00:00:00Z"}]`))
	})
	mux.HandleFunc("GET /api/team/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"Sentinels","team_tag":"SEN","team_rating":1870,"vlr_id":"2"}`))
	})
	mux.HandleFunc("GET /api/player/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ign":"TenZ","real_name":"Tyson Ngo","team":"2","vlr_id":"9"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient(t *testing.T) {
	Convey("Given a client pointed at a match API", t, func() {
		var hits int32
		srv := newUpstream(t, &hits)
		client := upstream.New(srv.URL+"/api/", upstream.WithLogger(logger.Nop()))
		ctx := context.Background()

		Convey("When fetching upcoming matches", func() {
			matches, err := client.UpcomingMatches(ctx)

			Convey("Then the list should decode in order", func() {
				So(err, ShouldBeNil)
				So(matches, ShouldHaveLength, 2)
				So(matches[0].Team1, ShouldEqual, "Sentinels")
				So(matches[0].Team2Logo, ShouldEqual, "https://owcdn.net/img/c9.png")
				So(matches[1].VLRID, ShouldEqual, "500101")
			})

			Convey("And exactly one request should be made", func() {
				So(atomic.LoadInt32(&hits), ShouldEqual, 1)
			})
		})

		Convey("When fetching all matches", func() {
			matches, err := client.Matches(ctx)
			So(err, ShouldBeNil)
			So(matches, ShouldBeEmpty)
		})

		Convey("When fetching a known match", func() {
			m, err := client.Match(ctx, "500100")
			So(err, ShouldBeNil)
			So(m.Team2, ShouldEqual, "Cloud9")
		})

		Convey("When fetching an unknown match", func() {
			_, err := client.Match(ctx, "1")

			Convey("Then it should report not found", func() {
				So(errors.Is(err, upstream.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When fetching teams and players", func() {
			teams, err := client.Teams(ctx)
			So(err, ShouldBeNil)
			So(teams, ShouldHaveLength, 1)
			So(teams[0].Tag, ShouldEqual, "SEN")

			team, err := client.Team(ctx, "2")
			So(err, ShouldBeNil)
			So(team.Rating, ShouldEqual, 1870)

			player, err := client.Player(ctx, "9")
			So(err, ShouldBeNil)
			So(player.IGN, ShouldEqual, "TenZ")
		})
	})
}

func TestClientFailures(t *testing.T) {
	Convey("Given a match API that misbehaves", t, func() {
		ctx := context.Background()

		Convey("When it returns a server error", func() {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				http.Error(w, "database is down", http.StatusInternalServerError)
			}))
			defer srv.Close()
			client := upstream.New(srv.URL, upstream.WithLogger(logger.Nop()))

			_, err := client.UpcomingMatches(ctx)

			Convey("Then it should fail once without retrying", func() {
				So(errors.Is(err, upstream.ErrUpstream), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "status 500")
				So(err.Error(), ShouldContainSubstring, "database is down")
				So(atomic.LoadInt32(&calls), ShouldEqual, 1)
			})
		})

		Convey("When it returns malformed JSON", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{not json`))
			}))
			defer srv.Close()
			client := upstream.New(srv.URL, upstream.WithLogger(logger.Nop()))

			_, err := client.UpcomingMatches(ctx)

			Convey("Then it should report a decode error", func() {
				So(errors.Is(err, upstream.ErrDecode), ShouldBeTrue)
			})
		})

		Convey("When it is slower than the timeout", func() {
			release := make(chan struct{})
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-release:
				case <-r.Context().Done():
				}
			}))
			defer srv.Close()
			defer close(release)
			client := upstream.New(srv.URL,
				upstream.WithLogger(logger.Nop()),
				upstream.WithTimeout(50*time.Millisecond),
			)

			_, err := client.UpcomingMatches(ctx)

			Convey("Then it should give up with an upstream error", func() {
				So(errors.Is(err, upstream.ErrUpstream), ShouldBeTrue)
			})
		})

		Convey("When the caller cancels", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[]`))
			}))
			defer srv.Close()
			client := upstream.New(srv.URL, upstream.WithLogger(logger.Nop()))
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			_, err := client.UpcomingMatches(cctx)

			Convey("Then the context error should be kept in the chain", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})

		Convey("When custom headers are configured", func() {
			var got string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get("User-Agent")
				_, _ = w.Write([]byte(`[]`))
			}))
			defer srv.Close()
			client := upstream.New(srv.URL,
				upstream.WithLogger(logger.Nop()),
				upstream.WithHeader("User-Agent", "matchclock/test"),
			)

			_, err := client.UpcomingMatches(ctx)

			Convey("Then they should be sent", func() {
				So(err, ShouldBeNil)
				So(got, ShouldEqual, "matchclock/test")
			})
		})
	})
}
