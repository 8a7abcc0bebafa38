package fakeapi

import (
	"crypto/rand"
	"math/big"
	"sort"
	"strconv"
	"time"

	"github.com/okian/matchclock/internal/domain/model"
)

const (
	firstMatchID  = 498600
	firstPlayerID = 9000
	minRating     = 1400
	ratingRange   = 700
	logoURLPrefix = "https://owcdn.net/img/"
)

var teamPool = []struct{ name, tag string }{
	{"Sentinels", "SEN"}, {"G2 Esports", "G2"}, {"FNATIC", "FNC"}, {"Team Heretics", "TH"},
	{"Paper Rex", "PRX"}, {"DRX", "DRX"}, {"EDward Gaming", "EDG"}, {"Trace Esports", "TE"},
	{"MIBR", "MIBR"}, {"Team Liquid", "TL"}, {"Gen.G", "GEN"}, {"T1", "T1"},
}

var eventPool = []string{
	"Champions Tour 2025: Masters Toronto",
	"Champions Tour 2025: Americas Stage 2",
	"Champions Tour 2025: EMEA Stage 2",
	"Champions Tour 2025: Pacific Stage 2",
}

// Dataset is one generated snapshot of the match API.
type Dataset struct {
	Matches []model.Match
	Teams   []model.Team
	Players []model.Player
}

// randInt returns a uniform int in [0, n) using crypto/rand.
func randInt(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// Generate builds a dataset whose matches start around now. Matches are
// ordered by date_played ascending, like the scraper backend.
func Generate(cfg Config, now time.Time) Dataset {
	stamp := now.UTC().Format(time.RFC3339)

	teams := make([]model.Team, len(teamPool))
	players := make([]model.Player, 0, len(teamPool))
	for i, t := range teamPool {
		teams[i] = model.Team{
			Name:        t.name,
			Tag:         t.tag,
			Rating:      minRating + randInt(ratingRange),
			VLRID:       strconv.Itoa(i + 1),
			LastUpdated: stamp,
		}
		players = append(players, model.Player{
			IGN:         t.tag + "_igl",
			RealName:    t.name + " Captain",
			Team:        t.name,
			VLRID:       strconv.Itoa(firstPlayerID + i),
			LastUpdated: stamp,
		})
	}
	sort.SliceStable(teams, func(i, j int) bool { return teams[i].Rating > teams[j].Rating })

	n := cfg.NumMatches
	if n < 0 {
		n = 0
	}
	past := int64(cfg.Spread / 8 / time.Second)
	window := int64(cfg.Spread/time.Second) + past
	matches := make([]model.Match, n)
	for i := range matches {
		a := randInt(len(teamPool))
		b := (a + 1 + randInt(len(teamPool)-1)) % len(teamPool)
		offset := time.Duration(int64(randInt(int(window)))-past) * time.Second
		matches[i] = model.Match{
			Event:      eventPool[randInt(len(eventPool))],
			Team1ID:    strconv.Itoa(a + 1),
			Team2ID:    strconv.Itoa(b + 1),
			Team1:      teamPool[a].name,
			Team2:      teamPool[b].name,
			Team1Logo:  logoURLPrefix + teamPool[a].tag + ".png",
			Team2Logo:  logoURLPrefix + teamPool[b].tag + ".png",
			DatePlayed: now.Add(offset).UTC().Format(time.RFC3339),
			VLRID:      strconv.Itoa(firstMatchID + i),
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].DatePlayed < matches[j].DatePlayed })

	return Dataset{Matches: matches, Teams: teams, Players: players}
}
