package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/Garsondee/duck-hunt/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64
	level    game.Level

	score   int
	shots   int
	escapes int
	late    int

	firstHit time.Duration // -1 when the bot never hit
}

type botProfile struct {
	accuracy float64       // probability that an attempt lands on the target
	reaction time.Duration // delay between a spawn (or a miss) and the next attempt
}

func main() {
	var runs int
	var level int
	var speed float64
	var seedBase int64
	var seedStep int64
	var bot botProfile

	flag.IntVar(&runs, "runs", 5, "rounds to simulate per level")
	flag.IntVar(&level, "level", 0, "level to simulate (0 = all)")
	flag.Float64Var(&speed, "speed", 1.0, "spawn speed multiplier")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.Float64Var(&bot.accuracy, "accuracy", 0.7, "bot hit probability per attempt [0,1]")
	flag.DurationVar(&bot.reaction, "reaction", 450*time.Millisecond, "bot reaction time")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if err := game.DefaultConfig(speed).Validate(); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	if bot.accuracy < 0 || bot.accuracy > 1 {
		fmt.Println("error: -accuracy must be within [0,1]")
		return
	}
	if bot.reaction <= 0 {
		fmt.Println("error: -reaction must be > 0")
		return
	}
	levels := game.Levels()
	selected := levels[:]
	if level != 0 {
		l := game.Level(level)
		if !l.Valid() {
			fmt.Printf("error: unsupported level %d (supported: 1-3)\n", level)
			return
		}
		selected = []game.Level{l}
	}

	fmt.Printf("=== Headless Round Report ===\n")
	fmt.Printf("runs=%d speed=%.2f accuracy=%.2f reaction=%s seed_base=%d seed_step=%d\n\n",
		runs, speed, bot.accuracy, bot.reaction, seedBase, seedStep)

	var records game.Records
	for _, l := range selected {
		all := make([]runStats, 0, runs)
		for i := 0; i < runs; i++ {
			seed := seedBase + int64(i)*seedStep
			rs := runBot(i+1, seed, l, speed, bot)
			all = append(all, rs)
			records.Update(l, rs.score, rs.shots)
			printRun(rs)
		}
		printAggregate(l, all)
	}
	fmt.Println("--- Best records ---")
	fmt.Print(game.FormatRecords(records))
}

// runBot plays one round on a synthetic clock.
func runBot(runIndex int, seed int64, level game.Level, speed float64, bot botProfile) runStats {
	tr := game.NewTestRound(
		game.WithLevel(level),
		game.WithSpeed(speed),
		game.WithSeed(seed),
	)
	rng := rand.New(rand.NewSource(seed * 7919)) // #nosec G404 -- simulation only
	bounds := tr.Round.Config().Bounds

	var lastSpawn time.Time
	var nextShot time.Time
	for {
		res := tr.Advance(game.FrameStep)
		if res.Ended {
			break
		}
		t, ok := tr.Round.Target()
		if !ok {
			continue
		}
		if !t.SpawnedAt.Equal(lastSpawn) {
			lastSpawn = t.SpawnedAt
			nextShot = t.SpawnedAt.Add(bot.reaction)
		}
		now := tr.Now()
		if now.Before(nextShot) {
			continue
		}
		aim := t.Pos
		if rng.Float64() >= bot.accuracy {
			aim = missPoint(aim, bounds)
		}
		tr.ShootAt(aim)
		nextShot = now.Add(bot.reaction)
	}

	s := tr.Round.Session()
	firstHit := time.Duration(-1)
	if hits := tr.Log.Filter("target", "hit"); len(hits) > 0 {
		firstHit = hits[0].Elapsed
	}
	return runStats{
		runIndex: runIndex,
		seed:     seed,
		level:    level,
		score:    s.Score,
		shots:    s.Shots,
		escapes:  tr.Round.Escapes(),
		late:     tr.Log.CountCategory("shot", "late"),
		firstHit: firstHit,
	}
}

// missPoint moves p two target radii sideways, staying inside bounds.
func missPoint(p game.Point, bounds game.Rect) game.Point {
	off := 2.5 * game.TargetRadius
	if p.X+off <= bounds.X+bounds.W {
		return game.Point{X: p.X + off, Y: p.Y}
	}
	return game.Point{X: p.X - off, Y: p.Y}
}

func accuracy(score, shots int) float64 {
	if shots == 0 {
		return 0
	}
	return float64(score) / float64(shots)
}

func printRun(rs runStats) {
	fmt.Printf("--- %s run %d (seed=%d) ---\n", rs.level, rs.runIndex, rs.seed)
	fmt.Printf("score=%d shots=%d escapes=%d late=%d accuracy=%.2f first_hit=%s\n",
		rs.score, rs.shots, rs.escapes, rs.late, accuracy(rs.score, rs.shots), formatFirstHit(rs.firstHit))
}

func formatFirstHit(d time.Duration) string {
	if d < 0 {
		return "never"
	}
	return d.Round(time.Millisecond).String()
}

type aggregate struct {
	meanScore   float64
	meanShots   float64
	meanEscapes float64
	accuracy    float64
	bestScore   int
}

func summarize(all []runStats) aggregate {
	var agg aggregate
	if len(all) == 0 {
		return agg
	}
	totalScore, totalShots, totalEscapes := 0, 0, 0
	for _, rs := range all {
		totalScore += rs.score
		totalShots += rs.shots
		totalEscapes += rs.escapes
		if rs.score > agg.bestScore {
			agg.bestScore = rs.score
		}
	}
	n := float64(len(all))
	agg.meanScore = float64(totalScore) / n
	agg.meanShots = float64(totalShots) / n
	agg.meanEscapes = float64(totalEscapes) / n
	agg.accuracy = accuracy(totalScore, totalShots)
	return agg
}

func printAggregate(level game.Level, all []runStats) {
	agg := summarize(all)
	fmt.Printf("=== %s aggregate over %d runs ===\n", level, len(all))
	fmt.Printf("mean_score=%.1f mean_shots=%.1f mean_escapes=%.1f accuracy=%.2f best=%d\n\n",
		agg.meanScore, agg.meanShots, agg.meanEscapes, agg.accuracy, agg.bestScore)
}
