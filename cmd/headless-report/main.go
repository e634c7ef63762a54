package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/Garsondee/Sky-Raid/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	ticks    int
	gameOver bool
	report   *game.RunReport

	firstLifeLostTick int
	firstBossTick     int
	firstBossKillTick int
	firstPickupTick   int

	windowSummary *game.WindowReport
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var scenario string
	var configPath string

	flag.IntVar(&runs, "runs", 5, "number of headless runs")
	flag.IntVar(&ticks, "ticks", 18000, "maximum ticks per run (60 per second)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "autopilot", "pilot: autopilot or idle")
	flag.StringVar(&configPath, "config", "", "optional YAML settings file")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if scenario != "autopilot" && scenario != "idle" {
		fmt.Printf("error: unsupported scenario %q (supported: autopilot, idle)\n", scenario)
		return
	}

	cfg := game.DefaultSettings()
	if configPath != "" {
		var err error
		if cfg, err = game.LoadSettings(configPath); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Printf("=== Headless Raid Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", scenario, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runScenario(cfg, scenario == "autopilot", i+1, seed, ticks)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func runScenario(cfg game.Settings, piloted bool, runIndex int, seed int64, ticks int) runStats {
	ts := game.NewTestSim(
		game.WithSettings(cfg),
		game.WithSeed(seed),
	)
	pilot := game.NewAutopilot()
	for i := 0; i < ticks; i++ {
		if piloted {
			pilot.Drive(ts.Engine)
		}
		if !ts.Step() {
			break
		}
	}

	entries := ts.SimLog.Entries()
	snap := ts.Snapshot()
	firstPickup := earliest(
		firstTick(entries, "pickup", "weapon", ""),
		firstTick(entries, "pickup", "life", ""),
	)
	return runStats{
		runIndex:          runIndex,
		seed:              seed,
		ticks:             snap.Tick,
		gameOver:          snap.GameOver,
		report:            ts.Report(),
		firstLifeLostTick: firstTick(entries, "player", "life_lost", ""),
		firstBossTick:     firstTick(entries, "spawn", "enemy", "boss"),
		firstBossKillTick: firstTick(entries, "combat", "kill", "boss"),
		firstPickupTick:   firstPickup,
		windowSummary:     ts.Reporter.WindowSummary(),
	}
}

// firstTick returns the tick of the first entry matching category and key
// (empty matches any) whose value contains the given text, or -1.
func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || (key != "" && e.Key != key) {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

// earliest returns the smaller of two tick markers, treating -1 as unset.
func earliest(a, b int) int {
	switch {
	case a < 0:
		return b
	case b < 0:
		return a
	}
	return min(a, b)
}

func printRun(rs runStats) {
	r := rs.report
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("outcome: ticks=%d (%.1fs) game_over=%v score=%d lives=%d\n",
		rs.ticks, float64(rs.ticks)/60, rs.gameOver, r.Score, r.Lives)
	fmt.Printf("phase_markers: first_life_lost=%d first_boss=%d first_boss_kill=%d first_pickup=%d\n",
		rs.firstLifeLostTick, rs.firstBossTick, rs.firstBossKillTick, rs.firstPickupTick)
	fmt.Printf("fire: volleys=%d shots=%d hits=%d accuracy=%.2f\n", r.Volleys, r.Shots, r.Hits, r.Accuracy())
	fmt.Printf("kills: %s\n", formatKinds(r.Kills))
	fmt.Printf("escapes: %s\n", formatKinds(r.Escapes))
	fmt.Printf("pickups: weapon=%d life=%d missed=%d lives_lost=%d\n",
		r.Pickups[game.PowerUpWeapon], r.Pickups[game.PowerUpLife], r.MissedDrops, r.LivesLost)
	if rs.windowSummary != nil {
		fmt.Print(rs.windowSummary.Format())
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	scores := make([]int, 0, len(all))
	ticks := make([]int, 0, len(all))
	lifeLostTicks := make([]int, 0, len(all))
	bossKillTicks := make([]int, 0, len(all))
	kills := map[game.EnemyKind]int{}
	totalShots, totalHits, overs := 0, 0, 0

	for _, rs := range all {
		scores = append(scores, rs.report.Score)
		ticks = append(ticks, rs.ticks)
		if rs.firstLifeLostTick >= 0 {
			lifeLostTicks = append(lifeLostTicks, rs.firstLifeLostTick)
		}
		if rs.firstBossKillTick >= 0 {
			bossKillTicks = append(bossKillTicks, rs.firstBossKillTick)
		}
		for k, n := range rs.report.Kills {
			kills[k] += n
		}
		totalShots += rs.report.Shots
		totalHits += rs.report.Hits
		if rs.gameOver {
			overs++
		}
	}

	lo, hi := minMax(scores)
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d game_over=%d\n", len(all), overs)
	fmt.Printf("score: mean=%.1f min=%d max=%d median=%.1f\n", avg(sum(scores), len(scores)), lo, hi, median(scores))
	fmt.Printf("ticks_survived: mean=%.1f\n", avg(sum(ticks), len(ticks)))
	fmt.Printf("phase_marker_avg_ticks: first_life_lost=%s first_boss_kill=%s\n",
		avgTickString(lifeLostTicks), avgTickString(bossKillTicks))
	fmt.Printf("accuracy: %.2f hits per shot\n", avg(totalHits, totalShots))
	fmt.Printf("kill_share: %s\n", formatShares(kills))
}

func formatKinds(counts map[game.EnemyKind]int) string {
	parts := make([]string, 0, len(counts))
	for _, k := range game.EnemyKinds() {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, " ")
}

// formatShares prints each kind's percentage of all kills.
func formatShares(counts map[game.EnemyKind]int) string {
	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return "n/a"
	}
	parts := make([]string, 0, len(counts))
	for _, k := range game.EnemyKinds() {
		parts = append(parts, fmt.Sprintf("%s=%.0f%%", k, 100*float64(counts[k])/float64(total)))
	}
	return strings.Join(parts, " ")
}

func sum(vals []int) int {
	s := 0
	for _, v := range vals {
		s += v
	}
	return s
}

func minMax(vals []int) (int, int) {
	if len(vals) == 0 {
		return 0, 0
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

func median(vals []int) float64 {
	if len(vals) == 0 {
		return 0
	}
	s := append([]int(nil), vals...)
	sort.Ints(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return float64(s[mid])
	}
	return float64(s[mid-1]+s[mid]) / 2
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", avg(sum(vals), len(vals)))
}
