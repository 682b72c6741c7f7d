package ostrich

import "github.com/vovakirdan/flappy-ostrich/internal/core"

// HitsObstacle tests the player's box against one gap obstacle. The obstacle
// is two solid regions, so the test is a horizontal overlap combined with two
// independent half-plane checks: above the gap top or below the gap bottom.
func HitsObstacle(player core.Box, o Obstacle) bool {
	if player.Right() <= o.X || player.Left() >= o.Right() {
		return false
	}
	return player.Top() < o.GapTop || player.Bottom() > o.GapBottom()
}

// FirstObstacleHit returns the index of the first obstacle the player hits,
// or -1.
func FirstObstacleHit(player core.Box, obstacles []Obstacle) int {
	for i, o := range obstacles {
		if HitsObstacle(player, o) {
			return i
		}
	}
	return -1
}

// CollectPickups splits collectibles into those left in the world and those
// the player overlaps.
func CollectPickups(player core.Box, in []Collectible) (remaining, taken []Collectible) {
	remaining = make([]Collectible, 0, len(in))
	for _, c := range in {
		if player.Intersects(c.Box()) {
			taken = append(taken, c)
			continue
		}
		remaining = append(remaining, c)
	}
	return remaining, taken
}

// CollectPowerUps splits world power-ups the same way as CollectPickups.
func CollectPowerUps(player core.Box, in []PowerUp) (remaining, taken []PowerUp) {
	remaining = make([]PowerUp, 0, len(in))
	for _, p := range in {
		if player.Intersects(p.Box()) {
			taken = append(taken, p)
			continue
		}
		remaining = append(remaining, p)
	}
	return remaining, taken
}
