package combat

import (
	"math"
	"time"
)

const (
	// MinPlayerInterval is the fastest possible player attack cadence.
	MinPlayerInterval = 500 * time.Millisecond
	// MinEnemyInterval is the fastest possible enemy attack cadence.
	MinEnemyInterval = 800 * time.Millisecond
)

// PlayerAttackInterval returns max(500ms, 1500ms - speed*2ms).
func PlayerAttackInterval(speed float64) time.Duration {
	return interval(1500-speed*2, MinPlayerInterval)
}

// EnemyAttackInterval returns max(800ms, 2000ms - speed*10ms).
func EnemyAttackInterval(speed float64) time.Duration {
	return interval(2000-speed*10, MinEnemyInterval)
}

func interval(ms float64, floor time.Duration) time.Duration {
	d := time.Duration(math.Round(ms * float64(time.Millisecond)))
	if d < floor {
		return floor
	}
	return d
}
