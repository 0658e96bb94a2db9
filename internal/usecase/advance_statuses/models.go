package advance_statuses

import (
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/engine/lifecycle"
)

// Response итог одного тика
type Response struct {
	At        time.Time
	Evaluated int // бронирований в снимке
	Applied   []lifecycle.Transition
	Failed    []lifecycle.Transition // будут повторены на следующем тике
}
