package check_availability

import (
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

// Options параметры use case
type Options struct {
	FullyBookedHours int
	MaxRangeDays     int
	Location         *time.Location // часовой пояс календаря
}

// Request модель запроса календаря доступности
type Request struct {
	SpaceID int64
	From    time.Time // первый день периода
	To      time.Time // последний день периода включительно
}

// Response календарь доступности помещения
type Response struct {
	SpaceID int64
	From    time.Time
	To      time.Time
	Days    []domain.AvailabilityDay
	Slots   []domain.BookedSlot
}
