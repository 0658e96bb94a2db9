package domain

// Значения по умолчанию движка бронирований
const (
	// DefaultFullyBookedHours порог занятых часов, после которого день
	// считается полностью занятым в календаре (18 из 24 = 75%)
	DefaultFullyBookedHours = 18
	// DefaultMaxRangeDays максимальная длина запрашиваемого периода доступности
	DefaultMaxRangeDays = 400
	// MaxHourlySpanHours максимальная длительность почасового бронирования
	MaxHourlySpanHours = 24
	// MaxMonthCount максимальное количество месяцев в одном бронировании
	MaxMonthCount = 120
	// MaxYearCount максимальное количество лет в одном бронировании
	MaxYearCount = 10
)

// Ограничения бизнес-валидации
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxSpaceNameLength          = 200
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses статусы бронирований, занимающих помещение
// Используется при построении индекса доступности
var OccupyingStatuses = []ReservationStatus{
	StatusConfirmed,
	StatusActive,
}

// LifecycleStatuses статусы, которые двигаются автоматически по времени
var LifecycleStatuses = []ReservationStatus{
	StatusConfirmed,
	StatusActive,
}
