package domain

const (
	// DateFormat формат даты варианта бронирования
	DateFormat = "2006-01-02"

	// TimeRangeSeparator разделитель начала и конца в сохраненном диапазоне времени
	TimeRangeSeparator = " - "
)
