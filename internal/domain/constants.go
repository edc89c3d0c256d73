package domain

// Default configuration values
const (
	DefaultBufferMinutes      = 0
	DefaultPoolSize           = 1
	DefaultAdvanceBookingDays = 0  // 0 = unlimited
	DefaultMinLeadTimeMinutes = 60 // 1 hour
	DefaultCapacityMode       = CapacityCatalog
	DefaultTimezone           = "UTC"
)

// Business validation constants
const (
	MinBufferMinutes            = 0
	MaxBufferMinutes            = 240
	MinPoolSize                 = 0
	MaxPoolSize                 = 1000
	MinSlotCapacity             = 0 // 0 = slot disabled
	MaxSlotCapacity             = 1000
	MaxCatalogSlots             = 288 // every 5 minutes
	MinDurationMinutes          = 1
	MaxDurationMinutes          = 1440
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365
	MinLeadTimeMinutes          = 0
	MaxLeadTimeMinutes          = 10080 // 1 week
	MaxIntervalDays             = 31
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxHolidayNoteLength        = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultBlockingStatuses statuses that occupy a resource
var DefaultBlockingStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}
