package common

const (
	RedisStreamAutomationRun = "digest.automation.run"
	RedisStreamDigestReady   = "digest.ready"

	RedisStreamGroup    = "digest-group"
	RedisStreamConsumer = "digest-consumer"

	RedisKeyAutomationState  = "dfo:auto:state"
	RedisKeyAutomationRuns   = "dfo:auto:runs"
	RedisKeyAutomationLock   = "dfo:auto:lock"
	RedisKeyAutomationRun    = "dfo:auto:run:"
	RedisKeyAutomationRunLog = "dfo:auto:runlog:"
)

// DayLayout is the calendar-day key format of a digest.
const DayLayout = "2006-01-02"
