package tracker

// IdleSubmission is the backdated accounting of an idle auto-save.
type IdleSubmission struct {
	// EndTime is floor(trigger/1000) minus the idle grace, in unix seconds.
	// It can precede the session start for very short sessions.
	EndTime          int64
	DurationWorked   int64
	MinutesWorked    int
	IdleGraceSeconds int
}

// ComputeIdleSubmission backdates the end of a session that went idle at
// triggerUnixMilli.
func ComputeIdleSubmission(triggerUnixMilli, startTimeUnix int64, idleGraceSeconds int) IdleSubmission {
	actualEnd := floorDiv(triggerUnixMilli, 1000)
	adjustedEnd := actualEnd - int64(idleGraceSeconds)
	worked := adjustedEnd - startTimeUnix

	minutes := 0
	if worked >= 60 {
		minutes = int(worked / 60)
	}
	return IdleSubmission{
		EndTime:          adjustedEnd,
		DurationWorked:   worked,
		MinutesWorked:    minutes,
		IdleGraceSeconds: idleGraceSeconds,
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
