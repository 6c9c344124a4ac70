package logging

import "time"

// TimedOperation logs how long a build stage took.
type TimedOperation struct {
	logger Logger
	msg    string
	start  time.Time
	fields []Field
}

// StartTimer begins timing an operation
func StartTimer(logger Logger, msg string, fields ...Field) *TimedOperation {
	return &TimedOperation{
		logger: OrNop(logger),
		msg:    msg,
		start:  time.Now(),
		fields: fields,
	}
}

// Elapsed returns the time since StartTimer.
func (t *TimedOperation) Elapsed() time.Duration {
	return time.Since(t.start)
}

// End logs the operation at INFO with its latency and returns the latency.
func (t *TimedOperation) End(fields ...Field) time.Duration {
	elapsed := t.Elapsed()
	t.logger.Info(t.msg, t.with(elapsed, fields)...)
	return elapsed
}

// EndError logs the operation as an error with its latency.
func (t *TimedOperation) EndError(err error) time.Duration {
	elapsed := t.Elapsed()
	t.logger.Error(t.msg, t.with(elapsed, []Field{Error(err)})...)
	return elapsed
}

func (t *TimedOperation) with(elapsed time.Duration, extra []Field) []Field {
	out := make([]Field, 0, len(t.fields)+len(extra)+1)
	out = append(out, t.fields...)
	out = append(out, extra...)
	return append(out, Latency(elapsed))
}
