package v3

import "go.uber.org/zap"

// nopLogger ensures Pack/Maketurn never panic when the caller does not wire
// a logger, matching the "never fall back to an ad hoc println" posture
// while keeping the dependency optional for library consumers.
func nopLogger() *zap.Logger { return zap.NewNop() }

// warn records a non-fatal taxonomy hit (Residual/Template/Semantics) both
// as a structured log line and as an accumulated Warning on the result.
func warn(log *zap.Logger, warnings *[]Warning, k Kind, format string, fields ...zap.Field) {
	if log == nil {
		log = nopLogger()
	}
	msg := k.String()
	log.Warn(msg, append(fields, zap.String("format", format))...)
	*warnings = append(*warnings, Warning{Kind: k, Message: format})
}

// Warning is a non-fatal condition surfaced to the caller alongside a
// successful PackResult/MaketurnResult.
type Warning struct {
	Kind    Kind
	Message string
}
