package browse

import "go.uber.org/zap"

// Logger receives browse diagnostics. *zap.Logger and the CLI logger both
// satisfy it.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
}

func orNop(l Logger) Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
