package logger

import "go.uber.org/zap"

// Provide returns a production-ready zap logger and installs it as the
// process-wide global so packages can log through zap.L().
func Provide() (*zap.Logger, error) {
	log, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)
	return log, nil
}
