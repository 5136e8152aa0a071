package logger

import "go.uber.org/zap"

// _LoggerImp keeps the structured and the sugared flavour of one zap logger
type _LoggerImp struct {
	logger *zap.Logger
	sugar  *zap.SugaredLogger
}

func newLoggerImp(z *zap.Logger) *_LoggerImp {
	return &_LoggerImp{
		logger: z,
		sugar:  z.Sugar(),
	}
}

func (l *_LoggerImp) Debugf(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

func (l *_LoggerImp) Infof(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

func (l *_LoggerImp) Warnf(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

func (l *_LoggerImp) Errorf(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

func (l *_LoggerImp) Sync() error {
	return l.logger.Sync()
}
