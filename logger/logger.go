package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type _LoggingFormat int8

const (
	_JSONFormat _LoggingFormat = iota
	_StackdriverFormat
)

var l *_LoggerImp

// Debugf logger
func Debugf(format string, args ...interface{}) {
	if l == nil {
		fmt.Printf(fmt.Sprintf("%s\n", format), args...)
		return
	}
	l.Debugf(format, args...)
}

// Infof logger
func Infof(format string, args ...interface{}) {
	if l == nil {
		fmt.Printf(fmt.Sprintf("%s\n", format), args...)
		return
	}
	l.Infof(format, args...)
}

// Warnf logger
func Warnf(format string, args ...interface{}) {
	if l == nil {
		fmt.Printf(fmt.Sprintf("%s\n", format), args...)
		return
	}
	l.Warnf(format, args...)
}

// Errorf logger
func Errorf(format string, args ...interface{}) {
	if l == nil {
		debug.PrintStack()
		fmt.Printf(fmt.Sprintf("%s\n", format), args...)
		return
	}
	l.Errorf(format, args...)
}

// Debug logger
func Debug(msg string, fields ...zapcore.Field) {
	if l == nil {
		fmt.Println(msg)
		return
	}
	l.logger.Debug(msg, fields...)
}

// Info logger
func Info(msg string, fields ...zapcore.Field) {
	if l == nil {
		fmt.Println(msg)
		return
	}
	l.logger.Info(msg, fields...)
}

// Warn logger
func Warn(msg string, fields ...zapcore.Field) {
	if l == nil {
		fmt.Println(msg, fields)
		return
	}
	l.logger.Warn(msg, fields...)
}

// Error logger
func Error(msg string, fields ...zapcore.Field) {
	if l == nil {
		fmt.Println(msg, fields)
		return
	}
	l.logger.Error(msg, fields...)
}

// Named returns a child logger tagged with component. Before Init it
// returns a no-op logger so hot paths never print to stdout.
func Named(component string) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l.logger.Named(component)
}

// SetLogger replaces the package logger, mostly for tests.
func SetLogger(z *zap.Logger) {
	if z == nil {
		l = nil
		return
	}
	l = newLoggerImp(z)
}

// Sync flushes buffered entries
func Sync() {
	if l != nil {
		_ = l.Sync()
	}
}

// Init logger initialize
func Init(name string, config *viper.Viper) {
	l = newLoggerImp(newLogger(name, config))
	l.logger.Info("initialize logger", zap.String("name", name))
}

func newLogger(name string, config *viper.Viper) *zap.Logger {
	level := config.GetString("logger.level")
	fileDir := config.GetString("logger.dir")
	rotation := config.GetBool("logger.rotation")
	stdout := config.GetBool("logger.stdout")

	// {dir}{name}.log, no file when dir is empty
	file := ""
	if fileDir != "" {
		file = filepath.Join(fileDir, name+".log")
	}

	zapLevel := zapcore.InfoLevel
	switch strings.ToLower(level) {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "", "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		fmt.Println("Logger level invalid, must be one of: DEBUG, INFO, WARN, or ERROR")
	}

	format := _JSONFormat
	if strings.ToLower(config.GetString("logger.format")) == "stackdriver" {
		format = _StackdriverFormat
	}

	consoleLogger := newJSONLogger(os.Stdout, zapLevel, format)
	var fileLogger *zap.Logger
	if rotation {
		fileLogger = newRotatingJSONFileLogger(config, consoleLogger, file, zapLevel, format)
	} else {
		fileLogger = newJSONFileLogger(consoleLogger, file, zapLevel, format)
	}

	if fileLogger != nil {
		if stdout {
			multiLogger := newMultiLogger(consoleLogger, fileLogger)
			zap.RedirectStdLog(multiLogger)
			return multiLogger
		}
		zap.RedirectStdLog(fileLogger)
		return fileLogger
	}

	zap.RedirectStdLog(consoleLogger)

	return consoleLogger
}

func newJSONFileLogger(consoleLogger *zap.Logger, fileName string, level zapcore.Level, format _LoggingFormat) *zap.Logger {
	if len(fileName) == 0 {
		return nil
	}

	output, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		consoleLogger.Error("could not create log file, logging to stdout only", zap.Error(err))
		return nil
	}

	return newJSONLogger(output, level, format)
}

func newRotatingJSONFileLogger(config *viper.Viper, consoleLogger *zap.Logger, fileName string, level zapcore.Level, format _LoggingFormat) *zap.Logger {
	if len(fileName) == 0 {
		consoleLogger.Warn("rotating log file is enabled but logger.dir is empty")
		return nil
	}

	logDir := filepath.Dir(fileName)
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		if err := os.MkdirAll(logDir, 0755); err != nil {
			consoleLogger.Error("could not create log directory", zap.Error(err))
			return nil
		}
	}

	writeSyncer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    config.GetInt("logger.maxsize"),
		MaxAge:     config.GetInt("logger.maxage"),
		MaxBackups: config.GetInt("logger.maxbackups"),
		LocalTime:  config.GetBool("logger.localtime"),
		Compress:   config.GetBool("logger.compress"),
	})

	core := zapcore.NewCore(newJSONEncoder(format), writeSyncer, level)
	return zap.New(core, zap.AddStacktrace(zap.ErrorLevel))
}

func newMultiLogger(loggers ...*zap.Logger) *zap.Logger {
	cores := make([]zapcore.Core, 0, len(loggers))
	for _, logger := range loggers {
		cores = append(cores, logger.Core())
	}
	teeCore := zapcore.NewTee(cores...)
	options := []zap.Option{zap.AddStacktrace(zap.ErrorLevel), zap.AddCaller(), zap.AddCallerSkip(1)}
	return zap.New(teeCore, options...)
}

func newJSONLogger(output *os.File, level zapcore.Level, format _LoggingFormat) *zap.Logger {
	core := zapcore.NewCore(newJSONEncoder(format), zapcore.Lock(output), level)
	options := []zap.Option{zap.AddStacktrace(zap.ErrorLevel), zap.AddCaller(), zap.AddCallerSkip(1)}
	return zap.New(core, options...)
}

// Create a new JSON log encoder with the correct settings.
func newJSONEncoder(format _LoggingFormat) zapcore.Encoder {
	if format == _StackdriverFormat {
		return zapcore.NewJSONEncoder(zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "severity",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			EncodeLevel:    stackdriverLevelEncoder,
			EncodeTime:     stackdriverTimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		})
	}

	return zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	})
}

func stackdriverTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(fmt.Sprintf("%d%s", t.Unix(), t.Format(".000000000")))
}

func stackdriverLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch l {
	case zapcore.DebugLevel:
		enc.AppendString("debug")
	case zapcore.InfoLevel:
		enc.AppendString("info")
	case zapcore.WarnLevel:
		enc.AppendString("warning")
	case zapcore.ErrorLevel:
		enc.AppendString("error")
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		enc.AppendString("critical")
	default:
		enc.AppendString(fmt.Sprintf("Level(%d)", l))
	}
}
