package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu  sync.RWMutex
	log = zap.NewNop()
)

type options struct {
	filename   string
	maxSizeMB  int
	maxBackups int
	maxAgeDays int
}

type Option func(*options)

// WithFile дублирует логи в JSON-файл с ротацией.
func WithFile(filename string) Option {
	return func(o *options) { o.filename = filename }
}

func WithRotation(maxSizeMB, maxBackups, maxAgeDays int) Option {
	return func(o *options) {
		o.maxSizeMB = maxSizeMB
		o.maxBackups = maxBackups
		o.maxAgeDays = maxAgeDays
	}
}

func Init(isDev bool, opts ...Option) error {
	o := options{maxSizeMB: 64, maxBackups: 7, maxAgeDays: 7}
	for _, opt := range opts {
		opt(&o)
	}

	var cfg zap.Config
	if isDev {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}

	var (
		l   *zap.Logger
		err error
	)
	if o.filename == "" {
		l, err = cfg.Build(zap.AddCaller())
		if err != nil {
			return err
		}
	} else {
		rotator := &lumberjack.Logger{
			Filename:   o.filename,
			MaxSize:    o.maxSizeMB,
			MaxBackups: o.maxBackups,
			MaxAge:     o.maxAgeDays,
		}
		consoleEnc := zapcore.NewJSONEncoder(cfg.EncoderConfig)
		if isDev {
			consoleEnc = zapcore.NewConsoleEncoder(cfg.EncoderConfig)
		}
		core := zapcore.NewTee(
			zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(rotator), cfg.Level),
			zapcore.NewCore(consoleEnc, zapcore.AddSync(os.Stdout), cfg.Level),
		)
		l = zap.New(core, zap.AddCaller())
	}

	mu.Lock()
	log = l
	mu.Unlock()
	zap.ReplaceGlobals(l)
	return nil
}

func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func Sync() {
	_ = L().Sync()
}
