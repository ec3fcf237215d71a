package logger

import "go.uber.org/zap"

var log *zap.SugaredLogger

func Init() {
	l, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	log = l.Sugar()
}

func Info(msg string, kv ...interface{}) {
	if log == nil {
		return
	}
	log.Infow(msg, kv...)
}

func Warn(msg string, kv ...interface{}) {
	if log == nil {
		return
	}
	log.Warnw(msg, kv...)
}

func Error(msg string, kv ...interface{}) {
	if log == nil {
		return
	}
	log.Errorw(msg, kv...)
}
