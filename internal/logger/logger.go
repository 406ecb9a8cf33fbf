package logger

import "go.uber.org/zap"

var Log = zap.NewNop()

func Init(debug bool) {
	if debug {
		Log = zap.Must(zap.NewDevelopment())
	} else {
		Log = zap.Must(zap.NewProduction())
	}
}

func Sync() {
	_ = Log.Sync()
}
