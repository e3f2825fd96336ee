package service

import "go.uber.org/zap"

// NewLogger returns a development logger when debug is set and a production
// one otherwise.
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
