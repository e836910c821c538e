package utils

import (
	"time"

	"github.com/iov-one/shine"
	"github.com/iov-one/shine/errors"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ shine.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug
func (Logging) Check(ctx shine.Context, store shine.KVStore, tx shine.Tx, next shine.Checker) (*shine.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (Logging) Deliver(ctx shine.Context, store shine.KVStore, tx shine.Tx, next shine.Deliverer) (*shine.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, false)
	return res, err
}

func logDuration(ctx shine.Context, tx shine.Tx, start time.Time, msg string, err error, lowPrio bool) {
	logger := shine.GetLogger(ctx).With(
		"path", shine.GetPath(tx),
		"duration", time.Since(start)/time.Microsecond,
	)

	// An entry is emitted even for an empty message, the attributes
	// carry the information.
	switch {
	case err != nil:
		code, _ := errors.ABCIInfo(err, true)
		logger.Error(msg, "code", code, "err", err)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
