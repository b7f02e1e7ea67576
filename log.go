package huffcodec

import (
	"github.com/op/go-logging"
)

// LogModule is the go-logging module name used by this package.  Hosts can
// adjust verbosity with logging.SetLevel(level, LogModule).
const LogModule = "huffcodec"

var log = logging.MustGetLogger(LogModule)
