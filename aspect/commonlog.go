package aspect

import (
	"github.com/tliron/commonlog"

	gointercept "github.com/CherkashinEvgeny/gointercept"
)

// CommonLog writes lines to logger at info level.
func CommonLog(logger commonlog.Logger) gointercept.Writer {
	return func(line string) {
		logger.Info(line)
	}
}
