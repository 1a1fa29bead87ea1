package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/semigo-ml/semigo/pkg/errors"
)

// SetupWarnings routes library warnings through a zerolog logger.
// Warning types that implement zerolog.LogObjectMarshaler (such as
// ConvergenceWarning and DegenerateSelectionWarning) are emitted as
// structured events instead of flat text.
//
// The registration lives here rather than in pkg/errors to avoid a
// circular import between the two packages.
func SetupWarnings(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	zl := zerolog.New(w).With().Timestamp().Str("component", "semigo").Logger()

	errors.SetZerologWarnFunc(func(warning error) {
		event := zl.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			event.EmbedObject(obj).Msg(warning.Error())
			return
		}
		event.Err(warning).Msg("warning")
	})
}
