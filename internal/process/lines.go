package process

import (
	"bytes"
	"log/slog"

	"git.home.luguber.info/inful/doccbuilder/internal/logfields"
)

// lineLogger is an io.Writer that emits one debug record per complete line.
type lineLogger struct {
	log    *slog.Logger
	stream string
	buf    bytes.Buffer
}

func newLineLogger(log *slog.Logger, stream string) *lineLogger {
	return &lineLogger{log: log, stream: stream}
}

func (l *lineLogger) Write(p []byte) (int, error) {
	l.buf.Write(p)
	for {
		i := bytes.IndexByte(l.buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		line := string(bytes.TrimRight(l.buf.Next(i+1), "\r\n"))
		l.emit(line)
	}
	return len(p), nil
}

// Flush emits a trailing line without newline, if any.
func (l *lineLogger) Flush() {
	if l.buf.Len() == 0 {
		return
	}
	l.emit(l.buf.String())
	l.buf.Reset()
}

func (l *lineLogger) emit(line string) {
	l.log.Debug(line, logfields.Stream(l.stream))
}
