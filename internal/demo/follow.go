package demo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/nxadm/tail"
)

var ErrFollow = errors.New("failed to follow replay file")

// Follow tails the replay file, appending every new snapshot line as it is written. Lines
// already present were read by Load, so tailing starts at the end of the file.
func (b *Backend) Follow(ctx context.Context, filePath string) error {
	tailFile, errTail := tail.TailFile(filePath, tail.Config{
		Location: &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
		Follow:   true,
		ReOpen:   true,
		Logger:   tail.DiscardingLogger,
	})
	if errTail != nil {
		return errors.Join(errTail, ErrFollow)
	}

	defer tailFile.Cleanup()

	for {
		select {
		case line, open := <-tailFile.Lines:
			if !open {
				return errors.Join(tailFile.Err(), ErrFollow)
			}

			if line == nil {
				continue
			}

			if line.Err != nil {
				slog.Warn("Replay tail error", slog.String("error", line.Err.Error()))

				continue
			}

			frame, skip, errFrame := parseLine(strings.TrimSuffix(line.Text, "\r"))
			if errFrame != nil {
				slog.Warn("Skipped malformed replay line", slog.String("error", errFrame.Error()))

				continue
			}

			if !skip {
				b.Append(frame)
			}
		case <-ctx.Done():
			if errStop := tailFile.Stop(); errStop != nil {
				slog.Error("Failed to stop tailing replay cleanly", slog.String("error", errStop.Error()))
			}

			return nil
		}
	}
}
