package loigen

import (
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

// archiveNameFormat names entries that arrive without a filename,
// 1-indexed by position.
const archiveNameFormat = "LOI_%d.pdf"

// writeArchive streams entries into w as a zip archive at maximum
// deflate compression. Entries are independent: a base64 decode
// failure skips that entry (recorded in the result) and the archive is
// still finalized with the rest. Only a stream-level write failure
// aborts, wrapped as ErrArchiveWrite, after which no further bytes are
// written.
func writeArchive(entries []ZipEntry, w io.Writer, logger *slog.Logger) (ArchiveResult, error) {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	var res ArchiveResult
	for i, entry := range entries {
		pos := i + 1

		data, err := decodeBase64(entry.Data)
		if err != nil {
			logger.Warn("skipping undecodable archive entry", "position", pos, "error", err)
			res.Skipped = append(res.Skipped, pos)
			continue
		}

		name := entry.Filename
		if name == "" {
			name = fmt.Sprintf(archiveNameFormat, pos)
		}

		f, err := zw.Create(name)
		if err != nil {
			return res, fmt.Errorf("%w: creating entry %s: %v", ErrArchiveWrite, name, err)
		}
		if _, err := f.Write(data); err != nil {
			return res, fmt.Errorf("%w: writing entry %s: %v", ErrArchiveWrite, name, err)
		}
		res.Entries++
	}

	if err := zw.Close(); err != nil {
		return res, fmt.Errorf("%w: finalizing archive: %v", ErrArchiveWrite, err)
	}
	return res, nil
}

// decodeBase64 accepts both padded and unpadded standard encoding.
func decodeBase64(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
