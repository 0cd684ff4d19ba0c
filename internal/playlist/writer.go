// SPDX-License-Identifier: MIT

package playlist

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/renameio/v2"

	"github.com/ercanturk19/flixify-sub000/internal/catalog"
	"github.com/ercanturk19/flixify-sub000/internal/log"
)

// WriteM3U writes the items as an extended M3U playlist.
func WriteM3U(w io.Writer, items []catalog.Item) error {
	buf := &bytes.Buffer{}
	buf.WriteString("#EXTM3U\n")
	for _, it := range items {
		buf.WriteString(fmt.Sprintf(
			`#EXTINF:-1 tvg-id="%s" tvg-logo="%s" group-title="%s",%s`+"\n",
			it.ID, it.Logo, it.Group, it.Name,
		))
		buf.WriteString(it.Address + "\n")
	}
	_, err := io.Copy(w, buf)
	return err
}

// WriteM3UFile writes the playlist atomically and durably: the file is
// fsynced before the rename, so a crash never leaves a partial export.
func WriteM3UFile(ctx context.Context, path string, items []catalog.Item) error {
	logger := log.WithComponentFromContext(ctx, "playlist")

	pendingFile, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending M3U file: %w", err)
	}
	defer func() {
		if cerr := pendingFile.Cleanup(); cerr != nil {
			logger.Debug().Err(cerr).Msg("cleanup pending M3U file")
		}
	}()

	if err := WriteM3U(pendingFile, items); err != nil {
		return fmt.Errorf("write M3U data: %w", err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace M3U file: %w", err)
	}
	return nil
}
