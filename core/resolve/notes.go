package resolve

import (
	"context"
	"errors"
	"log/slog"

	"github.com/siherrmann/starcalc/model"
)

// NoteSource returns the note of a star, or nil if there is none.
// It has no error channel: a failed lookup is the same as no note.
type NoteSource interface {
	Note(ctx context.Context, catalogueID int64) *string
}

// NoteReader is the notebook side of a catalogue store
type NoteReader interface {
	// ReadNote returns the note of a star or model.ErrNotFound
	ReadNote(ctx context.Context, catalogueID int64) (*model.Note, error)
}

type bestEffortNotes struct {
	reader NoteReader
	log    *slog.Logger
}

// BestEffortNotes adapts a NoteReader into a NoteSource that swallows all errors
func BestEffortNotes(reader NoteReader, logger *slog.Logger) NoteSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &bestEffortNotes{reader: reader, log: logger}
}

func (n *bestEffortNotes) Note(ctx context.Context, catalogueID int64) *string {
	note, err := n.reader.ReadNote(ctx, catalogueID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			n.log.Debug("Note lookup failed", slog.Int64("catalogue_id", catalogueID), slog.String("error", err.Error()))
		}
		return nil
	}
	if note == nil {
		return nil
	}

	text := note.Notes
	return &text
}
