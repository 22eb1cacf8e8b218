package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{MissingInput("m"), http.StatusBadRequest},
		{UnsupportedFormat("m"), http.StatusBadRequest},
		{PayloadTooLarge("m"), http.StatusBadRequest},
		{PayloadTooSmall("m"), http.StatusBadRequest},
		{InputTooShort("m"), http.StatusBadRequest},
		{Auth("m"), http.StatusUnauthorized},
		{NotFound("Thing"), http.StatusNotFound},
		{ServiceUnavailable("m"), http.StatusServiceUnavailable},
		{TranscriptionFailed("m"), http.StatusInternalServerError},
		{EnhancementFailed("m"), http.StatusInternalServerError},
		{PersistenceFailed("m"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := Status(tc.err); got != tc.want {
			t.Errorf("Status(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestMessage(t *testing.T) {
	if got := Message(InputTooShort("too short")); got != "too short" {
		t.Errorf("unexpected message: %q", got)
	}
	if got := Message(errors.New("plain")); got != "plain" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestWrappedErrorKeepsCodeAndCause(t *testing.T) {
	cause := errors.New("db down")
	err := PersistenceFailed("save failed").WithCause(cause)

	wrapped := fmt.Errorf("handler: %w", err)

	if !Is(wrapped, CodePersistenceFailed) {
		t.Error("expected code detected through wrapping")
	}
	if !errors.Is(wrapped, cause) {
		t.Error("expected cause reachable via errors.Is")
	}
	if Status(wrapped) != http.StatusInternalServerError {
		t.Errorf("unexpected status: %d", Status(wrapped))
	}
}

func TestNotFoundMessage(t *testing.T) {
	if got := Message(NotFound("Transcription")); got != "Transcription not found" {
		t.Errorf("unexpected message: %q", got)
	}
}
