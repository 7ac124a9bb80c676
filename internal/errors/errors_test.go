package errors

import (
	"fmt"
	"testing"
)

func TestNotenError_Error(t *testing.T) {
	err := &NotenError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "note not found",
	}

	expected := "NOT_FOUND: note not found"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewAmbiguousAddressing(t *testing.T) {
	err := NewAmbiguousAddressing()

	if err.Code != ErrAmbiguousAddressing {
		t.Errorf("Code = %q, want %q", err.Code, ErrAmbiguousAddressing)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
}

func TestNewInvalidRequest(t *testing.T) {
	err := NewInvalidRequest("text is required")

	if err.Code != ErrInvalidRequest {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidRequest)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Message != "text is required" {
		t.Errorf("Message = %q, want %q", err.Message, "text is required")
	}
}

func TestNewIndexOutOfRange(t *testing.T) {
	err := NewIndexOutOfRange(5, 1)

	if err.Code != ErrIndexOutOfRange {
		t.Errorf("Code = %q, want %q", err.Code, ErrIndexOutOfRange)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Details["index"] != 5 {
		t.Errorf("Details[index] = %v, want 5", err.Details["index"])
	}
	if err.Details["length"] != 1 {
		t.Errorf("Details[length] = %v, want 1", err.Details["length"])
	}
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("01HXYZ")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Details["id"] != "01HXYZ" {
		t.Errorf("Details[id] = %v, want %q", err.Details["id"], "01HXYZ")
	}
}

func TestNewNoActiveEdit(t *testing.T) {
	err := NewNoActiveEdit()

	if err.Code != ErrNoActiveEdit {
		t.Errorf("Code = %q, want %q", err.Code, ErrNoActiveEdit)
	}
	if err.Status != 409 {
		t.Errorf("Status = %d, want 409", err.Status)
	}
}

func TestNewPersistenceUnavailable(t *testing.T) {
	cause := fmt.Errorf("disk I/O error")
	err := NewPersistenceUnavailable(cause)

	if err.Code != ErrPersistenceUnavailable {
		t.Errorf("Code = %q, want %q", err.Code, ErrPersistenceUnavailable)
	}
	if err.Status != 503 {
		t.Errorf("Status = %d, want 503", err.Status)
	}
	if err.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), cause)
	}
}

func TestNewInternal(t *testing.T) {
	t.Run("with error", func(t *testing.T) {
		err := NewInternal(fmt.Errorf("database connection failed"))

		if err.Code != ErrInternal {
			t.Errorf("Code = %q, want %q", err.Code, ErrInternal)
		}
		if err.Status != 500 {
			t.Errorf("Status = %d, want 500", err.Status)
		}
		if err.Message != "database connection failed" {
			t.Errorf("Message = %q, want %q", err.Message, "database connection failed")
		}
	})

	t.Run("with nil", func(t *testing.T) {
		err := NewInternal(nil)

		if err.Message != "internal error" {
			t.Errorf("Message = %q, want %q", err.Message, "internal error")
		}
	})
}

func TestIs(t *testing.T) {
	t.Run("matching code", func(t *testing.T) {
		if !Is(NewNotFound("x"), ErrNotFound) {
			t.Error("Is() = false, want true")
		}
	})

	t.Run("non-matching code", func(t *testing.T) {
		if Is(NewNotFound("x"), ErrIndexOutOfRange) {
			t.Error("Is() = true, want false")
		}
	})

	t.Run("non-NotenError", func(t *testing.T) {
		if Is(fmt.Errorf("plain error"), ErrNotFound) {
			t.Error("Is() = true, want false for non-NotenError")
		}
	})

	t.Run("wrapped NotenError", func(t *testing.T) {
		wrapped := fmt.Errorf("save: %w", NewPersistenceUnavailable(nil))
		if !Is(wrapped, ErrPersistenceUnavailable) {
			t.Error("Is() = false, want true for wrapped NotenError")
		}
	})
}

func TestAs(t *testing.T) {
	if _, ok := As(fmt.Errorf("plain")); ok {
		t.Error("As() ok = true, want false for plain error")
	}

	nErr, ok := As(fmt.Errorf("wrap: %w", NewNoActiveEdit()))
	if !ok {
		t.Fatal("As() ok = false, want true")
	}
	if nErr.Code != ErrNoActiveEdit {
		t.Errorf("Code = %q, want %q", nErr.Code, ErrNoActiveEdit)
	}
}
