package errors

import (
	stderrors "errors"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidDocument, "document %q has no views", "plan.json")
	want := `INVALID_DOCUMENT: document "plan.json" has no views`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeStore, cause, "save run %s", "abc")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause with errors.Is")
	}
	if !Is(err, ErrCodeStore) {
		t.Error("Is should match the wrapping code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is should not match an unrelated code")
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"Structured", New(ErrCodeViewNotFound, "no such view"), ErrCodeViewNotFound},
		{"Wrapped", Wrap(ErrCodePlacementRejected, stderrors.New("x"), "chain 3"), ErrCodePlacementRejected},
		{"Plain", stderrors.New("plain"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidView, "bad view id")); got != "bad view id" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("raw")); got != "raw" {
		t.Errorf("UserMessage = %q", got)
	}
}
