package clierr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"validation", Validation("bad name %q", "x"), ExitValidation},
		{"precondition", Precondition("exists"), ExitPrecondition},
		{"anchor", AnchorNotFound("/p/Foo.java", "class declaration"), ExitAnchorNotFound},
		{"wrapped precondition", fmt.Errorf("create-screen: %w", Precondition("exists")), ExitPrecondition},
		{"plain", errors.New("boom"), ExitGeneralError},
		{"silent", Silent(nil), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFromError(tt.err))
		})
	}
}

func TestIsSilent(t *testing.T) {
	assert.True(t, IsSilent(Silent(errors.New("user rejected"))))
	assert.True(t, IsSilent(fmt.Errorf("prompting: %w", ErrAborted)))
	assert.False(t, IsSilent(Precondition("exists")))
}

func TestDetailErrorMessage(t *testing.T) {
	err := AnchorNotFound("/p/Foo.java", "class declaration")

	assert.Contains(t, err.Error(), "could not find class declaration")
	assert.Contains(t, err.Error(), "Location: /p/Foo.java")
	assert.True(t, errors.Is(err, ErrAnchorNotFound))
}
