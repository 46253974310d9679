package domain_test

import (
	"testing"

	"github.com/aretw0/rewind/pkg/domain"
	"github.com/stretchr/testify/assert"
)

type fixedState int

func (s fixedState) ID() int        { return int(s) }
func (s fixedState) Source() string { return "fixed" }

func TestCheckIdentity(t *testing.T) {
	assert.NoError(t, domain.CheckIdentity(3, fixedState(3)))
	assert.ErrorIs(t, domain.CheckIdentity(3, fixedState(4)), domain.ErrIdentityMismatch)
	assert.ErrorIs(t, domain.CheckIdentity(3, nil), domain.ErrIdentityMismatch)
}

func TestTracker(t *testing.T) {
	var tr domain.Tracker
	assert.False(t, tr.IsDirty())
	assert.False(t, tr.IsJustCreated())

	tr.SetDirty(true)
	tr.SetJustCreated(true)
	assert.True(t, tr.IsDirty())
	assert.True(t, tr.IsJustCreated())

	tr.SetDirty(false)
	assert.False(t, tr.IsDirty())
	assert.True(t, tr.IsJustCreated(), "flags are independent")
}
