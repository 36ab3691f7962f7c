package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	initiator int64 = 1
	recipient int64 = 2
	outsider  int64 = 3
)

func requested() *Exchange {
	return &Exchange{
		ID:         10,
		ProfileID1: initiator,
		ProfileID2: recipient,
		SkillID1:   5,
		SkillID2:   10,
		Status:     StatusRequested,
	}
}

func TestTransition_RecipientAccepts(t *testing.T) {
	ex := requested()
	require.NoError(t, ex.Transition(StatusActive, recipient))
	assert.Equal(t, StatusActive, ex.Status)
}

func TestTransition_RecipientDeclines(t *testing.T) {
	ex := requested()
	require.NoError(t, ex.Transition(StatusDeclined, recipient))
	assert.Equal(t, StatusDeclined, ex.Status)
}

func TestTransition_InitiatorCannotAccept(t *testing.T) {
	ex := requested()
	err := ex.Transition(StatusActive, initiator)
	assert.ErrorIs(t, err, ErrRecipientAccept)
	assert.Equal(t, StatusRequested, ex.Status, "status must be untouched on rejection")
}

func TestTransition_InitiatorCannotDecline(t *testing.T) {
	ex := requested()
	err := ex.Transition(StatusDeclined, initiator)
	assert.ErrorIs(t, err, ErrRecipientDecline)
}

func TestTransition_EitherPartyMayCancel(t *testing.T) {
	for _, actor := range []int64{initiator, recipient} {
		ex := requested()
		require.NoError(t, ex.Transition(StatusCancelled, actor))
		assert.Equal(t, StatusCancelled, ex.Status)
	}
}

func TestTransition_ThirdPartyForbidden(t *testing.T) {
	for _, target := range []Status{StatusActive, StatusDeclined, StatusCancelled} {
		ex := requested()
		err := ex.Transition(target, outsider)
		assert.Error(t, err, "target %s", target)
		assert.NotEqual(t, target, ex.Status)
	}
}

func TestTransition_InvalidTarget(t *testing.T) {
	ex := requested()
	assert.ErrorIs(t, ex.Transition(StatusRequested, recipient), ErrInvalidStatus)
	assert.ErrorIs(t, ex.Transition(Status("Paused"), recipient), ErrInvalidStatus)
}

func TestTransition_SettledExchangesAreTerminal(t *testing.T) {
	for _, settled := range []Status{StatusActive, StatusDeclined, StatusCancelled} {
		ex := requested()
		ex.Status = settled
		err := ex.Transition(StatusCancelled, recipient)
		assert.ErrorIs(t, err, ErrExchangeSettled, "from %s", settled)
		assert.Equal(t, settled, ex.Status)
	}
}

func TestValidTarget(t *testing.T) {
	assert.True(t, ValidTarget(StatusActive))
	assert.True(t, ValidTarget(StatusDeclined))
	assert.True(t, ValidTarget(StatusCancelled))
	assert.False(t, ValidTarget(StatusRequested))
	assert.False(t, ValidTarget(Status("anything")))
}
