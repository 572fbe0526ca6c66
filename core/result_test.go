package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_Success(t *testing.T) {
	r := Success(&Reminder{ID: "1"})

	require.True(t, r.IsSuccess())
	data, ok := r.Data()
	require.True(t, ok)
	assert.Equal(t, "1", data.ID)
	assert.Empty(t, r.Message())
	assert.NoError(t, r.Err())
}

func TestResult_Failure(t *testing.T) {
	r := Failure[*Reminder](MsgReminderNotFound)

	require.False(t, r.IsSuccess())
	data, ok := r.Data()
	assert.False(t, ok)
	assert.Nil(t, data)
	assert.Equal(t, "Reminder not found!", r.Message())
	assert.EqualError(t, r.Err(), "Reminder not found!")
}

func TestResult_FailureWithCause(t *testing.T) {
	cause := errors.New("record not found")
	r := FailureWith[int](MsgReminderNotFound, cause)

	assert.True(t, errors.Is(r.Err(), cause))

	var resultErr *ResultError
	require.True(t, errors.As(r.Err(), &resultErr))
	assert.Equal(t, MsgReminderNotFound, resultErr.Message)
}

func TestResult_FailureFrom(t *testing.T) {
	r := FailureFrom[int](errors.New("disk on fire"))
	assert.Equal(t, "disk on fire", r.Message())

	r = FailureFrom[int](nil)
	assert.Equal(t, "unknown error", r.Message())
}

func TestResult_MatchCallsExactlyOneBranch(t *testing.T) {
	var successes, failures int

	Success(1).Match(func(int) { successes++ }, func(string) { failures++ })
	Failure[int]("boom").Match(func(int) { successes++ }, func(string) { failures++ })

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, failures)
}

func TestMapResult(t *testing.T) {
	doubled := MapResult(Success(2), func(v int) int { return v * 2 })
	v, ok := doubled.Data()
	require.True(t, ok)
	assert.Equal(t, 4, v)

	failed := MapResult(Failure[int]("nope"), func(v int) string { return "unused" })
	assert.False(t, failed.IsSuccess())
	assert.Equal(t, "nope", failed.Message())
}
