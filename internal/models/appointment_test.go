package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentStatusTransitions(t *testing.T) {
	closing := []AppointmentStatus{AppointmentCompleted, AppointmentCancelled, AppointmentNoShow}
	for _, next := range closing {
		assert.True(t, AppointmentScheduled.CanTransitionTo(next), next)
		for _, from := range closing {
			assert.False(t, from.CanTransitionTo(next), "%s -> %s", from, next)
		}
	}
	assert.False(t, AppointmentScheduled.CanTransitionTo(AppointmentScheduled))
	assert.False(t, AppointmentScheduled.CanTransitionTo("archived"))
}

func TestBusyIntervalsSkipsCancelled(t *testing.T) {
	rows := []Appointment{
		{ID: "a", StartTime: "09:00", EndTime: "09:45", Status: AppointmentScheduled},
		{ID: "b", StartTime: "10:00", EndTime: "10:30", Status: AppointmentCancelled},
		{ID: "c", StartTime: "11:00", EndTime: "12:00", Status: AppointmentCompleted},
		{ID: "d", StartTime: "14:00", EndTime: "14:30", Status: AppointmentNoShow},
	}

	busy, err := BusyIntervals(rows)
	require.NoError(t, err)
	require.Len(t, busy, 3)
	assert.Equal(t, "09:45", busy[0].End.String())
	assert.Equal(t, "11:00", busy[1].Start.String())
	assert.Equal(t, "14:00", busy[2].Start.String())
}

func TestBusyIntervalsRejectsMalformedTimes(t *testing.T) {
	_, err := BusyIntervals([]Appointment{{ID: "x", StartTime: "25:00", EndTime: "26:00", Status: AppointmentScheduled}})
	assert.Error(t, err)
}
