package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusLabelRoundTrip(t *testing.T) {
	for _, status := range AllStatuses() {
		label := status.Label()
		assert.NotEmpty(t, label, "status %q must have a label", status)

		back, ok := StatusFromLabel(label)
		assert.True(t, ok, "label %q must map back", label)
		assert.Equal(t, status, back)
	}
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "Baru", StatusNew.Label())
	assert.Equal(t, "Dalam Proses", StatusInProgress.Label())
	assert.Equal(t, "Berhasil", StatusSucceeded.Label())
	assert.Equal(t, "Gagal", StatusFailed.Label())
}

func TestStatusValidity(t *testing.T) {
	assert.True(t, StatusNew.IsValid())
	assert.True(t, StatusFailed.IsValid())
	assert.False(t, Status("done").IsValid())
	assert.False(t, Status("").IsValid())

	_, ok := StatusFromLabel("Selesai")
	assert.False(t, ok)
}
