package nats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectBuilders(t *testing.T) {
	assert.Equal(t, "risk.alert.critical.0xabc", AlertSubject("critical", "0xabc"))
	assert.Equal(t, "risk.reco.0xabc", RecommendationSubject("0xabc"))
	assert.Equal(t, "markets.snapshot.0xabc", SnapshotSubject("0xabc"))
}

func TestParseAlertSubject(t *testing.T) {
	status, market, err := ParseAlertSubject("risk.alert.high.0xdef")
	require.NoError(t, err)
	assert.Equal(t, "high", status)
	assert.Equal(t, "0xdef", market)

	// Market addresses containing dots round-trip.
	status, market, err = ParseAlertSubject(AlertSubject("critical", "nba.lal.bos"))
	require.NoError(t, err)
	assert.Equal(t, "critical", status)
	assert.Equal(t, "nba.lal.bos", market)
}

func TestParseAlertSubject_Invalid(t *testing.T) {
	for _, subject := range []string{
		"",
		"risk.alert",
		"risk.alert.high",
		"risk.reco.0xabc",
		"markets.snapshot.0xabc",
	} {
		_, _, err := ParseAlertSubject(subject)
		assert.Error(t, err, subject)
	}
}
