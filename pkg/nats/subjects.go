package nats

import (
	"fmt"
	"strings"
)

// Subject naming convention:
// - risk.alert.{status}.{market}    high/critical recommendations
// - risk.reco.{market}              every recommendation
// - markets.snapshot.{market}       inbound market snapshots
const (
	alertSubjectPrefix    = "risk.alert"
	recoSubjectPrefix     = "risk.reco"
	snapshotSubjectPrefix = "markets.snapshot"
	snapshotSubjectFilter = snapshotSubjectPrefix + ".>"
)

// AlertSubject builds the alert subject for a risk status and market.
func AlertSubject(status, marketAddress string) string {
	return fmt.Sprintf("%s.%s.%s", alertSubjectPrefix, status, marketAddress)
}

// RecommendationSubject builds the recommendation subject for a market.
func RecommendationSubject(marketAddress string) string {
	return fmt.Sprintf("%s.%s", recoSubjectPrefix, marketAddress)
}

// SnapshotSubject builds the snapshot subject for a market.
func SnapshotSubject(marketAddress string) string {
	return fmt.Sprintf("%s.%s", snapshotSubjectPrefix, marketAddress)
}

// ParseAlertSubject extracts the status and market address from an alert
// subject: risk.alert.{status}.{market}.
func ParseAlertSubject(subject string) (status, marketAddress string, err error) {
	parts := strings.Split(subject, ".")
	if len(parts) < 4 || parts[0]+"."+parts[1] != alertSubjectPrefix {
		return "", "", fmt.Errorf("invalid alert subject format: %s", subject)
	}
	return parts[2], strings.Join(parts[3:], "."), nil
}
