package ai

import "strings"

// Keyword lists for the non-AI urgency fallback path. Containment
// match, checked in priority order emergency > high > medium; no hit
// classifies as low.
var (
	emergencyKeywords = []string{
		"가슴 통증", "호흡곤란", "숨을 쉴 수", "의식", "쓰러", "심한 출혈",
		"자살", "자해", "죽고 싶",
	}
	highKeywords = []string{
		"심한 두통", "고열", "심한 복통", "구토가 멈추지", "마비", "발작",
	}
	mediumKeywords = []string{
		"두통", "복통", "기침", "발열", "어지러", "구토", "설사", "통증",
	}
)

// ClassifyUrgencyByKeywords is the deterministic urgency classifier
// used when no AI-produced level is available.
func ClassifyUrgencyByKeywords(text string) string {
	normalized := strings.ToLower(text)
	for _, keyword := range emergencyKeywords {
		if strings.Contains(normalized, keyword) {
			return UrgencyEmergency
		}
	}
	for _, keyword := range highKeywords {
		if strings.Contains(normalized, keyword) {
			return UrgencyHigh
		}
	}
	for _, keyword := range mediumKeywords {
		if strings.Contains(normalized, keyword) {
			return UrgencyMedium
		}
	}
	return UrgencyLow
}
