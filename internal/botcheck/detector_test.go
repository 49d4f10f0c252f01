package botcheck

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/proconnect/trust-engine/internal/engine"
)

const validToken = "a-plausibly-long-provider-token"

func TestAnalyzeRegistrationObviousBot(t *testing.T) {
	d := NewDetector(nil)

	analysis, err := d.AnalyzeRegistration(&Registration{
		Email:     "bot1234@test.com",
		Username:  "bot1234",
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !analysis.IsBot {
		t.Fatalf("expected bot classification, got risk %v", analysis.RiskScore)
	}
	if analysis.RiskScore != 100 {
		t.Fatalf("expected risk clamped to 100, got %v", analysis.RiskScore)
	}
	if analysis.RiskBand != engine.RiskCritical {
		t.Fatalf("expected CRITICAL band, got %s", analysis.RiskBand)
	}
	if analysis.TrustScore != 0 {
		t.Fatalf("expected trust score 0, got %v", analysis.TrustScore)
	}
	if len(analysis.Reasons) == 0 {
		t.Fatalf("expected reasons for a bot classification")
	}
}

func TestAnalyzeRegistrationCleanUser(t *testing.T) {
	d := NewDetector(nil)

	analysis, err := d.AnalyzeRegistration(&Registration{
		Email:          "jane.doe@example.com",
		Username:       "marguerite",
		RecaptchaToken: validToken,
		Timestamp:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.IsBot {
		t.Fatalf("expected clean classification, got reasons %v", analysis.Reasons)
	}
	if analysis.RiskScore != 0 {
		t.Fatalf("expected risk 0, got %v", analysis.RiskScore)
	}
	if analysis.RiskBand != engine.RiskLow {
		t.Fatalf("expected LOW band, got %s", analysis.RiskBand)
	}
	if analysis.TrustScore != 1 {
		t.Fatalf("expected trust score 1, got %v", analysis.TrustScore)
	}
}

func TestAnalyzeRegistrationVelocity(t *testing.T) {
	d := NewDetector(nil)

	reg := &Registration{
		Email:          "jane.doe@example.com",
		Username:       "marguerite",
		RecaptchaToken: validToken,
		Timestamp:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	var analysis *Analysis
	var err error
	for i := 0; i < 4; i++ {
		analysis, err = d.AnalyzeRegistration(reg)
		if err != nil {
			t.Fatalf("attempt %d: unexpected error: %v", i, err)
		}
	}

	// three prior attempts within the hour trip the velocity check
	if analysis.RiskScore != 40 {
		t.Fatalf("expected velocity penalty 40, got %v", analysis.RiskScore)
	}
	if analysis.IsBot {
		t.Fatalf("velocity alone should not cross the registration threshold")
	}
	if analysis.RiskBand != engine.RiskMedium {
		t.Fatalf("expected MEDIUM band, got %s", analysis.RiskBand)
	}
}

func TestAnalyzeRegistrationValidation(t *testing.T) {
	d := NewDetector(nil)

	if _, err := d.AnalyzeRegistration(nil); err == nil {
		t.Fatalf("expected error for nil registration")
	}
	if _, err := d.AnalyzeRegistration(&Registration{Username: "marguerite"}); err == nil {
		t.Fatalf("expected error for missing email")
	}
	if _, err := d.AnalyzeRegistration(&Registration{Email: "jane.doe@example.com"}); err == nil {
		t.Fatalf("expected error for missing username")
	}
}

func TestAnalyzeLoginMissingEverything(t *testing.T) {
	d := NewDetector(nil)

	analysis, err := d.AnalyzeLogin(&Login{Email: "jane.doe@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// missing fingerprint (20) plus missing captcha (15)
	if analysis.RiskScore != 35 {
		t.Fatalf("expected risk 35, got %v", analysis.RiskScore)
	}
	if analysis.IsBot {
		t.Fatalf("expected 35 to stay under the login threshold")
	}
	if analysis.TrustScore != 0.65 {
		t.Fatalf("expected trust 0.65, got %v", analysis.TrustScore)
	}
}

func TestAnalyzeLoginKnownBotFingerprint(t *testing.T) {
	d := NewDetector(nil)

	analysis, err := d.AnalyzeLogin(&Login{
		Email:             "jane.doe@example.com",
		DeviceFingerprint: "00000000000000000000000000000000",
		RecaptchaToken:    validToken,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.RiskScore != 50 {
		t.Fatalf("expected risk 50, got %v", analysis.RiskScore)
	}
	if !analysis.IsBot {
		t.Fatalf("expected the login threshold of 50 to classify as bot")
	}
}

func TestAnalyzeLoginCleanDevice(t *testing.T) {
	d := NewDetector(nil)

	analysis, err := d.AnalyzeLogin(&Login{
		Email:             "jane.doe@example.com",
		DeviceFingerprint: "9f86d081884c7d659a2feaa0c55ad015",
		RecaptchaToken:    validToken,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.RiskScore != 0 || analysis.IsBot {
		t.Fatalf("expected clean login, got risk %v", analysis.RiskScore)
	}
}

func TestAttemptRecordJSONDecode(t *testing.T) {
	var reg Registration
	if err := json.Unmarshal([]byte(`{
		"email": "jane.doe@example.com",
		"username": "marguerite",
		"recaptcha_token": "tok",
		"timestamp": "2025-06-01T12:00:00Z"
	}`), &reg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reg.Username != "marguerite" || reg.RecaptchaToken != "tok" || reg.Timestamp.IsZero() {
		t.Fatalf("unexpected registration: %+v", reg)
	}

	var login Login
	if err := json.Unmarshal([]byte(`{
		"email": "jane.doe@example.com",
		"device_fingerprint": "9f86d081884c7d659a2feaa0c55ad015"
	}`), &login); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if login.DeviceFingerprint == "" {
		t.Fatalf("unexpected login: %+v", login)
	}
}

func TestAnalyzeLoginValidation(t *testing.T) {
	d := NewDetector(nil)

	if _, err := d.AnalyzeLogin(nil); err == nil {
		t.Fatalf("expected error for nil login")
	}
	if _, err := d.AnalyzeLogin(&Login{}); err == nil {
		t.Fatalf("expected error for missing email")
	}
}
