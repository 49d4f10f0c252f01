// Package botcheck scores registration and login attempts for automated
// abuse using additive risk points.
package botcheck

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/proconnect/trust-engine/internal/engine"
	"github.com/proconnect/trust-engine/internal/memo"
)

// velocityWindow is the trailing window for repeated-attempt detection.
const velocityWindow = time.Hour

// Registration abuse is pricier to attempt than login abuse, so the login
// bar sits lower.
var (
	registrationConfig = engine.Config{
		Name:      "bot-registration",
		Mode:      engine.AdditivePoints,
		Limit:     100,
		Threshold: 60,
	}
	loginConfig = engine.Config{
		Name:      "bot-login",
		Mode:      engine.AdditivePoints,
		Limit:     100,
		Threshold: 50,
	}
)

// Registration is a validated registration attempt record.
type Registration struct {
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	RecaptchaToken string    `json:"recaptcha_token,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Login is a validated login attempt record.
type Login struct {
	Email             string    `json:"email"`
	RecaptchaToken    string    `json:"recaptcha_token,omitempty"`
	DeviceFingerprint string    `json:"device_fingerprint,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
}

// Analysis is the caller-facing bundle for one attempt evaluation.
type Analysis struct {
	IsBot      bool               `json:"is_bot"`
	TrustScore float64            `json:"trust_score"`
	RiskScore  float64            `json:"risk_score"`
	RiskBand   engine.RiskBand    `json:"risk_band"`
	Reasons    []string           `json:"reasons,omitempty"`
	Breakdown  map[string]float64 `json:"breakdown"`
}

// Detector evaluates attempts. The velocity tracker is shared mutable state
// local to one detector instance; races on the same identifier resolve
// last-writer-wins, which is fine for a heuristic signal.
type Detector struct {
	velocity *memo.VelocityTracker
	logger   *zap.Logger
}

// NewDetector creates a Detector with a fresh velocity tracker.
func NewDetector(logger *zap.Logger) *Detector {
	return &Detector{
		velocity: memo.NewVelocityTracker(),
		logger:   logger,
	}
}

// AnalyzeRegistration scores one registration attempt.
func (d *Detector) AnalyzeRegistration(reg *Registration) (*Analysis, error) {
	if reg == nil {
		return nil, fmt.Errorf("registration data is required")
	}
	if strings.TrimSpace(reg.Email) == "" {
		return nil, fmt.Errorf("registration email is required")
	}
	if strings.TrimSpace(reg.Username) == "" {
		return nil, fmt.Errorf("registration username is required")
	}

	at := reg.Timestamp
	if at.IsZero() {
		at = time.Now()
	}

	recent := d.velocity.Record(reg.Email, velocityWindow)

	signals := []engine.Signal{
		emailSignal(reg.Email),
		usernameSignal(reg.Username),
		velocitySignal(recent),
		captchaSignal(reg.RecaptchaToken, 30),
		indicatorsSignal(reg.Username, at),
	}

	analysis := buildAnalysis(registrationConfig, signals)

	if analysis.IsBot && d.logger != nil {
		d.logger.Warn("bot detected during registration",
			zap.String("email", reg.Email),
			zap.String("username", reg.Username),
			zap.Float64("risk_score", analysis.RiskScore),
			zap.Strings("reasons", analysis.Reasons),
		)
	}

	return analysis, nil
}

// AnalyzeLogin scores one login attempt.
func (d *Detector) AnalyzeLogin(login *Login) (*Analysis, error) {
	if login == nil {
		return nil, fmt.Errorf("login data is required")
	}
	if strings.TrimSpace(login.Email) == "" {
		return nil, fmt.Errorf("login email is required")
	}

	signals := []engine.Signal{
		fingerprintSignal(login.DeviceFingerprint),
		loginCaptchaSignal(login.RecaptchaToken),
	}

	analysis := buildAnalysis(loginConfig, signals)

	if analysis.RiskScore > 30 && d.logger != nil {
		d.logger.Info("suspicious login attempt",
			zap.String("email", login.Email),
			zap.Float64("risk_score", analysis.RiskScore),
			zap.Strings("reasons", analysis.Reasons),
		)
	}

	return analysis, nil
}

// loginCaptchaSignal only penalizes a missing token; login flows do not
// force a CAPTCHA round trip.
func loginCaptchaSignal(token string) engine.Signal {
	signal := engine.Signal{Name: SignalCaptcha}
	if token == "" {
		signal.Score = 15
		signal.Reasons = []string{"Missing CAPTCHA for suspicious login"}
	}
	return signal
}

func buildAnalysis(cfg engine.Config, signals []engine.Signal) *Analysis {
	outcome := cfg.Evaluate(signals)

	return &Analysis{
		IsBot:      outcome.Met,
		TrustScore: engine.Clamp(1-outcome.Score/100, 0, 1),
		RiskScore:  outcome.Score,
		RiskBand:   outcome.Band,
		Reasons:    outcome.Reasons,
		Breakdown:  outcome.Breakdown,
	}
}
