package botcheck

import (
	"math"
	"strings"
	"time"

	"github.com/proconnect/trust-engine/internal/engine"
)

const (
	SignalEmail       = "email"
	SignalUsername    = "username"
	SignalVelocity    = "velocity"
	SignalCaptcha     = "captcha"
	SignalIndicators  = "indicators"
	SignalFingerprint = "fingerprint"
)

// emailSignal checks the address against the curated pattern list, bot
// keywords in the local part, disposable domains, and unusual characters.
func emailSignal(email string) engine.Signal {
	signal := engine.Signal{Name: SignalEmail}

	for _, pattern := range suspiciousEmailPatterns {
		if pattern.MatchString(email) {
			signal.Score += 25
			signal.Reasons = append(signal.Reasons, "Suspicious email pattern detected")
			break
		}
	}

	local, domain, found := strings.Cut(email, "@")
	if found {
		lowerLocal := strings.ToLower(local)
		for _, keyword := range botKeywords {
			if strings.HasPrefix(lowerLocal, keyword) {
				signal.Score += 20
				signal.Reasons = append(signal.Reasons, "Bot-associated keyword in email")
				break
			}
		}

		if disposableDomains[strings.ToLower(domain)] {
			signal.Score += 40
			signal.Reasons = append(signal.Reasons, "Disposable email address")
		}
	}

	if unusualEmailChars.MatchString(email) {
		signal.Score += 15
		signal.Reasons = append(signal.Reasons, "Unusual characters in email")
	}

	return signal
}

// usernameSignal checks pattern matches, character entropy, and keyboard
// walks.
func usernameSignal(username string) engine.Signal {
	signal := engine.Signal{Name: SignalUsername}

	for _, pattern := range suspiciousUsernamePatterns {
		if pattern.MatchString(username) {
			signal.Score += 20
			signal.Reasons = append(signal.Reasons, "Suspicious username pattern")
			break
		}
	}

	if entropy(username) < 2 {
		signal.Score += 15
		signal.Reasons = append(signal.Reasons, "Low username entropy")
	}

	if isKeyboardWalk(username) {
		signal.Score += 25
		signal.Reasons = append(signal.Reasons, "Keyboard walk pattern detected")
	}

	return signal
}

// velocitySignal flags more than two recent attempts within the trailing
// window for the same identifier.
func velocitySignal(recent int) engine.Signal {
	signal := engine.Signal{Name: SignalVelocity}
	if recent > 2 {
		signal.Score = 40
		signal.Reasons = []string{"Rapid registration attempts"}
	}
	return signal
}

// captchaSignal penalizes a missing token and, harder, a failed
// verification.
func captchaSignal(token string, missingPenalty float64) engine.Signal {
	signal := engine.Signal{Name: SignalCaptcha}

	if token == "" {
		signal.Score = missingPenalty
		signal.Reasons = []string{"Missing CAPTCHA verification"}
		return signal
	}

	if !verifyCaptchaToken(token) {
		signal.Score = 50
		signal.Reasons = []string{"Failed CAPTCHA verification"}
	}

	return signal
}

// verifyCaptchaToken is a structural stand-in for the provider round trip;
// real tokens are long opaque strings.
func verifyCaptchaToken(token string) bool {
	return len(token) > 20
}

// indicatorsSignal covers the remaining registration heuristics: sequential
// character runs, odd-hours registration, and common bot name substrings.
func indicatorsSignal(username string, at time.Time) engine.Signal {
	signal := engine.Signal{Name: SignalIndicators}

	if hasSequentialRun(username) {
		signal.Score += 15
		signal.Reasons = append(signal.Reasons, "Sequential pattern in username")
	}

	hour := at.Hour()
	if hour >= 2 && hour <= 5 {
		signal.Score += 10
		signal.Reasons = append(signal.Reasons, "Registration during unusual hours")
	}

	lower := strings.ToLower(username)
	for _, name := range commonBotNames {
		if strings.Contains(lower, name) {
			signal.Score += 20
			signal.Reasons = append(signal.Reasons, "Common bot name pattern")
			break
		}
	}

	return signal
}

// fingerprintSignal checks the device fingerprint format and known-bad
// values. An absent fingerprint is its own penalty.
func fingerprintSignal(fingerprint string) engine.Signal {
	signal := engine.Signal{Name: SignalFingerprint}

	if fingerprint == "" {
		signal.Score = 20
		signal.Reasons = []string{"Missing device fingerprint"}
		return signal
	}

	if len(fingerprint) < 32 {
		signal.Score += 30
		signal.Reasons = append(signal.Reasons, "Invalid device fingerprint")
	}

	for _, known := range knownBotFingerprints {
		if strings.Contains(fingerprint, known) {
			signal.Score += 50
			signal.Reasons = append(signal.Reasons, "Known bot fingerprint")
			break
		}
	}

	return signal
}

// entropy returns the Shannon entropy of the string in bits per character.
func entropy(s string) float64 {
	if s == "" {
		return 0
	}

	freq := make(map[rune]int)
	length := 0
	for _, r := range s {
		freq[r]++
		length++
	}

	var h float64
	for _, count := range freq {
		p := float64(count) / float64(length)
		h -= p * math.Log2(p)
	}
	return h
}

// isKeyboardWalk reports whether the string contains a 4-character run from
// one of the fixed keyboard rows.
func isKeyboardWalk(s string) bool {
	lower := strings.ToLower(s)
	for _, row := range keyboardRows {
		for i := 0; i+4 <= len(row); i++ {
			if strings.Contains(lower, row[i:i+4]) {
				return true
			}
		}
	}
	return false
}

// hasSequentialRun reports three consecutive ascending character codes.
func hasSequentialRun(s string) bool {
	for i := 0; i+2 < len(s); i++ {
		if s[i+1] == s[i]+1 && s[i+2] == s[i]+2 {
			return true
		}
	}
	return false
}
