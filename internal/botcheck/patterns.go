package botcheck

import "regexp"

// Curated suspicious patterns. These are heuristics tuned on observed abuse,
// not a security boundary.
var suspiciousEmailPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[a-z]+\d{4,}@`), // name1234@
	regexp.MustCompile(`(?i)^test`),
	regexp.MustCompile(`(?i)^bot`),
	regexp.MustCompile(`(?i)^spam`),
	regexp.MustCompile(`\+\d+@`), // plus addressing with numbers
	regexp.MustCompile(`(?i)@(mailinator|guerrillamail|temp-mail|10minutemail)`),
}

var suspiciousUsernamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^user\d{6,}$`),
	regexp.MustCompile(`^[a-z]{3}\d{5,}$`),
	regexp.MustCompile(`(?i)^test`),
	regexp.MustCompile(`(?i)^bot`),
	regexp.MustCompile(`\d{8,}`), // excessive numbers
}

var unusualEmailChars = regexp.MustCompile(`[^a-zA-Z0-9@._+-]`)

var botKeywords = []string{"test", "bot", "spam"}

var disposableDomains = map[string]bool{
	"mailinator.com":    true,
	"guerrillamail.com": true,
	"temp-mail.org":     true,
	"10minutemail.com":  true,
	"throwaway.email":   true,
	"yopmail.com":       true,
}

var commonBotNames = []string{"admin", "test", "user", "demo", "bot"}

var keyboardRows = []string{
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
	"1234567890",
}

var knownBotFingerprints = []string{
	"0000000000000000",
	"1111111111111111",
	"ffffffffffffffff",
}
