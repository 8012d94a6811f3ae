package fingerprint

import "math/rand"

// userAgents is a fixed pool of literal Android Dalvik user-agent strings.
// A random entry is attached to every identify request so the client
// doesn't present a single, trivially-blockable signature.
var userAgents = []string{
	"Dalvik/1.6.0 (Linux; U; Android 9; SM-G973F Build/RP1A.200720.012)",
	"Dalvik/1.6.0 (Linux; U; Android 10; SM-G960F Build/QP1A.190711.020)",
	"Dalvik/1.6.0 (Linux; U; Android 13; SM-A515F Build/PPR1.180610.011)",
	"Dalvik/2.1.0 (Linux; U; Android 9; SM-N970F Build/PPR1.180610.011)",
	"Dalvik/1.6.0 (Linux; U; Android 10; SM-G988B Build/QP1A.190711.020)",
	"Dalvik/1.6.0 (Linux; U; Android 13; Pixel 3 Build/QP1A.190711.020)",
	"Dalvik/2.1.0 (Linux; U; Android 10; Pixel 4 Build/SP1A.210812.016)",
	"Dalvik/2.1.0 (Linux; U; Android 9; Pixel 5 Build/QP1A.190711.020)",
	"Dalvik/2.1.0 (Linux; U; Android 11; Pixel 6 Build/RP1A.200720.012)",
	"Dalvik/1.6.0 (Linux; U; Android 10; Pixel 7 Build/RP1A.200720.012)",
	"Dalvik/1.6.0 (Linux; U; Android 9; ONEPLUS A6003 Build/SP1A.210812.016)",
	"Dalvik/1.6.0 (Linux; U; Android 11; ONEPLUS A6013 Build/RP1A.200720.012)",
	"Dalvik/2.1.0 (Linux; U; Android 9; Redmi Note 8 Build/SP1A.210812.016)",
	"Dalvik/1.6.0 (Linux; U; Android 12; Redmi Note 9 Build/PPR1.180610.011)",
	"Dalvik/2.1.0 (Linux; U; Android 13; Mi 9 Build/RP1A.200720.012)",
	"Dalvik/1.6.0 (Linux; U; Android 9; Mi 10 Build/PPR1.180610.011)",
	"Dalvik/1.6.0 (Linux; U; Android 11; LG-H815 Build/PPR1.180610.011)",
	"Dalvik/1.6.0 (Linux; U; Android 9; LG-H870 Build/SP1A.210812.016)",
	"Dalvik/2.1.0 (Linux; U; Android 12; Moto G (5) Build/RP1A.200720.012)",
	"Dalvik/1.6.0 (Linux; U; Android 11; Moto G7 Build/RP1A.200720.012)",
	"Dalvik/1.6.0 (Linux; U; Android 11; SM-G973F Build/PPR1.180610.011)",
	"Dalvik/1.6.0 (Linux; U; Android 13; SM-G960F Build/QP1A.190711.020)",
	"Dalvik/1.6.0 (Linux; U; Android 12; SM-A515F Build/SP1A.210812.016)",
	"Dalvik/2.1.0 (Linux; U; Android 13; SM-N970F Build/QP1A.190711.020)",
	"Dalvik/2.1.0 (Linux; U; Android 9; SM-G988B Build/QP1A.190711.020)",
	"Dalvik/1.6.0 (Linux; U; Android 11; Pixel 3 Build/SP1A.210812.016)",
	"Dalvik/2.1.0 (Linux; U; Android 9; Pixel 4 Build/QP1A.190711.020)",
	"Dalvik/2.1.0 (Linux; U; Android 10; Pixel 5 Build/SP1A.210812.016)",
	"Dalvik/2.1.0 (Linux; U; Android 12; Pixel 6 Build/QP1A.190711.020)",
	"Dalvik/2.1.0 (Linux; U; Android 10; Pixel 7 Build/QP1A.190711.020)",
	"Dalvik/2.1.0 (Linux; U; Android 13; ONEPLUS A6003 Build/SP1A.210812.016)",
	"Dalvik/2.1.0 (Linux; U; Android 11; ONEPLUS A6013 Build/QP1A.190711.020)",
	"Dalvik/1.6.0 (Linux; U; Android 13; Redmi Note 8 Build/SP1A.210812.016)",
	"Dalvik/1.6.0 (Linux; U; Android 9; Redmi Note 9 Build/PPR1.180610.011)",
	"Dalvik/1.6.0 (Linux; U; Android 10; Mi 9 Build/SP1A.210812.016)",
	"Dalvik/1.6.0 (Linux; U; Android 12; Mi 10 Build/SP1A.210812.016)",
	"Dalvik/2.1.0 (Linux; U; Android 13; LG-H815 Build/RP1A.200720.012)",
	"Dalvik/1.6.0 (Linux; U; Android 9; LG-H870 Build/TP1A.220624.014)",
	"Dalvik/2.1.0 (Linux; U; Android 11; Moto G (5) Build/PPR1.180610.011)",
	"Dalvik/2.1.0 (Linux; U; Android 12; Moto G7 Build/QP1A.190711.020)",
	"Dalvik/2.1.0 (Linux; U; Android 9; SM-G973F Build/RP1A.200720.012)",
	"Dalvik/1.6.0 (Linux; U; Android 13; SM-G960F Build/PPR1.180610.011)",
	"Dalvik/2.1.0 (Linux; U; Android 13; SM-A515F Build/TP1A.220624.014)",
	"Dalvik/1.6.0 (Linux; U; Android 10; SM-N970F Build/RP1A.200720.012)",
	"Dalvik/1.6.0 (Linux; U; Android 13; SM-G988B Build/TP1A.220624.014)",
	"Dalvik/1.6.0 (Linux; U; Android 13; Pixel 3 Build/RP1A.200720.012)",
	"Dalvik/2.1.0 (Linux; U; Android 9; Pixel 4 Build/PPR1.180610.011)",
	"Dalvik/2.1.0 (Linux; U; Android 11; Pixel 5 Build/QP1A.190711.020)",
	"Dalvik/1.6.0 (Linux; U; Android 10; Pixel 6 Build/TP1A.220624.014)",
	"Dalvik/1.6.0 (Linux; U; Android 9; Pixel 7 Build/SP1A.210812.016)",
	"Dalvik/1.6.0 (Linux; U; Android 13; ONEPLUS A6003 Build/QP1A.190711.020)",
	"Dalvik/1.6.0 (Linux; U; Android 12; ONEPLUS A6013 Build/TP1A.220624.014)",
	"Dalvik/1.6.0 (Linux; U; Android 11; Redmi Note 8 Build/TP1A.220624.014)",
	"Dalvik/2.1.0 (Linux; U; Android 10; Redmi Note 9 Build/TP1A.220624.014)",
	"Dalvik/1.6.0 (Linux; U; Android 11; Mi 9 Build/SP1A.210812.016)",
	"Dalvik/2.1.0 (Linux; U; Android 12; Mi 10 Build/TP1A.220624.014)",
	"Dalvik/2.1.0 (Linux; U; Android 9; LG-H815 Build/QP1A.190711.020)",
	"Dalvik/1.6.0 (Linux; U; Android 9; LG-H870 Build/RP1A.200720.012)",
	"Dalvik/1.6.0 (Linux; U; Android 13; Moto G (5) Build/TP1A.220624.014)",
	"Dalvik/1.6.0 (Linux; U; Android 13; Moto G7 Build/QP1A.190711.020)",
	"Dalvik/1.6.0 (Linux; U; Android 9; SM-G973F Build/PPR1.180610.011)",
	"Dalvik/1.6.0 (Linux; U; Android 9; SM-G960F Build/PPR1.180610.011)",
	"Dalvik/2.1.0 (Linux; U; Android 9; SM-A515F Build/TP1A.220624.014)",
	"Dalvik/1.6.0 (Linux; U; Android 11; SM-N970F Build/SP1A.210812.016)",
	"Dalvik/1.6.0 (Linux; U; Android 13; SM-G988B Build/QP1A.190711.020)",
	"Dalvik/2.1.0 (Linux; U; Android 10; Pixel 3 Build/SP1A.210812.016)",
	"Dalvik/2.1.0 (Linux; U; Android 10; Pixel 4 Build/PPR1.180610.011)",
	"Dalvik/1.6.0 (Linux; U; Android 12; Pixel 5 Build/RP1A.200720.012)",
	"Dalvik/2.1.0 (Linux; U; Android 12; Pixel 6 Build/SP1A.210812.016)",
	"Dalvik/1.6.0 (Linux; U; Android 9; Pixel 7 Build/PPR1.180610.011)",
	"Dalvik/2.1.0 (Linux; U; Android 11; ONEPLUS A6003 Build/PPR1.180610.011)",
	"Dalvik/1.6.0 (Linux; U; Android 10; ONEPLUS A6013 Build/QP1A.190711.020)",
	"Dalvik/2.1.0 (Linux; U; Android 10; Redmi Note 8 Build/SP1A.210812.016)",
	"Dalvik/1.6.0 (Linux; U; Android 11; Redmi Note 9 Build/SP1A.210812.016)",
	"Dalvik/1.6.0 (Linux; U; Android 9; Mi 9 Build/SP1A.210812.016)",
	"Dalvik/1.6.0 (Linux; U; Android 9; Mi 10 Build/TP1A.220624.014)",
	"Dalvik/1.6.0 (Linux; U; Android 9; LG-H815 Build/QP1A.190711.020)",
	"Dalvik/1.6.0 (Linux; U; Android 12; LG-H870 Build/SP1A.210812.016)",
	"Dalvik/2.1.0 (Linux; U; Android 10; Moto G (5) Build/SP1A.210812.016)",
	"Dalvik/1.6.0 (Linux; U; Android 10; Moto G7 Build/SP1A.210812.016)",
	"Dalvik/1.6.0 (Linux; U; Android 12; SM-G973F Build/RP1A.200720.012)",
	"Dalvik/2.1.0 (Linux; U; Android 11; SM-G960F Build/SP1A.210812.016)",
	"Dalvik/2.1.0 (Linux; U; Android 10; SM-A515F Build/QP1A.190711.020)",
	"Dalvik/2.1.0 (Linux; U; Android 10; SM-N970F Build/PPR1.180610.011)",
	"Dalvik/1.6.0 (Linux; U; Android 11; SM-G988B Build/PPR1.180610.011)",
	"Dalvik/1.6.0 (Linux; U; Android 13; Pixel 3 Build/SP1A.210812.016)",
	"Dalvik/1.6.0 (Linux; U; Android 9; Pixel 4 Build/TP1A.220624.014)",
	"Dalvik/1.6.0 (Linux; U; Android 10; Pixel 5 Build/PPR1.180610.011)",
	"Dalvik/1.6.0 (Linux; U; Android 10; Pixel 6 Build/SP1A.210812.016)",
	"Dalvik/1.6.0 (Linux; U; Android 13; Pixel 7 Build/QP1A.190711.020)",
	"Dalvik/1.6.0 (Linux; U; Android 13; ONEPLUS A6003 Build/PPR1.180610.011)",
	"Dalvik/2.1.0 (Linux; U; Android 13; ONEPLUS A6013 Build/TP1A.220624.014)",
	"Dalvik/2.1.0 (Linux; U; Android 11; Redmi Note 8 Build/QP1A.190711.020)",
	"Dalvik/2.1.0 (Linux; U; Android 10; Redmi Note 9 Build/RP1A.200720.012)",
	"Dalvik/2.1.0 (Linux; U; Android 10; Mi 9 Build/RP1A.200720.012)",
	"Dalvik/2.1.0 (Linux; U; Android 11; Mi 10 Build/PPR1.180610.011)",
	"Dalvik/1.6.0 (Linux; U; Android 12; LG-H815 Build/TP1A.220624.014)",
	"Dalvik/1.6.0 (Linux; U; Android 9; LG-H870 Build/TP1A.220624.014)",
	"Dalvik/1.6.0 (Linux; U; Android 13; Moto G (5) Build/RP1A.200720.012)",
	"Dalvik/1.6.0 (Linux; U; Android 11; Moto G7 Build/PPR1.180610.011)",
}

// randomUserAgent returns a random entry from the fixed user-agent pool.
func randomUserAgent() string {
	return userAgents[rand.Intn(len(userAgents))]
}
