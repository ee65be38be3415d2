package utils

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// GenerateOTP generates a 6-digit OTP
func GenerateOTP() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	otp := ""
	for i := 0; i < 6; i++ {
		otp += fmt.Sprintf("%d", rng.Intn(10))
	}
	return otp
}

const passwordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789"

// GeneratePassword generates a random initial password for franchisee and
// collaborator accounts. Ambiguous characters are excluded.
func GeneratePassword(length int) string {
	if length < 8 {
		length = 8
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	out := make([]byte, length)
	for i := range out {
		out[i] = passwordAlphabet[rng.Intn(len(passwordAlphabet))]
	}
	return string(out)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
